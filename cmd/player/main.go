// Command player is a headless signage player. It polls the server for its
// device's status and logs each frame it would render.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/config"
	"github.com/Nixie-Tech-LLC/signage/internal/player"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal().Err(err).Msg("failed to load .env")
	}
	cfg, err := config.LoadPlayer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	config.SetupLogging(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := player.NewHTTPFetcher(cfg.ServerURL, cfg.DeviceID)
	pcfg := player.Config{
		PollInterval:    cfg.PollInterval,
		WeatherInterval: cfg.WeatherInterval,
		Location:        cfg.WeatherLabel,
	}
	if cfg.WeatherEnabled {
		pcfg.Weather = player.NewOpenMeteo(cfg.WeatherURL, cfg.Latitude, cfg.Longitude, cfg.WeatherTimezone)
	}
	p := player.New(fetcher, player.SinkFunc(logFrame), pcfg)

	log.Info().Str("server", cfg.ServerURL).Str("device_id", cfg.DeviceID).Msg("player starting")
	if err := p.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("player stopped")
	}
	log.Info().Msg("player stopped")
}

func logFrame(fr player.Frame) {
	ev := log.Info().
		Bool("connected", fr.Connected).
		Str("layout", string(fr.Geometry.Mode))
	if fr.Message != "" {
		ev = ev.Str("message", fr.Message)
	}
	ev = ev.Dict("main", panelDict(fr.Main)).Dict("sub", panelDict(fr.Sub))
	if fr.Widget != nil {
		w := fr.Widget.Message
		if fr.Widget.Schedule != nil {
			w = fr.Widget.Schedule.Content
		}
		ev = ev.Str("widget", w)
	}
	if fr.Info != nil {
		info := zerolog.Dict().Str("time", fr.Info.Time.Local().Format("15:04"))
		if w := fr.Info.Weather; w != nil {
			info = info.Float64("temperature", w.Temperature).Str("condition", string(w.Condition))
		}
		ev = ev.Dict("info", info)
	}
	if fr.Ticker != "" {
		ev = ev.Str("ticker", fr.Ticker)
	}
	ev.Msg("[player] frame")
}

func panelDict(p *player.Panel) *zerolog.Event {
	d := zerolog.Dict()
	if p == nil {
		return d
	}
	return d.Str("treatment", string(p.Treatment)).
		Str("content_id", p.ContentID).
		Str("title", p.Title).
		Int("index", p.Index).
		Int("count", p.Count)
}
