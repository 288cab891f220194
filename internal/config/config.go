package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds environment-based settings for the server.
type Config struct {
	Environment    string
	LogLevel       zerolog.Level
	DatabaseURL    string
	MigrationsPath string
	ServerAddress  string
	UploadDir      string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	PresenceTTL   time.Duration

	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTTopicPrefix string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

// PlayerConfig holds the settings of the headless player.
type PlayerConfig struct {
	Environment  string
	LogLevel     zerolog.Level
	ServerURL    string
	DeviceID     string
	PollInterval time.Duration

	// Weather is fetched only when both coordinates are set.
	WeatherEnabled  bool
	Latitude        float64
	Longitude       float64
	WeatherURL      string
	WeatherTimezone string
	WeatherInterval time.Duration
	WeatherLabel    string
}

func (c *Config) Development() bool { return c.Environment == "development" }

// LoadDotEnv reads a .env file into the environment when one exists.
// Variables already set win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	level, err := logLevel()
	if err != nil {
		return nil, err
	}
	ttl, err := duration("PRESENCE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:    getenv("APP_ENV", "production"),
		LogLevel:       level,
		DatabaseURL:    dbURL,
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		ServerAddress:  getenv("SERVER_ADDRESS", ":8080"),
		UploadDir:      getenv("UPLOAD_DIR", "./uploads"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		PresenceTTL:   ttl,

		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "signage-server"),
		MQTTTopicPrefix: getenv("MQTT_TOPIC_PREFIX", "signage"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if cfg.UseSpaces && (cfg.SpacesEndpoint == "" || cfg.SpacesBucket == "" || cfg.SpacesCDNURL == "") {
		return nil, fmt.Errorf("USE_SPACES requires SPACES_ENDPOINT, SPACES_BUCKET and SPACES_CDN_URL")
	}
	return cfg, nil
}

// LoadPlayer reads the player's configuration from environment variables.
func LoadPlayer() (*PlayerConfig, error) {
	deviceID := os.Getenv("PLAYER_DEVICE_ID")
	if deviceID == "" {
		return nil, fmt.Errorf("PLAYER_DEVICE_ID is required")
	}
	level, err := logLevel()
	if err != nil {
		return nil, err
	}
	poll, err := duration("PLAYER_POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	weatherEvery, err := duration("PLAYER_WEATHER_INTERVAL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	lat, hasLat, err := coordinate("PLAYER_LATITUDE", 90)
	if err != nil {
		return nil, err
	}
	lon, hasLon, err := coordinate("PLAYER_LONGITUDE", 180)
	if err != nil {
		return nil, err
	}
	if hasLat != hasLon {
		return nil, fmt.Errorf("PLAYER_LATITUDE and PLAYER_LONGITUDE must be set together")
	}
	return &PlayerConfig{
		Environment:  getenv("APP_ENV", "production"),
		LogLevel:     level,
		ServerURL:    getenv("PLAYER_SERVER_URL", "http://localhost:8080"),
		DeviceID:     deviceID,
		PollInterval: poll,

		WeatherEnabled:  hasLat && hasLon,
		Latitude:        lat,
		Longitude:       lon,
		WeatherURL:      getenv("PLAYER_WEATHER_URL", "https://api.open-meteo.com/v1/forecast"),
		WeatherTimezone: getenv("PLAYER_WEATHER_TIMEZONE", "auto"),
		WeatherInterval: weatherEvery,
		WeatherLabel:    os.Getenv("PLAYER_WEATHER_LABEL"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

// coordinate parses a signed degree value bounded by limit.
func coordinate(key string, limit float64) (float64, bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < -limit || f > limit {
		return 0, false, fmt.Errorf("%s must be a number between -%g and %g, got %q", key, limit, limit, v)
	}
	return f, true, nil
}

func logLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
