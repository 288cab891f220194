package player

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultWeatherInterval is how often the info panel's weather is
	// refreshed.
	DefaultWeatherInterval = 30 * time.Minute
	// OpenMeteoURL is the public Open-Meteo forecast endpoint.
	OpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

	maxWeatherSize = 64 * 1024
)

// Condition groups WMO weather codes into the icons the info panel shows.
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionCloudy Condition = "cloudy"
	ConditionRain   Condition = "rain"
	ConditionSnow   Condition = "snow"
	ConditionStorm  Condition = "storm"
)

// ConditionFor maps a WMO weather code. Codes without an icon of their own
// (fog, showers) read as cloudy.
func ConditionFor(code int) Condition {
	switch {
	case code == 0 || code == 1:
		return ConditionClear
	case code == 2 || code == 3:
		return ConditionCloudy
	case code >= 51 && code <= 67:
		return ConditionRain
	case code >= 71 && code <= 77:
		return ConditionSnow
	case code >= 95:
		return ConditionStorm
	default:
		return ConditionCloudy
	}
}

// Weather is one current-conditions reading.
type Weather struct {
	Temperature float64   `json:"temperature"`
	Code        int       `json:"code"`
	Condition   Condition `json:"condition"`
	ObservedAt  string    `json:"observedAt,omitempty"`
}

// WeatherSource returns the current weather at the player's location.
type WeatherSource interface {
	Current(ctx context.Context) (Weather, error)
}

// OpenMeteo reads current conditions from the Open-Meteo forecast API.
type OpenMeteo struct {
	endpoint string
	client   *http.Client
}

// NewOpenMeteo builds a source for one location. An empty baseURL uses
// OpenMeteoURL; an empty timezone lets the API pick the local one.
func NewOpenMeteo(baseURL string, latitude, longitude float64, timezone string) *OpenMeteo {
	if baseURL == "" {
		baseURL = OpenMeteoURL
	}
	if timezone == "" {
		timezone = "auto"
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("timezone", timezone)

	return &OpenMeteo{
		endpoint: baseURL + "?" + q.Encode(),
		client: &http.Client{
			Timeout: defaultFetchTimeout,
		},
	}
}

func (o *OpenMeteo) Current(ctx context.Context) (Weather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint, nil)
	if err != nil {
		return Weather{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body struct {
		Current *struct {
			Time        string   `json:"time"`
			Temperature *float64 `json:"temperature_2m"`
			WeatherCode *int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxWeatherSize)).Decode(&body); err != nil {
		return Weather{}, fmt.Errorf("failed to decode weather: %w", err)
	}
	cur := body.Current
	if cur == nil || cur.Temperature == nil || cur.WeatherCode == nil {
		return Weather{}, fmt.Errorf("weather response has no current conditions")
	}
	return Weather{
		Temperature: *cur.Temperature,
		Code:        *cur.WeatherCode,
		Condition:   ConditionFor(*cur.WeatherCode),
		ObservedAt:  cur.Time,
	}, nil
}
