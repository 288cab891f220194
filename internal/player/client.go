package player

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxStatusSize       = 4 * 1024 * 1024
)

// Fetcher retrieves the device's current status. When version matches what
// the server would send, changed is false and the returned status is empty.
type Fetcher interface {
	Fetch(ctx context.Context, version string) (st signage.Status, changed bool, err error)
}

// HTTPFetcher polls the server's /signage-status endpoint.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
}

func NewHTTPFetcher(serverURL, deviceID string) *HTTPFetcher {
	return &HTTPFetcher{
		endpoint: strings.TrimRight(serverURL, "/") + "/signage-status/" + url.PathEscape(deviceID),
		client: &http.Client{
			Timeout: defaultFetchTimeout,
		},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, version string) (signage.Status, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return signage.Status{}, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if version != "" {
		req.Header.Set("If-None-Match", `"`+version+`"`)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return signage.Status{}, false, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxStatusSize)
	switch resp.StatusCode {
	case http.StatusNotModified:
		return signage.Status{}, false, nil
	case http.StatusOK:
		var st signage.Status
		if err := json.NewDecoder(body).Decode(&st); err != nil {
			return signage.Status{}, false, fmt.Errorf("failed to decode status: %w", err)
		}
		return st, true, nil
	default:
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(body).Decode(&apiErr)
		return signage.Status{}, false, fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, apiErr.Error)
	}
}
