package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"maptrack/internal/config"
)

// DefaultEndpoint is the IP geolocation service used when none is configured
const DefaultEndpoint = "http://ip-api.com/json/"

// ErrUnavailable is returned when no position fix could be obtained
var ErrUnavailable = errors.New("location unavailable")

// Locator obtains a one-shot position fix
type Locator interface {
	Locate(ctx context.Context) (Coords, error)
}

// NewLocator returns the locator selected by the location config
func NewLocator(cfg config.LocationConfig) (Locator, error) {
	switch cfg.Provider {
	case config.ProviderStatic:
		return StaticLocator{Position: Coords{Lat: cfg.Latitude, Lng: cfg.Longitude}}, nil
	case config.ProviderIP, "":
		client := &http.Client{Timeout: cfg.Timeout}
		return NewIPLocator(client, cfg.Endpoint), nil
	default:
		return nil, fmt.Errorf("unknown location provider %q", cfg.Provider)
	}
}

// StaticLocator always reports the same position
type StaticLocator struct {
	Position Coords
}

// Locate returns the configured position
func (l StaticLocator) Locate(ctx context.Context) (Coords, error) {
	if !l.Position.Valid() {
		return Coords{}, fmt.Errorf("%w: configured position %s out of range", ErrUnavailable, l.Position)
	}
	return l.Position, nil
}

// IPLocator resolves the position of the current public IP address
type IPLocator struct {
	client   *http.Client
	endpoint string
}

// NewIPLocator creates an IP locator. A nil client means http.DefaultClient.
func NewIPLocator(client *http.Client, endpoint string) *IPLocator {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &IPLocator{client: client, endpoint: endpoint}
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate performs a single lookup. Failures are not retried.
func (l *IPLocator) Locate(ctx context.Context) (Coords, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Coords{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return Coords{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coords{}, fmt.Errorf("%w: lookup returned HTTP %d after %s", ErrUnavailable, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	var body ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coords{}, fmt.Errorf("%w: decoding lookup response: %v", ErrUnavailable, err)
	}
	if body.Status != "success" {
		msg := body.Message
		if msg == "" {
			msg = "status " + body.Status
		}
		return Coords{}, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}

	pos := Coords{Lat: body.Lat, Lng: body.Lon}
	if !pos.Valid() {
		return Coords{}, fmt.Errorf("%w: lookup returned %s", ErrUnavailable, pos)
	}
	return pos, nil
}
