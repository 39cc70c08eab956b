package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"maptrack/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testEndpoint = "http://geo.test/json/"

func newMockedLocator(t *testing.T) *IPLocator {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewIPLocator(client, testEndpoint)
}

func TestIPLocator_Success(t *testing.T) {
	loc := newMockedLocator(t)
	httpmock.RegisterResponder(http.MethodGet, testEndpoint,
		httpmock.NewStringResponder(http.StatusOK, `{"status":"success","lat":51.5074,"lon":-0.1278}`))

	pos, err := loc.Locate(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 51.5074, pos.Lat, 1e-9)
	assert.InDelta(t, -0.1278, pos.Lng, 1e-9)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestIPLocator_Failures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		contains  string
	}{
		{
			name:      "http error status",
			responder: httpmock.NewStringResponder(http.StatusServiceUnavailable, ""),
			contains:  "HTTP 503",
		},
		{
			name:      "lookup reports failure",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"status":"fail","message":"private range"}`),
			contains:  "private range",
		},
		{
			name:      "malformed body",
			responder: httpmock.NewStringResponder(http.StatusOK, `not json`),
			contains:  "decoding lookup response",
		},
		{
			name:      "out of range position",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"status":"success","lat":123,"lon":0}`),
			contains:  "lookup returned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := newMockedLocator(t)
			httpmock.RegisterResponder(http.MethodGet, testEndpoint, tt.responder)

			_, err := loc.Locate(context.Background())

			require.ErrorIs(t, err, ErrUnavailable)
			assert.Contains(t, err.Error(), tt.contains)
			// a failed lookup is never retried
			assert.Equal(t, 1, httpmock.GetTotalCallCount())
		})
	}
}

func TestStaticLocator(t *testing.T) {
	pos, err := StaticLocator{Position: Coords{Lat: 48.85, Lng: 2.35}}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Coords{Lat: 48.85, Lng: 2.35}, pos)

	_, err = StaticLocator{Position: Coords{Lat: 91}}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewLocator(t *testing.T) {
	loc, err := NewLocator(config.LocationConfig{Provider: config.ProviderStatic, Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	assert.IsType(t, StaticLocator{}, loc)

	loc, err = NewLocator(config.LocationConfig{Provider: config.ProviderIP})
	require.NoError(t, err)
	require.IsType(t, &IPLocator{}, loc)
	assert.Equal(t, DefaultEndpoint, loc.(*IPLocator).endpoint)

	_, err = NewLocator(config.LocationConfig{Provider: "gps"})
	assert.Error(t, err)
}

func TestCoordsJSON(t *testing.T) {
	data, err := json.Marshal(Coords{Lat: 12.5, Lng: -7.25})
	require.NoError(t, err)
	assert.JSONEq(t, `[12.5,-7.25]`, string(data))

	var c Coords
	require.NoError(t, json.Unmarshal([]byte(`[1.5, 2.5]`), &c))
	assert.Equal(t, Coords{Lat: 1.5, Lng: 2.5}, c)

	assert.Error(t, json.Unmarshal([]byte(`[1.5]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"lat":1}`), &c))
}
