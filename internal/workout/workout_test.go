package workout

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maptrack/internal/geo"
)

var testTime = time.Date(2024, time.March, 7, 9, 30, 0, 0, time.UTC)

func fixedFactory() Factory {
	n := 0
	return Factory{
		Now: func() time.Time { return testTime },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func TestDerivedMetrics(t *testing.T) {
	tests := []struct {
		distance float64
		duration float64
	}{
		{5, 30},
		{10, 47.5},
		{0.4, 3},
		{42.195, 215},
		{1e-3, 1e3},
	}

	f := fixedFactory()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v km in %v min", tt.distance, tt.duration), func(t *testing.T) {
			run, err := f.Running(geo.Coords{}, tt.distance, tt.duration, 170)
			require.NoError(t, err)
			assert.Equal(t, tt.duration/tt.distance, run.Running.Pace)

			ride, err := f.Cycling(geo.Coords{}, tt.distance, tt.duration, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.distance/(tt.duration/60), ride.Cycling.Speed)
		})
	}
}

func TestRunning(t *testing.T) {
	at := geo.Coords{Lat: 51.5, Lng: -0.12}
	rec, err := fixedFactory().Running(at, 5, 30, 150)
	require.NoError(t, err)

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, Running, rec.Kind)
	assert.Equal(t, at, rec.Coords)
	assert.Equal(t, testTime, rec.CreatedAt)
	assert.Equal(t, "Running on March 7", rec.Description)
	assert.Zero(t, rec.Clicks)
	require.NotNil(t, rec.Running)
	assert.Nil(t, rec.Cycling)
	assert.Equal(t, 150.0, rec.Running.Cadence)
	assert.Equal(t, 6.0, rec.Running.Pace)

	value, unit := rec.Metric()
	assert.Equal(t, 6.0, value)
	assert.Equal(t, "min/km", unit)
}

func TestCycling(t *testing.T) {
	rec, err := fixedFactory().Cycling(geo.Coords{Lat: 1, Lng: 2}, 20, 60, 100)
	require.NoError(t, err)

	assert.Equal(t, Cycling, rec.Kind)
	assert.Equal(t, "Cycling on March 7", rec.Description)
	require.NotNil(t, rec.Cycling)
	assert.Nil(t, rec.Running)
	assert.Equal(t, 20.0, rec.Cycling.Speed)
	assert.Equal(t, 100.0, rec.Cycling.ElevationGain)

	value, unit := rec.Metric()
	assert.Equal(t, 20.0, value)
	assert.Equal(t, "km/h", unit)
}

func TestZeroDivisors(t *testing.T) {
	_, err := NewRunning(geo.Coords{}, 0, 30, 150)
	assert.ErrorIs(t, err, ErrZeroDistance)

	_, err = NewCycling(geo.Coords{}, 20, 0, 100)
	assert.ErrorIs(t, err, ErrZeroDuration)
}

func TestFromDraft(t *testing.T) {
	f := fixedFactory()

	run, err := f.FromDraft(Draft{Kind: Running, Distance: 10, Duration: 50, Cadence: 180, ElevationGain: 999})
	require.NoError(t, err)
	assert.Equal(t, 5.0, run.Running.Pace)
	assert.Equal(t, 180.0, run.Running.Cadence)

	ride, err := f.FromDraft(Draft{Kind: Cycling, Distance: 30, Duration: 90, Cadence: 999, ElevationGain: 250})
	require.NoError(t, err)
	assert.Equal(t, 20.0, ride.Cycling.Speed)
	assert.Equal(t, 250.0, ride.Cycling.ElevationGain)

	_, err = f.FromDraft(Draft{Kind: "swimming", Distance: 1, Duration: 1})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		kind Kind
		when time.Time
		want string
	}{
		{Running, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "Running on January 1"},
		{Cycling, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "Cycling on February 29"},
		{Running, time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC), "Running on December 31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.kind, tt.when))
	}
}

func TestNewID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRecordJSON_WireShape(t *testing.T) {
	rec, err := fixedFactory().Running(geo.Coords{Lat: 10, Lng: 20}, 5, 30, 150)
	require.NoError(t, err)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, []any{10.0, 20.0}, obj["coords"])
	assert.Equal(t, "running", obj["type"])
	assert.Equal(t, 6.0, obj["pace"])
	assert.Equal(t, 150.0, obj["cadence"])
	assert.Equal(t, 0.0, obj["clicks"])
	assert.Equal(t, "Running on March 7", obj["description"])
	assert.NotContains(t, obj, "speed")
	assert.NotContains(t, obj, "elevationGain")
}

func TestRecordJSON_RebuildsVariant(t *testing.T) {
	raw := `{"coords":[1,2],"distance":20,"duration":60,"date":"2024-03-07T09:30:00.000Z",
		"id":"1709803800","description":"Cycling on March 7","clicks":0,"type":"cycling",
		"elevationGain":-5,"speed":20}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	assert.Equal(t, Cycling, rec.Kind)
	require.NotNil(t, rec.Cycling)
	assert.Nil(t, rec.Running)
	assert.Equal(t, -5.0, rec.Cycling.ElevationGain)
	value, _ := rec.Metric()
	assert.Equal(t, 20.0, value)
	assert.True(t, rec.CreatedAt.Equal(testTime))
}

func TestRecordJSON_RecomputesMissingMetric(t *testing.T) {
	raw := `{"coords":[1,2],"distance":4,"duration":22,"date":"2024-03-07T09:30:00Z","id":"a","type":"running","cadence":170}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, 5.5, rec.Running.Pace)
	assert.Equal(t, "Running on March 7", rec.Description)
}

func TestRecordJSON_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown type":       `{"id":"a","type":"rowing","coords":[0,0]}`,
		"missing id":         `{"type":"running","cadence":1,"coords":[0,0]}`,
		"running no variant": `{"id":"a","type":"running","coords":[0,0]}`,
		"cycling no variant": `{"id":"a","type":"cycling","coords":[0,0]}`,
		"bad coords":         `{"id":"a","type":"running","cadence":1,"coords":[0]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			var rec Record
			assert.Error(t, json.Unmarshal([]byte(raw), &rec))
		})
	}
}

func TestRecordJSON_MarshalRejectsBrokenUnion(t *testing.T) {
	_, err := json.Marshal(Record{ID: "x", Kind: Running})
	assert.Error(t, err)
}
