package timestamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"microseconds", "2020-01-01T10:00:00.123456", time.Date(2020, 1, 1, 10, 0, 0, 123456000, time.UTC), true},
		{"whole seconds", "2020-01-01T10:00:00", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), true},
		{"millis", "2020-01-01T10:00:00.5", time.Date(2020, 1, 1, 10, 0, 0, 500000000, time.UTC), true},
		{"nanoseconds truncated", "2021-06-30T23:59:59.123456789", time.Date(2021, 6, 30, 23, 59, 59, 123456000, time.UTC), true},
		{"trailing zone after 26 chars", "2020-01-01T10:00:00.123456+01:00", time.Date(2020, 1, 1, 10, 0, 0, 123456000, time.UTC), true},
		{"not a date", "not-a-date", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"date only", "2020-01-01", time.Time{}, false},
		{"trailing dot", "2020-01-01T10:00:00.", time.Time{}, false},
		{"zulu suffix", "2020-01-01T10:00:00Z", time.Time{}, false},
		{"short fraction with zone", "2020-01-01T10:00:00.12Z", time.Time{}, false},
		{"space separator", "2020-01-01 10:00:00", time.Time{}, false},
		{"invalid month", "2020-13-01T10:00:00", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if !tt.wantOK {
				require.ErrorIs(t, err, ErrUnparseable)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "Parse(%q) = %v, want %v", tt.input, got, tt.want)
		})
	}
}

func TestParse_Microsecond(t *testing.T) {
	got, err := Parse("2020-01-01T10:00:00.123456")
	require.NoError(t, err)
	assert.Equal(t, 123456, got.Nanosecond()/1000)

	got, err = Parse("2020-01-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Nanosecond()/1000)
}

func TestNormalize(t *testing.T) {
	doc := map[string]any{
		"id":         "2020-01-01T10:00:00",
		"callsign":   "SAS123",
		"time_stamp": "2020-01-01T10:00:00.250000",
		"count":      3.0,
		"nested": map[string]any{
			"time_of_track": "2020-01-01T10:00:01",
		},
		"list": []any{
			"2020-01-01T10:00:02",
			map[string]any{"t": "2020-01-01T10:00:03"},
		},
	}

	out := Normalize(doc).(map[string]any)

	// any member that matches is converted, whatever its name
	assert.IsType(t, time.Time{}, out["id"])
	assert.Equal(t, "SAS123", out["callsign"])
	assert.IsType(t, time.Time{}, out["time_stamp"])
	assert.Equal(t, 3.0, out["count"])
	assert.IsType(t, time.Time{}, out["nested"].(map[string]any)["time_of_track"])

	list := out["list"].([]any)
	assert.Equal(t, "2020-01-01T10:00:02", list[0], "array elements are not members")
	assert.IsType(t, time.Time{}, list[1].(map[string]any)["t"])
}

func TestNormalize_Scalars(t *testing.T) {
	assert.Equal(t, "2020-01-01T10:00:00", Normalize("2020-01-01T10:00:00"))
	assert.Equal(t, 1.5, Normalize(1.5))
	assert.Nil(t, Normalize(nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2020-01-01 10:00:00", Format(time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2020-01-01 10:00:00.123456", Format(time.Date(2020, 1, 1, 10, 0, 0, 123456000, time.UTC)))
	assert.Equal(t, "2020-01-01 10:00:00.000500", Format(time.Date(2020, 1, 1, 10, 0, 0, 500000, time.UTC)))
}
