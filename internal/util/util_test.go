package util

import (
	"math"
	"testing"
	"time"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2023, 3, 1, 12, 30, 0, 123456000, time.UTC)
	callsign := "SAS123"
	var nilString *string

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, "None"},
		{"string", "ESSA", "ESSA"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int64", int64(42), "42"},
		{"integral float", 350.0, "350.0"},
		{"fractional float", 59.651944, "59.651944"},
		{"negative float", -0.5, "-0.5"},
		{"large float", 1e21, "1e+21"},
		{"seven digits", 1234567.0, "1234567.0"},
		{"tiny float", 0.00001, "1e-05"},
		{"nan", math.NaN(), "nan"},
		{"time", ts, "2023-03-01 12:30:00.123456"},
		{"string pointer", &callsign, "SAS123"},
		{"nil string pointer", nilString, "None"},
		{"list", []any{"a", int64(1), nil}, "['a', 1, None]"},
		{"object", map[string]any{"b": 2.0, "a": "x"}, "{'a': 'x', 'b': 2.0}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatValue(tt.input)
			if result != tt.expected {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"wtc": 1, "adep": 2, "callsign": 3})
	expected := []string{"adep", "callsign", "wtc"}
	if len(keys) != len(expected) {
		t.Fatalf("SortedKeys returned %v, want %v", keys, expected)
	}
	for i := range keys {
		if keys[i] != expected[i] {
			t.Errorf("SortedKeys()[%d] = %q, want %q", i, keys[i], expected[i])
		}
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]any
		expected string
	}{
		{"empty", map[string]any{}, ""},
		{"single", map[string]any{"fix_name": "ARS"}, "fix_name: ARS\n"},
		{"sorted", map[string]any{"lon": 18.0, "fix_name": "ARS", "afl_value": int64(120)}, "afl_value: 120\nfix_name: ARS\nlon: 18.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Description(tt.fields)
			if result != tt.expected {
				t.Errorf("Description(%v) = %q, want %q", tt.fields, result, tt.expected)
			}
		})
	}
}

func TestTitledDescription(t *testing.T) {
	result := TitledDescription("fpl_dep", map[string]any{"wtc": "M", "adep": "ESSA"})
	if result != "fpl_dep\nadep: ESSA\nwtc: M" {
		t.Errorf("TitledDescription = %q", result)
	}
}

func TestDeref(t *testing.T) {
	s := "ESGG"
	if Deref(&s) != "ESGG" {
		t.Errorf("Deref(&%q) = %q", s, Deref(&s))
	}
	if Deref(nil) != "" {
		t.Errorf("Deref(nil) = %q, want empty", Deref(nil))
	}
}
