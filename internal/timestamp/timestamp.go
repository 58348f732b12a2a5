// Package timestamp recognises the textual instants found in recorded
// flight documents and turns them into time.Time values.
package timestamp

import (
	"errors"
	"time"
)

const (
	layoutWhole = "2006-01-02T15:04:05"

	// fractional form is YYYY-MM-DDTHH:MM:SS.ffffff; anything past the
	// microsecond digit is cut off before parsing
	maxFractionalLen = 26
	wholeLen         = len(layoutWhole)
)

// ErrUnparseable is returned when a string is not a recognised timestamp.
// Callers keep the original text in that case.
var ErrUnparseable = errors.New("not a timestamp")

// Parse converts s into an instant. The fractional form is tried first on the
// first 26 characters of s, then the whole-second form on all of s.
func Parse(s string) (time.Time, error) {
	if t, ok := parseFractional(s); ok {
		return t, nil
	}
	if t, ok := parseWhole(s); ok {
		return t, nil
	}
	return time.Time{}, ErrUnparseable
}

func parseFractional(s string) (time.Time, bool) {
	if len(s) > maxFractionalLen {
		s = s[:maxFractionalLen]
	}
	// "." followed by 1 to 6 digits and nothing else
	if len(s) < wholeLen+2 || s[wholeLen] != '.' {
		return time.Time{}, false
	}
	if !allDigits(s[wholeLen+1:]) {
		return time.Time{}, false
	}
	if !hasShape(s[:wholeLen]) {
		return time.Time{}, false
	}
	t, err := time.Parse(layoutWhole+".999999", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseWhole(s string) (time.Time, bool) {
	if len(s) != wholeLen || !hasShape(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(layoutWhole, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// hasShape reports whether s looks like YYYY-MM-DDTHH:MM:SS. time.Parse alone
// is more lenient than we want about what follows the seconds.
func hasShape(s string) bool {
	if len(s) != wholeLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		case 10:
			if s[i] != 'T' {
				return false
			}
		case 13, 16:
			if s[i] != ':' {
				return false
			}
		default:
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Normalize walks a decoded JSON value and replaces every string object
// member that parses as a timestamp with its time.Time. Arrays are walked to
// reach nested objects, but strings that are array elements stay as they are.
// Maps are modified in place; the (possibly same) value is returned.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, member := range x {
			switch m := member.(type) {
			case string:
				if t, err := Parse(m); err == nil {
					x[k] = t
				}
			default:
				x[k] = Normalize(m)
			}
		}
		return x
	case []any:
		for i, el := range x {
			if _, ok := el.(string); ok {
				continue
			}
			x[i] = Normalize(el)
		}
		return x
	default:
		return v
	}
}

// Format renders an instant as YYYY-MM-DD HH:MM:SS, with a six digit
// fraction only when the microsecond is non-zero.
func Format(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02 15:04:05.000000")
}
