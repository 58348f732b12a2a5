// Package util provides small formatting helpers shared by the scene and
// index writers.
package util

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lfvdata/atcviz/internal/timestamp"
)

// FormatValue renders a document value the way the upstream tooling prints
// it: None for null, True/False for booleans, integral floats with a
// trailing ".0", instants in the record timestamp format.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case time.Time:
		return timestamp.Format(x)
	case *time.Time:
		if x == nil {
			return "None"
		}
		return timestamp.Format(*x)
	case *string:
		if x == nil {
			return "None"
		}
		return *x
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = quoted(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := SortedKeys(x)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = "'" + k + "': " + quoted(x[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}

// quoted is FormatValue for container members, where strings are quoted.
func quoted(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return FormatValue(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	format := byte('f')
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Description renders fields as "key: value" lines in key order. Each line,
// the last included, ends with a newline.
func Description(fields map[string]any) string {
	var b strings.Builder
	for _, k := range SortedKeys(fields) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(FormatValue(fields[k]))
		b.WriteByte('\n')
	}
	return b.String()
}

// TitledDescription renders a heading followed by one "key: value" line per
// field in key order. Unlike Description there is no trailing newline.
func TitledDescription(title string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(title)
	for _, k := range SortedKeys(fields) {
		b.WriteByte('\n')
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(FormatValue(fields[k]))
	}
	return b.String()
}

// Deref returns the string p points to, or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
