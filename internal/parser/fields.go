package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/lfvdata/atcviz/internal/timestamp"
	"github.com/lfvdata/atcviz/pkg/core"
)

// object is a decoded JSON object together with the identity of the record
// it belongs to and its path inside that record, so every failure can be
// reported with enough context to find the offending input.
type object struct {
	record string
	path   string
	m      map[string]any
	used   map[string]bool
}

func newObject(record, path string, v any) (*object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(record, path, fmt.Errorf("expected object, got %T", v))
	}
	return &object{record: record, path: path, m: m, used: map[string]bool{}}, nil
}

func (o *object) fieldPath(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.m[key]
	if ok {
		o.used[key] = true
	}
	return v, ok
}

// has reports whether key is a member, null or not.
func (o *object) has(key string) bool {
	_, ok := o.m[key]
	return ok
}

func (o *object) require(key string) (any, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, missing(o.record, o.fieldPath(key))
	}
	return v, nil
}

func (o *object) child(key string) (*object, error) {
	v, err := o.require(key)
	if err != nil {
		return nil, err
	}
	return newObject(o.record, o.fieldPath(key), v)
}

func (o *object) list(key string) ([]any, error) {
	v, err := o.require(key)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]any)
	if !ok {
		return nil, invalid(o.record, o.fieldPath(key), fmt.Errorf("expected array, got %T", v))
	}
	return l, nil
}

// text reads a string-like scalar. Numbers are accepted and rendered as
// written, since identifiers are often numeric in upstream documents.
func (o *object) text(key string) (string, error) {
	v, err := o.require(key)
	if err != nil {
		return "", err
	}
	s, ok := asText(v)
	if !ok {
		return "", invalid(o.record, o.fieldPath(key), fmt.Errorf("expected string, got %T", v))
	}
	return s, nil
}

// optText reads a nullable string. Absent and null both yield nil.
func (o *object) optText(key string) (*string, error) {
	v, ok := o.get(key)
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := asText(v)
	if !ok {
		return nil, invalid(o.record, o.fieldPath(key), fmt.Errorf("expected string, got %T", v))
	}
	return &s, nil
}

func (o *object) number(key string) (float64, error) {
	v, err := o.require(key)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, invalid(o.record, o.fieldPath(key), fmt.Errorf("expected number, got %T", v))
	}
	return f, nil
}

func (o *object) instant(key string) (time.Time, error) {
	v, err := o.require(key)
	if err != nil {
		return time.Time{}, err
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Time{}, invalid(o.record, o.fieldPath(key), fmt.Errorf("%q: %w", t, timestamp.ErrUnparseable))
	default:
		return time.Time{}, invalid(o.record, o.fieldPath(key), fmt.Errorf("expected timestamp, got %T", v))
	}
}

// rest returns every member that was not read through one of the accessors.
func (o *object) rest() core.Attributes {
	attrs := core.Attributes{}
	for k, v := range o.m {
		if o.used[k] {
			continue
		}
		attrs[k] = plain(v)
	}
	return attrs
}

func asText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// plain converts json.Number leaves into int64 or float64 so attribute values
// keep the distinction between integral and fractional literals.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i
		}
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[k] = plain(el)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = plain(el)
		}
		return out
	default:
		return v
	}
}
