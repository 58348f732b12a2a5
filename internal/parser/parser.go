// Package parser turns decoded flight and airspace documents into the typed
// records of pkg/core.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/lfvdata/atcviz/internal/timestamp"
)

// Parser provides document -> core record conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Decode reads one JSON document and runs the timestamp normalizer over it.
// Numbers are kept as json.Number so identifiers survive unchanged.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	return timestamp.Normalize(doc), nil
}
