package main

import (
	"errors"
	"fmt"

	"github.com/lfvdata/atcviz/internal/config"
	"github.com/lfvdata/atcviz/internal/storage"
	"github.com/lfvdata/atcviz/internal/worker"
	"github.com/lfvdata/atcviz/pkg/core"
	"github.com/rs/zerolog"
)

// writeIndex writes the successful entries of report to the configured sink,
// in archive order. Failed flights are left out.
func writeIndex(cfg config.IndexConfig, log zerolog.Logger, report *worker.Report[core.IndexEntry]) (err error) {
	backend, err := storage.NewBackend(cfg, log)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("init %s sink: %w", cfg.Sink, err)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s sink: %w", cfg.Sink, cerr))
		}
	}()

	for i := range report.Results {
		res := &report.Results[i]
		if res.Err != nil {
			continue
		}
		if err := backend.WriteEntry(&res.Value, res.Name); err != nil {
			return fmt.Errorf("write %s: %w", res.Name, err)
		}
	}

	log.Debug().Str("sink", cfg.Sink).Int("entries", report.Succeeded()).Msg("Index entries written")
	return nil
}
