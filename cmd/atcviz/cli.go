package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lfvdata/atcviz/internal/align"
	"github.com/lfvdata/atcviz/internal/archive"
	"github.com/lfvdata/atcviz/internal/config"
	"github.com/lfvdata/atcviz/internal/geo"
	"github.com/lfvdata/atcviz/internal/index"
	"github.com/lfvdata/atcviz/internal/influx"
	"github.com/lfvdata/atcviz/internal/kml"
	"github.com/lfvdata/atcviz/internal/parser"
	"github.com/lfvdata/atcviz/internal/scene"
	"github.com/lfvdata/atcviz/internal/worker"
	"github.com/lfvdata/atcviz/pkg/core"
	"github.com/spf13/pflag"
)

// ErrUnknownInput is returned for airspace inputs that are neither JSON nor
// an archive.
var ErrUnknownInput = errors.New("unknown input extension")

type indexCmd struct {
	archive string
}

func (c *indexCmd) flags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.archive, "archive", "a", "", "archive to index (required)")
	fs.StringP("output", "o", "index.csv", "index file (csv or sqlite)")
	fs.String("sink", "csv", "index sink: csv, sqlite or postgres")
}

func (c *indexCmd) bindings() map[string]string {
	return map[string]string{
		"index.output": "output",
		"index.sink":   "sink",
	}
}

func (c *indexCmd) progress() int { return 1000 }

func (c *indexCmd) run(ctx context.Context, a *app, _ []string) error {
	if c.archive == "" {
		return errors.New("no archive given (-a)")
	}

	arc, err := archive.Open(c.archive)
	if err != nil {
		return err
	}
	defer arc.Close()

	names := arc.FlightEntries()
	a.log.Info("Indexing archive", "archive", c.archive, "flights", len(names))

	ix := index.NewIndexer(parser.NewParser(a.log), a.log)
	report := worker.Run(ctx, a.pool, "index", names, func(ctx context.Context, name string) (core.IndexEntry, error) {
		rc, err := arc.Open(name)
		if err != nil {
			return core.IndexEntry{}, err
		}
		defer rc.Close()
		return ix.Entry(name, rc)
	})

	cfg := config.Index()
	if err := writeIndex(cfg, a.zlog, report); err != nil {
		return err
	}
	a.log.Info("Index written", "sink", cfg.Sink, "output", cfg.Output, "entries", report.Succeeded())
	return report.Err()
}

type flightCmd struct {
	archive string
}

func (c *flightCmd) flags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.archive, "archive", "a", "", "read flight documents from this archive instead of files")
	fs.StringP("output", "o", ".", "output directory")
	fs.String("icons", "icons", "directory holding the icon images")
	fs.Bool("keep-kml", false, "also write the plain .kml next to each .kmz")
}

func (c *flightCmd) bindings() map[string]string {
	return map[string]string{
		"output.dir":     "output",
		"output.icons":   "icons",
		"output.keepKml": "keep-kml",
	}
}

func (c *flightCmd) progress() int { return 100 }

func (c *flightCmd) run(ctx context.Context, a *app, args []string) error {
	var src archive.Source = archive.Files{}
	names := args
	if c.archive != "" {
		arc, err := archive.Open(c.archive)
		if err != nil {
			return err
		}
		defer arc.Close()
		src = arc
		if len(names) == 0 {
			names = arc.FlightEntries()
		}
	}
	if len(names) == 0 {
		return errors.New("no flight documents given")
	}

	out := config.Output()
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	conv := &flightConverter{
		src:    src,
		parser: parser.NewParser(a.log),
		kmz:    kml.NewWriter(out.Icons, out.KeepKML, a.log),
		outDir: out.Dir,
		stats:  a.stats,
		log:    a.log,
	}
	report := worker.Run(ctx, a.pool, "flight", names, conv.convert)
	return report.Err()
}

type flightConverter struct {
	src    archive.Source
	parser *parser.Parser
	kmz    *kml.Writer
	outDir string
	stats  *influx.Manager
	log    *slog.Logger
}

// convert turns one flight document into a KMZ and returns its path.
func (c *flightConverter) convert(_ context.Context, name string) (dst string, err error) {
	start := time.Now()
	stats := influx.Stats{Kind: "flight", Name: name}
	defer func() {
		stats.Duration = time.Since(start)
		stats.OK = err == nil
		if werr := c.stats.WriteStats(stats); werr != nil {
			c.log.Warn("Writing conversion stats", "name", name, "error", werr)
		}
	}()

	rc, err := c.src.Open(name)
	if err != nil {
		return "", err
	}
	f, err := c.parser.DecodeFlight(rc)
	rc.Close()
	if err != nil {
		return "", err
	}
	stats.Name = f.ID
	stats.Plots = len(f.Plots)
	stats.Fixes = len(f.Predicted)

	events, err := align.Flight(f)
	if err != nil {
		return "", err
	}
	stats.Events = len(events)

	doc := scene.Flight(f, events)
	stats.Placemarks = doc.PlacemarkCount()

	dst = kml.KMZPath(c.outDir, name)
	if err := c.kmz.WriteKMZ(dst, &doc); err != nil {
		return "", err
	}
	c.log.Debug("Converted flight", "flight", f.ID, "output", dst, "placemarks", stats.Placemarks)
	return dst, nil
}

type airspaceCmd struct {
	inputs []string
	output string
}

func (c *airspaceCmd) flags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&c.inputs, "input", "i", nil, "airspace.json or archive holding one (repeatable)")
	fs.StringVarP(&c.output, "output", "o", "", "output .kmz, or directory when several inputs are given")
	fs.String("icons", "icons", "directory holding the icon images")
	fs.Bool("keep-kml", false, "also write the plain .kml next to each .kmz")
	fs.Bool("validate", false, "skip sector volumes with invalid geometry")
}

func (c *airspaceCmd) bindings() map[string]string {
	return map[string]string{
		"output.icons":             "icons",
		"output.keepKml":           "keep-kml",
		"airspace.validateVolumes": "validate",
	}
}

func (c *airspaceCmd) progress() int { return 0 }

func (c *airspaceCmd) run(ctx context.Context, a *app, args []string) error {
	inputs := append(append([]string(nil), c.inputs...), args...)
	if len(inputs) == 0 {
		return errors.New("no airspace input given (-i)")
	}

	out := config.Output()
	conv := &airspaceConverter{
		parser:   parser.NewParser(a.log),
		kmz:      kml.NewWriter(out.Icons, out.KeepKML, a.log),
		validate: config.GetBool("airspace.validateVolumes"),
		stats:    a.stats,
		log:      a.log,
	}

	switch {
	case len(inputs) == 1 && c.output != "":
		if err := os.MkdirAll(filepath.Dir(c.output), 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		conv.dst = func(string) string { return c.output }
	default:
		dir := c.output
		if dir == "" {
			dir = out.Dir
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		conv.dst = func(input string) string { return kml.KMZPath(dir, input) }
	}

	report := worker.Run(ctx, a.pool, "airspace", inputs, conv.convert)
	return report.Err()
}

type airspaceConverter struct {
	parser   *parser.Parser
	kmz      *kml.Writer
	dst      func(input string) string
	validate bool
	stats    *influx.Manager
	log      *slog.Logger
}

// convert writes the airspaces of one input to a KMZ. Malformed airspaces and
// sectors are skipped and reported; the rest are still written.
func (c *airspaceConverter) convert(_ context.Context, input string) (dst string, err error) {
	start := time.Now()
	stats := influx.Stats{Kind: "airspace", Name: filepath.Base(input)}
	defer func() {
		stats.Duration = time.Since(start)
		stats.OK = err == nil
		if werr := c.stats.WriteStats(stats); werr != nil {
			c.log.Warn("Writing conversion stats", "name", input, "error", werr)
		}
	}()

	rc, err := openAirspace(input)
	if err != nil {
		return "", err
	}
	airspaces, recErrs := c.parser.DecodeAirspaces(rc)
	rc.Close()
	if len(airspaces) == 0 && len(recErrs) > 0 {
		return "", errors.Join(recErrs...)
	}
	for _, e := range recErrs {
		c.log.Warn("Skipping malformed record", "input", input, "error", e)
	}

	if c.validate {
		airspaces = validVolumes(airspaces, c.log)
	}

	doc := scene.Airspaces(airspaces)
	stats.Placemarks = doc.PlacemarkCount()

	dst = c.dst(input)
	if err := c.kmz.WriteKMZ(dst, &doc); err != nil {
		return "", err
	}
	c.log.Info("Converted airspace", "input", input, "output", dst, "airspaces", len(airspaces))
	return dst, errors.Join(recErrs...)
}

// openAirspace opens an airspace document by extension: .json is read
// directly, .zip through its airspace entry.
func openAirspace(input string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".json":
		return archive.Files{}.Open(input)
	case ".zip":
		arc, err := archive.Open(input)
		if err != nil {
			return nil, err
		}
		rc, err := arc.OpenAirspace()
		if err != nil {
			arc.Close()
			return nil, err
		}
		return &archiveEntry{ReadCloser: rc, arc: arc}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownInput, input)
	}
}

// archiveEntry closes its archive along with the entry.
type archiveEntry struct {
	io.ReadCloser
	arc *archive.Archive
}

func (e *archiveEntry) Close() error {
	return errors.Join(e.ReadCloser.Close(), e.arc.Close())
}

// validVolumes drops sector volumes that fail geometry validation.
func validVolumes(airspaces []core.Airspace, log *slog.Logger) []core.Airspace {
	out := make([]core.Airspace, len(airspaces))
	for i, asp := range airspaces {
		sectors := make([]core.Sector, len(asp.Sectors))
		for j, sec := range asp.Sectors {
			vols := make([]core.SectorVolume, 0, len(sec.Volumes))
			for k, vol := range sec.Volumes {
				if err := geo.ValidateVolume(vol); err != nil {
					log.Warn("Skipping invalid volume",
						"airspace", asp.Name, "sector", sec.Name, "volume", k, "error", err)
					continue
				}
				vols = append(vols, vol)
			}
			sec.Volumes = vols
			sectors[j] = sec
		}
		asp.Sectors = sectors
		out[i] = asp
	}
	return out
}
