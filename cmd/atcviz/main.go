// Command atcviz converts recorded ATC flight and airspace documents to
// KMZ and indexes flight archives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lfvdata/atcviz/internal/config"
	"github.com/lfvdata/atcviz/internal/influx"
	"github.com/lfvdata/atcviz/internal/logging"
	"github.com/lfvdata/atcviz/internal/worker"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// BuildDate can be set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "unknown"

	ProgramName = "atcviz"
)

const usage = `usage: atcviz <command> [flags]

commands:
  index     index the flights of an archive (-a archive.zip -o index.csv)
  flight    convert flight documents to KMZ (-o outdir files...)
  airspace  convert airspace documents to KMZ (-i airspace.json -o out.kmz)
  version   print the version

Run "atcviz <command> --help" for the flags of a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run dispatches to a subcommand and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd command
	switch args[0] {
	case "index":
		cmd = &indexCmd{}
	case "flight":
		cmd = &flightCmd{}
	case "airspace":
		cmd = &airspaceCmd{}
	case "version":
		fmt.Fprintf(stderr, "%s %s (built %s)\n", ProgramName, Version, BuildDate)
		return 0
	case "-h", "--help", "help":
		fmt.Fprint(stderr, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	cmd.flags(fs)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := setup(ctx, fs, common, cmd)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return 1
	}
	defer a.close()

	if err := cmd.run(ctx, a, fs.Args()); err != nil {
		a.log.Error("Command failed", "command", args[0], "error", err)
		return 1
	}
	return 0
}

// command is one atcviz subcommand.
type command interface {
	flags(fs *pflag.FlagSet)
	// bindings maps config keys to flag names.
	bindings() map[string]string
	// progress is the worker progress interval, zero for none.
	progress() int
	run(ctx context.Context, a *app, args []string) error
}

type commonFlags struct {
	configDir string
}

func addCommonFlags(fs *pflag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configDir, "config", ".", "directory holding "+config.FileName)
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.Int("concurrency", 0, "maximum documents converted at once (default: number of CPUs)")
	return c
}

// app holds the services shared by all subcommands.
type app struct {
	slog    *logging.SlogManager
	log     *slog.Logger
	zlog    zerolog.Logger
	pool    *worker.Pool
	stats   *influx.Manager
	logFile *os.File
}

func setup(ctx context.Context, fs *pflag.FlagSet, common *commonFlags, cmd command) (*app, error) {
	if err := config.Load(common.configDir); err != nil {
		return nil, err
	}

	bindings := map[string]string{
		"logLevel":           "log-level",
		"worker.concurrency": "concurrency",
	}
	for key, flag := range cmd.bindings() {
		bindings[key] = flag
	}
	for key, flag := range bindings {
		if err := config.BindFlag(key, fs.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	a := &app{slog: logging.NewSlogManager()}
	level := config.GetString("logLevel")

	if config.GetBool("logToFile") {
		logsDir := config.GetString("logsDir")
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("create logs dir: %w", err)
		}
		path := logging.LogFilePath(logsDir, ProgramName, time.Now().UTC())
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
	}

	var extra []io.Writer
	if config.GetBool("graylog.enabled") {
		gw, err := logging.NewGraylogWriter(config.GetString("graylog.address"), ProgramName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "graylog disabled: %v\n", err)
		} else {
			extra = append(extra, gw)
		}
	}

	opts := logging.Options{Level: level, Extra: extra}
	var zfile io.Writer
	if a.logFile != nil {
		// console and file both, like the zerolog side
		opts.File = io.MultiWriter(os.Stdout, a.logFile)
		zfile = a.logFile
	}
	a.slog.Setup(opts)
	a.log = a.slog.Logger()
	a.zlog = logging.NewZerolog(zfile, level, extra...)

	if a.logFile != nil {
		a.log.Info("Logging to file", "path", a.logFile.Name())
	}

	var poolOpts []worker.Option
	if n := cmd.progress(); n > 0 {
		poolOpts = append(poolOpts, worker.WithProgress(n))
	}
	pool, err := worker.New(config.Worker().Concurrency, a.log, poolOpts...)
	if err != nil {
		a.close()
		return nil, err
	}
	a.pool = pool

	influxCfg := config.Influx()
	if influxCfg.Enabled {
		m := influx.NewManager(a.zlog, influxCfg)
		if err := m.Connect(ctx); err != nil {
			a.log.Warn("Conversion stats disabled", "error", err)
		} else {
			a.stats = m
		}
	}

	a.log.Debug("Set up", "version", Version, "concurrency", pool.Limit())
	return a, nil
}

func (a *app) close() {
	if err := a.stats.Close(); err != nil {
		a.log.Warn("Closing InfluxDB", "error", err)
	}
	if err := a.slog.Close(context.Background()); err != nil {
		a.log.Warn("Closing log sinks", "error", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
