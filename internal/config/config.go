package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the config directory.
const FileName = "atcviz.cfg.json"

// OutputConfig holds KML/KMZ output settings
type OutputConfig struct {
	Dir     string `json:"dir" mapstructure:"dir"`
	Icons   string `json:"icons" mapstructure:"icons"`
	KeepKML bool   `json:"keepKml" mapstructure:"keepKml"`
}

// IndexConfig holds archive index sink settings
type IndexConfig struct {
	Sink   string `json:"sink" mapstructure:"sink"` // csv, sqlite or postgres
	Output string `json:"output" mapstructure:"output"`
}

// WorkerConfig holds batch fan-out settings
type WorkerConfig struct {
	Concurrency int `json:"concurrency" mapstructure:"concurrency"`
}

// InfluxConfig holds the conversion stats sink settings
type InfluxConfig struct {
	Enabled    bool
	URL        string
	Token      string
	Org        string
	Bucket     string
	BackupPath string
}

// Load sets default values and reads the JSON config file from configDir
// when one is present. An empty configDir skips the file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./atcvizlogs")
	viper.SetDefault("logToFile", true)

	viper.SetDefault("worker.concurrency", runtime.NumCPU())

	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.icons", "icons")
	viper.SetDefault("output.keepKml", false)

	viper.SetDefault("airspace.validateVolumes", false)

	viper.SetDefault("index.sink", "csv")
	viper.SetDefault("index.output", "index.csv")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "atcviz")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "lfv")
	viper.SetDefault("influx.bucket", "atcviz")
	viper.SetDefault("influx.backupPath", "./atcvizlogs/influx_backup.log.gzip")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	if configDir == "" {
		return nil
	}

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// BindFlag makes a command-line flag override the config key when the flag
// is set.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind to %s", key)
	}
	return viper.BindPFlag(key, flag)
}

// Output returns the output settings.
func Output() OutputConfig {
	return OutputConfig{
		Dir:     viper.GetString("output.dir"),
		Icons:   viper.GetString("output.icons"),
		KeepKML: viper.GetBool("output.keepKml"),
	}
}

// Index returns the index sink settings.
func Index() IndexConfig {
	return IndexConfig{
		Sink:   viper.GetString("index.sink"),
		Output: viper.GetString("index.output"),
	}
}

// Worker returns the fan-out settings. Concurrency is at least one.
func Worker() WorkerConfig {
	c := WorkerConfig{Concurrency: viper.GetInt("worker.concurrency")}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	return c
}

// Influx returns the InfluxDB settings with the server URL assembled from
// protocol, host and port.
func Influx() InfluxConfig {
	return InfluxConfig{
		Enabled: viper.GetBool("influx.enabled"),
		URL: fmt.Sprintf("%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
