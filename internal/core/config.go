package core

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config gathers every environment knob the binaries read. The storage
// and blob factories also honor these variables directly; the struct
// gives the CLI one parsed view of them.
type Config struct {
	DBDriver   string `env:"ETYMON_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"ETYMON_DB_PATH"`
	DBDSN      string `env:"ETYMON_DB_DSN"`
	BlobDriver string `env:"ETYMON_BLOB_DRIVER" envDefault:"fs"`
	BlobFSRoot string `env:"ETYMON_BLOB_FS_ROOT"`
	S3Bucket   string `env:"ETYMON_BLOB_S3_BUCKET"`
	S3Region   string `env:"ETYMON_BLOB_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint string `env:"ETYMON_BLOB_S3_ENDPOINT"`
	Metrics    string `env:"ETYMON_METRICS" envDefault:"expvar"`
	Verbose    bool   `env:"ETYMON_VERBOSE"`
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// MetricsRecorderFor returns the recorder selected by the configuration:
// expvar by default, prometheus when requested.
func (c Config) MetricsRecorderFor() (MetricsRecorder, error) {
	switch c.Metrics {
	case "", "expvar":
		return NewExpvarMetricsRecorder(""), nil
	case "prometheus":
		return NewPrometheusMetricsRecorder(), nil
	default:
		return nil, fmt.Errorf("unknown metrics recorder %s", c.Metrics)
	}
}
