package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	DataDir       string
	SourceFile    string
	ExtractFile   string
	SatelliteFile string
	SeriesFile    string
	CleanFile     string

	SourceYearColumn  int
	SourceValueColumn int

	// Projection settings. ProjectionFile is optional; when empty the
	// embedded default table is used.
	ProjectionFile       string
	ProjectionStartYear  int
	ProjectionEndYear    int
	ProjectionBaselineMM float64
	ProjectionRiseMM     float64

	LogLevel  string
	LogFormat string

	// Optional outbound integrations, disabled when empty.
	KafkaBrokers   []string
	KafkaSinkTopic string
	PushgatewayURL string
	MetricsJob     string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	yearCol, err := parseNonNegativeInt("SOURCE_YEAR_COLUMN", 2)
	if err != nil {
		return nil, err
	}
	valueCol, err := parseNonNegativeInt("SOURCE_VALUE_COLUMN", 8)
	if err != nil {
		return nil, err
	}
	startYear, err := parseNonNegativeInt("PROJECTION_START_YEAR", 2025)
	if err != nil {
		return nil, err
	}
	endYear, err := parseNonNegativeInt("PROJECTION_END_YEAR", 2050)
	if err != nil {
		return nil, err
	}
	baseline, err := parseFloat("PROJECTION_BASELINE_MM", 72.0)
	if err != nil {
		return nil, err
	}
	rise, err := parseFloat("PROJECTION_RISE_MM", 250.0)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		DataDir:       sharedcfg.EnvOrDefault("DATA_DIR", "public"),
		SourceFile:    sharedcfg.EnvOrDefault("SOURCE_FILE", "global_mean_sea_level_1993-2024.csv"),
		ExtractFile:   sharedcfg.EnvOrDefault("EXTRACT_FILE", "complete_satellite_data.csv"),
		SatelliteFile: sharedcfg.EnvOrDefault("SATELLITE_FILE", "satellite_data_1993_2024.csv"),
		SeriesFile:    sharedcfg.EnvOrDefault("SERIES_FILE", "compiled_sea_level_rise_data.csv"),
		CleanFile:     sharedcfg.EnvOrDefault("CLEAN_FILE", "compiled_sea_level_rise_data_clean.csv"),

		SourceYearColumn:  yearCol,
		SourceValueColumn: valueCol,

		ProjectionFile:       os.Getenv("PROJECTION_FILE"),
		ProjectionStartYear:  startYear,
		ProjectionEndYear:    endYear,
		ProjectionBaselineMM: baseline,
		ProjectionRiseMM:     rise,

		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),

		KafkaBrokers:   brokers,
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "sea-level-series"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		MetricsJob:     sharedcfg.EnvOrDefault("METRICS_JOB", "sealevel"),
	}

	if cfg.SourceYearColumn == cfg.SourceValueColumn {
		return nil, errors.New("SOURCE_YEAR_COLUMN and SOURCE_VALUE_COLUMN must differ")
	}
	if cfg.ProjectionEndYear < cfg.ProjectionStartYear {
		return nil, errors.New("PROJECTION_END_YEAR must not be before PROJECTION_START_YEAR")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	return cfg, nil
}

// Path joins a configured file name onto DataDir. Absolute names are returned as-is.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// KafkaEnabled reports whether publishing has somewhere to go.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseNonNegativeInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
