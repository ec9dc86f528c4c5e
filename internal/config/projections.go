package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

//go:embed projections.yaml
var defaultProjections []byte

type projectionFile struct {
	Projections []projectionPoint `yaml:"projections"`
}

type projectionPoint struct {
	Year  *float64 `yaml:"year"`
	Value *float64 `yaml:"value"`
}

// LoadProjectionTable returns the fixed projection rows to append. It reads
// the YAML file at c.ProjectionFile from fs, or the embedded default table
// when no file is configured.
func (c *Config) LoadProjectionTable(fs afero.Fs) ([]domain.Measurement, error) {
	data := defaultProjections
	source := "embedded projections.yaml"

	if c.ProjectionFile != "" {
		b, err := afero.ReadFile(fs, c.ProjectionFile)
		if err != nil {
			return nil, fmt.Errorf("read PROJECTION_FILE: %w", err)
		}
		data = b
		source = c.ProjectionFile
	}

	table, err := parseProjections(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return table, nil
}

// LinearRise builds the configured linear projection.
func (c *Config) LinearRise() domain.LinearRise {
	return domain.LinearRise{
		StartYear: c.ProjectionStartYear,
		EndYear:   c.ProjectionEndYear,
		Baseline:  c.ProjectionBaselineMM,
		Rise:      c.ProjectionRiseMM,
	}
}

// Periods returns the period boundaries implied by the projection start year.
func (c *Config) Periods() domain.Periods {
	p := domain.DefaultPeriods()
	p.ProjectionStart = float64(c.ProjectionStartYear)
	return p
}

func parseProjections(data []byte) ([]domain.Measurement, error) {
	var f projectionFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse projections: %w", err)
	}
	if len(f.Projections) == 0 {
		return nil, errors.New("no projections defined")
	}

	out := make([]domain.Measurement, len(f.Projections))
	for i, p := range f.Projections {
		if p.Year == nil || p.Value == nil {
			return nil, fmt.Errorf("projection %d: year and value are required", i)
		}
		out[i] = domain.Measurement{Year: *p.Year, Value: *p.Value}
	}
	return out, nil
}
