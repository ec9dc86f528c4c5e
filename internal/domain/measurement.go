package domain

import (
	"math"
	"slices"
	"time"
)

// Measurement is one point of the sea-level series: a fractional calendar year
// and a global mean sea level value in millimeters.
type Measurement struct {
	Year  float64 `json:"year"`
	Value float64 `json:"value"`
}

// Valid reports whether both fields are finite numbers.
func (m Measurement) Valid() bool {
	return isFinite(m.Year) && isFinite(m.Value)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Period classifies a measurement by the era its year falls into.
type Period string

const (
	PeriodHistorical Period = "historical"
	PeriodSatellite  Period = "satellite"
	PeriodProjection Period = "projection"
)

// SatelliteStartYear is the first year covered by satellite altimetry.
const SatelliteStartYear = 1993.0

// Periods holds the year boundaries used to classify measurements.
// Historical is [-inf, SatelliteStart), satellite is [SatelliteStart,
// ProjectionStart), projection is [ProjectionStart, +inf).
type Periods struct {
	SatelliteStart  float64
	ProjectionStart float64
}

// DefaultPeriods matches the compiled series: satellite data from 1993,
// projections from 2025.
func DefaultPeriods() Periods {
	return Periods{SatelliteStart: SatelliteStartYear, ProjectionStart: 2025}
}

// Classify returns the period a year belongs to.
func (p Periods) Classify(year float64) Period {
	switch {
	case year < p.SatelliteStart:
		return PeriodHistorical
	case year < p.ProjectionStart:
		return PeriodSatellite
	default:
		return PeriodProjection
	}
}

// SortByYear orders measurements by ascending year. The sort is stable, so
// measurements sharing a year keep their input order.
func SortByYear(ms []Measurement) {
	slices.SortStableFunc(ms, func(a, b Measurement) int {
		switch {
		case a.Year < b.Year:
			return -1
		case a.Year > b.Year:
			return 1
		default:
			return 0
		}
	})
}

// SeriesRecord is the published form of a measurement.
type SeriesRecord struct {
	Year        float64   `json:"year"`
	Value       float64   `json:"value"`
	Line        string    `json:"line"`
	Period      Period    `json:"period"`
	PublishedAt time.Time `json:"published_at"`
}

// NewSeriesRecord stamps a measurement with its canonical line, period, and
// the current time.
func NewSeriesRecord(m Measurement, periods Periods) SeriesRecord {
	return SeriesRecord{
		Year:        m.Year,
		Value:       m.Value,
		Line:        FormatLine(m),
		Period:      periods.Classify(m.Year),
		PublishedAt: clock.Now().UTC(),
	}
}
