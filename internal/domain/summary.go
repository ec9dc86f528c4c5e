package domain

import (
	"log/slog"
	"time"
)

// Summary describes a series for end-of-run reporting. It never drives control flow.
type Summary struct {
	Lines       int
	Parsed      int
	ParseErrors int

	FirstYear float64
	LastYear  float64
	MinValue  float64
	MaxValue  float64

	ByPeriod map[Period]int

	GeneratedAt time.Time
}

// Empty reports whether no measurement contributed to the summary.
func (s Summary) Empty() bool {
	return s.Parsed == 0
}

// Summarize computes statistics over measurements in series order. FirstYear
// and LastYear are taken from the first and last elements, not the extremes,
// so an unsorted series shows up in the report.
func Summarize(ms []Measurement, periods Periods) Summary {
	s := Summary{
		Lines:       len(ms),
		Parsed:      len(ms),
		ByPeriod:    map[Period]int{PeriodHistorical: 0, PeriodSatellite: 0, PeriodProjection: 0},
		GeneratedAt: clock.Now().UTC(),
	}
	if len(ms) == 0 {
		return s
	}

	s.FirstYear = ms[0].Year
	s.LastYear = ms[len(ms)-1].Year
	s.MinValue = ms[0].Value
	s.MaxValue = ms[0].Value

	for _, m := range ms {
		s.MinValue = min(s.MinValue, m.Value)
		s.MaxValue = max(s.MaxValue, m.Value)
		s.ByPeriod[periods.Classify(m.Year)]++
	}
	return s
}

// SummarizeLines parses canonical lines and summarizes the ones that parse.
// Lines that fail are logged and counted in ParseErrors.
func SummarizeLines(lines []string, periods Periods, logger *slog.Logger) (Summary, []Measurement) {
	ms := make([]Measurement, 0, len(lines))
	failures := 0

	for _, line := range lines {
		m, err := ParseLine(line)
		if err != nil {
			logger.Warn("skipping unparseable series line", "line", line, "error", err)
			failures++
			continue
		}
		ms = append(ms, m)
	}

	s := Summarize(ms, periods)
	s.Lines = len(lines)
	s.ParseErrors = failures
	return s, ms
}

// LogValue lets a Summary be passed directly as a slog attribute.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("lines", s.Lines),
		slog.Int("parsed", s.Parsed),
		slog.Int("parse_errors", s.ParseErrors),
		slog.Float64("first_year", s.FirstYear),
		slog.Float64("last_year", s.LastYear),
		slog.Float64("min_value", s.MinValue),
		slog.Float64("max_value", s.MaxValue),
		slog.Int("historical", s.ByPeriod[PeriodHistorical]),
		slog.Int("satellite", s.ByPeriod[PeriodSatellite]),
		slog.Int("projection", s.ByPeriod[PeriodProjection]),
	)
}
