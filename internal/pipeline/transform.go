package pipeline

import (
	"iter"
	"strings"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
)

// collect drains a measurement sequence, stopping at the first error.
func collect(seq iter.Seq2[domain.Measurement, error]) ([]domain.Measurement, error) {
	var out []domain.Measurement
	for m, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func toRecords(ms []domain.Measurement, periods domain.Periods) []domain.SeriesRecord {
	out := make([]domain.SeriesRecord, len(ms))
	for i, m := range ms {
		out[i] = domain.NewSeriesRecord(m, periods)
	}
	return out
}
