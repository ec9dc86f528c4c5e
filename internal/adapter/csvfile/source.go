package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/spf13/afero"
)

// Default column positions in the GSFC satellite table.
const (
	DefaultYearColumn  = 2 // YearPlusFraction
	DefaultValueColumn = 8 // GMSLWithGIA
)

// SkipReason labels why a source row was dropped.
type SkipReason string

const (
	SkipShortRow   SkipReason = "short_row"
	SkipNonNumeric SkipReason = "non_numeric"
	SkipMalformed  SkipReason = "malformed"
)

// SourceReader reads (year, value) pairs from a comma-delimited source table
// with a header row. It implements pipeline.SourceReader.
type SourceReader struct {
	fs        afero.Fs
	yearCol   int
	valueCol  int
	logger    *slog.Logger
	onSkipped func(SkipReason)
}

// NewSourceReader creates a reader for the given column positions.
func NewSourceReader(fs afero.Fs, yearCol, valueCol int, logger *slog.Logger) *SourceReader {
	return &SourceReader{
		fs:        fs,
		yearCol:   yearCol,
		valueCol:  valueCol,
		logger:    logger,
		onSkipped: func(SkipReason) {},
	}
}

// OnSkipped registers a callback invoked once per dropped row.
func (r *SourceReader) OnSkipped(fn func(SkipReason)) {
	if fn == nil {
		fn = func(SkipReason) {}
	}
	r.onSkipped = fn
}

// minColumns is the column count a row needs to hold both fields.
func (r *SourceReader) minColumns() int {
	return max(r.yearCol, r.valueCol) + 1
}

// Measurements lazily yields one measurement per usable row, in file order.
// Short rows, rows with non-numeric fields, and rows the CSV parser rejects
// are skipped without an error. Only I/O failures are yielded as errors, after
// which iteration stops.
func (r *SourceReader) Measurements(path string) iter.Seq2[domain.Measurement, error] {
	return func(yield func(domain.Measurement, error) bool) {
		f, err := r.fs.Open(path)
		if err != nil {
			yield(domain.Measurement{}, fmt.Errorf("open source %s: %w", path, err))
			return
		}
		defer f.Close()

		cr := csv.NewReader(f)
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		cr.ReuseRecord = true

		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if !isParseError(err) {
				yield(domain.Measurement{}, fmt.Errorf("read source header %s: %w", path, err))
				return
			}
		}

		for {
			row, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if isParseError(err) {
					r.skip(SkipMalformed, err)
					continue
				}
				yield(domain.Measurement{}, fmt.Errorf("read source %s: %w", path, err))
				return
			}

			m, reason, ok := r.parseRow(row)
			if !ok {
				r.skip(reason, nil)
				continue
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}

func (r *SourceReader) parseRow(row []string) (domain.Measurement, SkipReason, bool) {
	if len(row) < r.minColumns() {
		return domain.Measurement{}, SkipShortRow, false
	}

	year, errY := strconv.ParseFloat(strings.TrimSpace(row[r.yearCol]), 64)
	value, errV := strconv.ParseFloat(strings.TrimSpace(row[r.valueCol]), 64)
	m := domain.Measurement{Year: year, Value: value}
	if errY != nil || errV != nil || !m.Valid() {
		return domain.Measurement{}, SkipNonNumeric, false
	}
	return m, "", true
}

func (r *SourceReader) skip(reason SkipReason, err error) {
	if err != nil {
		r.logger.Debug("skipping source row", "reason", reason, "error", err)
	} else {
		r.logger.Debug("skipping source row", "reason", reason)
	}
	r.onSkipped(reason)
}

func isParseError(err error) bool {
	var pe *csv.ParseError
	return errors.As(err, &pe)
}
