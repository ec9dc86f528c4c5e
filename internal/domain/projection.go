package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMarkerNotFound is returned when a series has no line starting with the
// projection marker. Callers abort without writing.
var ErrMarkerNotFound = errors.New("projection marker not found")

// ErrInvalidProjection is returned for projection ranges that cannot be generated.
var ErrInvalidProjection = errors.New("invalid projection range")

// LinearRise describes a projection that rises evenly from a baseline value in
// the year before StartYear to Baseline+Rise in EndYear.
type LinearRise struct {
	StartYear int
	EndYear   int
	Baseline  float64 // mm, value of the year preceding StartYear
	Rise      float64 // mm, total increase by EndYear
}

// Years is the number of whole years the projection covers, both ends included.
func (r LinearRise) Years() int {
	return r.EndYear - r.StartYear + 1
}

// AnnualIncrease is the per-year step of the projection.
func (r LinearRise) AnnualIncrease() float64 {
	return r.Rise / float64(r.Years())
}

// Target is the projected value for EndYear.
func (r LinearRise) Target() float64 {
	return r.Baseline + r.Rise
}

// Generate returns one measurement per year from StartYear to EndYear.
// The i-th year (0-based) is Baseline + AnnualIncrease*(i+1).
func (r LinearRise) Generate() ([]Measurement, error) {
	if r.Years() <= 0 {
		return nil, fmt.Errorf("%w: start %d after end %d", ErrInvalidProjection, r.StartYear, r.EndYear)
	}

	step := r.AnnualIncrease()
	out := make([]Measurement, r.Years())
	for i := range out {
		out[i] = Measurement{
			Year:  float64(r.StartYear + i),
			Value: r.Baseline + step*float64(i+1),
		}
	}
	return out, nil
}

// Marker returns the canonical line prefix that identifies the first
// projection row, e.g. "2025,000000" for 2025.
func Marker(startYear int) string {
	return FormatYear(float64(startYear))
}

// FindMarker returns the index of the first line that starts with marker.
func FindMarker(lines []string, marker string) (int, error) {
	for i, line := range lines {
		if strings.HasPrefix(line, marker) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no line starts with %q", ErrMarkerNotFound, marker)
}
