package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// FieldSeparator joins the year and value fields of a canonical line.
	FieldSeparator = ";"

	// DecimalSeparator replaces the period in both numeric fields.
	DecimalSeparator = ","

	yearPrecision  = 6
	valuePrecision = 1
)

// ErrMalformedLine is returned by ParseLine for lines that are not in canonical form.
var ErrMalformedLine = errors.New("malformed series line")

// FormatLine renders a measurement as a canonical line, e.g. "1993,011526;-37,9".
// The result carries no trailing newline.
func FormatLine(m Measurement) string {
	return FormatYear(m.Year) + FieldSeparator + FormatValue(m.Value)
}

// FormatYear renders a fractional year with six decimals and a decimal comma.
func FormatYear(year float64) string {
	return formatDecimal(year, yearPrecision)
}

// FormatValue renders a value with one decimal and a decimal comma.
func FormatValue(value float64) string {
	return formatDecimal(value, valuePrecision)
}

func formatDecimal(f float64, precision int) string {
	return strings.Replace(strconv.FormatFloat(f, 'f', precision, 64), ".", DecimalSeparator, 1)
}

// ParseLine reads a canonical line back into a measurement. Fields beyond the
// second are ignored, as are surrounding spaces.
func ParseLine(line string) (Measurement, error) {
	parts := strings.Split(strings.TrimSpace(line), FieldSeparator)
	if len(parts) < 2 {
		return Measurement{}, fmt.Errorf("%w: %q: expected 2 fields", ErrMalformedLine, line)
	}

	year, err := parseDecimal(parts[0])
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %q: year: %w", ErrMalformedLine, line, err)
	}
	value, err := parseDecimal(parts[1])
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %q: value: %w", ErrMalformedLine, line, err)
	}

	return Measurement{Year: year, Value: value}, nil
}

func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), DecimalSeparator, ".")
	return strconv.ParseFloat(s, 64)
}
