package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLine = "1993,011526;-37,9"

func TestFormatLine(t *testing.T) {
	cases := []struct {
		name string
		in   Measurement
		want string
	}{
		{name: "satellite row", in: Measurement{Year: 1993.011526, Value: -37.9}, want: testLine},
		{name: "whole year projection", in: Measurement{Year: 2050, Value: 140.5}, want: "2050,000000;140,5"},
		{name: "rounds value to one decimal", in: Measurement{Year: 2001.5, Value: 12.34}, want: "2001,500000;12,3"},
		{name: "rounds year to six decimals", in: Measurement{Year: 1999.1234567, Value: 0}, want: "1999,123457;0,0"},
		{name: "keeps negative zero sign", in: Measurement{Year: 2000, Value: -0.04}, want: "2000,000000;-0,0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatLine(tc.in))
		})
	}
}

func TestParseLine(t *testing.T) {
	t.Run("canonical line", func(t *testing.T) {
		m, err := ParseLine(testLine)
		require.NoError(t, err)
		assert.InDelta(t, 1993.011526, m.Year, 1e-9)
		assert.InDelta(t, -37.9, m.Value, 1e-9)
	})

	t.Run("surrounding whitespace and trailing newline", func(t *testing.T) {
		m, err := ParseLine("  2050,000000;140,5\n")
		require.NoError(t, err)
		assert.InDelta(t, 2050.0, m.Year, 1e-9)
		assert.InDelta(t, 140.5, m.Value, 1e-9)
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		m, err := ParseLine("1993,5;1,0;comment")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, m.Value, 1e-9)
	})

	invalid := map[string]string{
		"single field":      "1993,011526",
		"empty":             "",
		"non-numeric year":  "abc;1,0",
		"non-numeric value": "1993,0;n/a",
	}
	for name, line := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLine(line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedLine))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	inputs := []Measurement{
		{Year: 1993.011526, Value: -37.9},
		{Year: 1880.041667, Value: -183.27},
		{Year: 2024.958333, Value: 104.449},
		{Year: 2037, Value: 108.0},
		{Year: 1993.0000004, Value: -0.06},
	}

	for _, in := range inputs {
		out, err := ParseLine(FormatLine(in))
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(out.Year-in.Year), 0.5e-6+1e-12, "year %v", in.Year)
		assert.LessOrEqual(t, math.Abs(out.Value-in.Value), 0.05+1e-12, "value %v", in.Value)
	}
}
