package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRise_Generate(t *testing.T) {
	rise := LinearRise{StartYear: 2025, EndYear: 2050, Baseline: 72.0, Rise: 250.0}

	ms, err := rise.Generate()
	require.NoError(t, err)
	require.Len(t, ms, 26)

	assert.Equal(t, 26, rise.Years())
	assert.InDelta(t, 9.615, rise.AnnualIncrease(), 0.001)
	assert.InDelta(t, 322.0, rise.Target(), 1e-9)

	assert.Equal(t, "2025,000000;81,6", FormatLine(ms[0]))
	assert.Equal(t, "2050,000000;322,0", FormatLine(ms[25]))

	for i := 1; i < len(ms); i++ {
		assert.Greater(t, ms[i].Value, ms[i-1].Value)
		assert.InDelta(t, 1.0, ms[i].Year-ms[i-1].Year, 1e-9)
	}
}

func TestLinearRise_SingleYear(t *testing.T) {
	ms, err := LinearRise{StartYear: 2030, EndYear: 2030, Baseline: 10, Rise: 5}.Generate()
	require.NoError(t, err)
	assert.Equal(t, []Measurement{{Year: 2030, Value: 15}}, ms)
}

func TestLinearRise_InvalidRange(t *testing.T) {
	_, err := LinearRise{StartYear: 2050, EndYear: 2025}.Generate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProjection))
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "2025,000000", Marker(2025))
}

func TestFindMarker(t *testing.T) {
	lines := []string{testLine, "2024,958333;104,4", "2025,000000;78,0", "2026,000000;80,5"}

	idx, err := FindMarker(lines, Marker(2025))
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = FindMarker(lines[:2], Marker(2025))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMarkerNotFound))
	assert.Contains(t, err.Error(), "2025,000000")
}
