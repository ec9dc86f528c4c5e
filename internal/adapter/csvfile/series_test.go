package csvfile

import (
	"errors"
	"os"
	"testing"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesStore_ReadLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "public/series.csv", "1993,011526;-37,9\r\n\n2050,000000;140,5")

	lines, err := NewSeriesStore(fs).ReadLines("public/series.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"1993,011526;-37,9", "", "2050,000000;140,5"}, lines)
}

func TestSeriesStore_ReadLinesMissing(t *testing.T) {
	_, err := NewSeriesStore(afero.NewMemMapFs()).ReadLines("nope.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSeriesStore_WriteOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/series.csv", "old;line\nmore;old\n")
	s := NewSeriesStore(fs)

	require.NoError(t, s.WriteLines("out/series.csv", []string{"a;1", "b;2"}, domain.Overwrite))

	data, err := afero.ReadFile(fs, "out/series.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;1\nb;2\n", string(data))

	entries, err := afero.ReadDir(fs, "out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestSeriesStore_WriteAppend(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "series.csv", "a;1\n")
	s := NewSeriesStore(fs)

	require.NoError(t, s.WriteLines("series.csv", []string{"b;2", "c;3"}, domain.Append))

	data, err := afero.ReadFile(fs, "series.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;1\nb;2\nc;3\n", string(data))
}

func TestSeriesStore_AppendTerminatesUnfinishedLastLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "series.csv", "1993,011526;-37,9\n2024,958333;104,4")
	s := NewSeriesStore(fs)

	require.NoError(t, s.WriteLines("series.csv", []string{"2025,000000;78,0", "2050,000000;140,5"}, domain.Append))

	lines, err := s.ReadLines("series.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1993,011526;-37,9",
		"2024,958333;104,4",
		"2025,000000;78,0",
		"2050,000000;140,5",
	}, lines)
}

func TestSeriesStore_AppendToEmptyFileAddsNoBlankLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "series.csv", "")
	s := NewSeriesStore(fs)

	require.NoError(t, s.WriteLines("series.csv", []string{"a;1"}, domain.Append))

	data, err := afero.ReadFile(fs, "series.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;1\n", string(data))
}

func TestSeriesStore_AppendCreatesFileAndDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewSeriesStore(fs)

	require.NoError(t, s.WriteLines("public/new/series.csv", []string{"a;1"}, domain.Append))

	ok, err := s.Exists("public/new/series.csv")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSeriesStore_OverwriteEmptyTruncates(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "series.csv", "a;1\n")

	require.NoError(t, NewSeriesStore(fs).WriteLines("series.csv", nil, domain.Overwrite))

	data, err := afero.ReadFile(fs, "series.csv")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSeriesStore_ReadOnlyFilesystemLeavesTargetIntact(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "series.csv", "a;1\n")
	s := NewSeriesStore(afero.NewReadOnlyFs(base))

	err := s.WriteLines("series.csv", []string{"b;2"}, domain.Overwrite)
	require.Error(t, err)

	data, err := afero.ReadFile(base, "series.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;1\n", string(data))
}

