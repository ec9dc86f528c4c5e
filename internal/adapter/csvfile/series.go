package csvfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// SeriesStore reads and writes canonical series files, one line per
// measurement. It implements pipeline.LineStore.
type SeriesStore struct {
	fs afero.Fs
}

// NewSeriesStore creates a store on the given filesystem.
func NewSeriesStore(fs afero.Fs) *SeriesStore {
	return &SeriesStore{fs: fs}
}

// ReadLines returns every line of the file without its line terminator.
// Carriage returns from CRLF files are removed; blank lines are kept so
// callers decide whether they matter.
func (s *SeriesStore) ReadLines(path string) ([]string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read series %s: %w", path, err)
	}
	return lines, nil
}

// Exists reports whether path exists on the store's filesystem.
func (s *SeriesStore) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}
