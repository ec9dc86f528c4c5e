package csvfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/spf13/afero"
)

// WriteLines writes lines to path, each terminated by "\n".
//
// In Overwrite mode the lines go to a temporary file in the same directory,
// which is then renamed over path; a failed write leaves the previous content
// untouched. In Append mode the file is created if missing and the lines are
// added at the end. Parent directories are created in both modes.
func (s *SeriesStore) WriteLines(path string, lines []string, mode domain.WriteMode) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	switch mode {
	case domain.Overwrite:
		return s.replace(path, lines)
	case domain.Append:
		return s.append(path, lines)
	default:
		return fmt.Errorf("write %s: unsupported mode %s", path, mode)
	}
}

func (s *SeriesStore) append(path string, lines []string) error {
	terminated, err := s.endsWithNewline(path)
	if err != nil {
		return err
	}

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	if !terminated {
		// Finish the existing last record so the first new line starts on its own.
		if _, err := f.WriteString("\n"); err != nil {
			f.Close()
			return fmt.Errorf("append %s: %w", path, err)
		}
	}
	if err := writeAll(f, lines); err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// endsWithNewline reports whether path is missing, empty, or ends in "\n".
func (s *SeriesStore) endsWithNewline(path string) (bool, error) {
	f, err := s.fs.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return true, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return last[0] == '\n', nil
}

func (s *SeriesStore) replace(path string, lines []string) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := writeAll(tmp, lines); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func writeAll(f afero.File, lines []string) error {
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
