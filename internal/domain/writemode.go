package domain

import "fmt"

// WriteMode selects how a series writer treats an existing destination file.
type WriteMode int

const (
	// Overwrite replaces the destination with exactly the given lines.
	Overwrite WriteMode = iota
	// Append adds the given lines after the destination's current content.
	Append
)

func (m WriteMode) String() string {
	switch m {
	case Overwrite:
		return "overwrite"
	case Append:
		return "append"
	default:
		return fmt.Sprintf("WriteMode(%d)", int(m))
	}
}
