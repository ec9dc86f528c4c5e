package domain

import "strings"

// Dedupe returns the first occurrence of every distinct line, in input order.
// Lines are trimmed of surrounding whitespace and blank lines are dropped
// before comparison, so running Dedupe on its own output is a no-op.
func Dedupe(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// NormalizeAll renders each measurement as a canonical line.
func NormalizeAll(ms []Measurement) []string {
	lines := make([]string, len(ms))
	for i, m := range ms {
		lines[i] = FormatLine(m)
	}
	return lines
}
