package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
)

// maxPhaseErrors caps the errors kept per phase so a badly broken file still
// produces a readable report.
const maxPhaseErrors = 20

// Phase tracks pass/fail for one validation check.
type Phase struct {
	Name    string
	Errors  []string
	dropped int
}

func (p *Phase) errorf(format string, args ...any) {
	if len(p.Errors) >= maxPhaseErrors {
		p.dropped++
		return
	}
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// Passed reports whether the phase found no problems.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// Total is the number of problems found, including ones not kept in Errors.
func (p *Phase) Total() int { return len(p.Errors) + p.dropped }

// Validation is the result of checking a series file.
type Validation struct {
	Path   string
	Lines  int
	Phases []*Phase
}

// Passed reports whether every phase passed.
func (v Validation) Passed() bool {
	for _, p := range v.Phases {
		if !p.Passed() {
			return false
		}
	}
	return true
}

// Validate checks that the series at path is canonical: every line parses
// and renders back to itself, years never decrease, no line repeats, and
// there are no blank lines. It only returns an error when the file cannot be
// read; problems in the data are reported through the phases.
func (p *Pipeline) Validate(ctx context.Context, path string) (Validation, error) {
	defer p.observe("validate", time.Now())

	if err := ctx.Err(); err != nil {
		return Validation{}, err
	}

	lines, err := p.store.ReadLines(path)
	if err != nil {
		return Validation{}, err
	}

	v := Validation{
		Path:  path,
		Lines: len(lines),
		Phases: []*Phase{
			validateCanonicalForm(lines),
			validateYearOrder(lines),
			validateUnique(lines),
			validateNoBlankLines(lines),
		},
	}

	for _, ph := range v.Phases {
		if !ph.Passed() {
			p.logger.WarnContext(ctx, "validation phase failed", "path", path, "phase", ph.Name, "errors", ph.Total())
		}
	}
	return v, nil
}

func validateCanonicalForm(lines []string) *Phase {
	ph := &Phase{Name: "Phase 1: Canonical form"}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, err := domain.ParseLine(line)
		if err != nil {
			ph.errorf("line %d: %v", i+1, err)
			continue
		}
		if want := domain.FormatLine(m); want != line {
			ph.errorf("line %d: %q is not canonical, want %q", i+1, line, want)
		}
	}
	return ph
}

func validateYearOrder(lines []string) *Phase {
	ph := &Phase{Name: "Phase 2: Year order"}
	prev, prevLine := 0.0, 0
	for i, line := range lines {
		m, err := domain.ParseLine(line)
		if err != nil {
			continue
		}
		if prevLine > 0 && m.Year < prev {
			ph.errorf("line %d: year %s before line %d year %s", i+1, domain.FormatYear(m.Year), prevLine, domain.FormatYear(prev))
		}
		prev, prevLine = m.Year, i+1
	}
	return ph
}

func validateUnique(lines []string) *Phase {
	ph := &Phase{Name: "Phase 3: Unique lines"}
	first := make(map[string]int, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if at, ok := first[line]; ok {
			ph.errorf("line %d: duplicate of line %d (%s)", i+1, at, line)
			continue
		}
		first[line] = i + 1
	}
	return ph
}

func validateNoBlankLines(lines []string) *Phase {
	ph := &Phase{Name: "Phase 4: No blank lines"}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			ph.errorf("line %d: blank", i+1)
		}
	}
	return ph
}
