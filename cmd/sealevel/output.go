package main

import (
	"fmt"
	"io"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/couchcryptid/sea-level-etl/internal/pipeline"
)

func printReport(w io.Writer, r pipeline.Report) {
	switch {
	case r.Input != "" && r.Output != "":
		fmt.Fprintf(w, "%s: %s -> %s (%s)\n", r.Operation, r.Input, r.Output, r.Mode)
	case r.Output != "":
		fmt.Fprintf(w, "%s: %s (%s)\n", r.Operation, r.Output, r.Mode)
	default:
		fmt.Fprintf(w, "%s: %s\n", r.Operation, r.Input)
	}
	fmt.Fprintf(w, "  read %d, written %d, removed %d\n", r.Read, r.Written, r.Removed)
	printSummary(w, r.Summary)
}

func printSummary(w io.Writer, s domain.Summary) {
	fmt.Fprintf(w, "  parsed %d of %d lines, %d parse errors\n", s.Parsed, s.Lines, s.ParseErrors)
	if s.Empty() {
		return
	}
	fmt.Fprintf(w, "  years %s .. %s\n", domain.FormatYear(s.FirstYear), domain.FormatYear(s.LastYear))
	fmt.Fprintf(w, "  values %s .. %s mm\n", domain.FormatValue(s.MinValue), domain.FormatValue(s.MaxValue))
	fmt.Fprintf(w, "  before %.0f: %d\n", domain.SatelliteStartYear, s.ByPeriod[domain.PeriodHistorical])
	fmt.Fprintf(w, "  satellite: %d\n", s.ByPeriod[domain.PeriodSatellite])
	fmt.Fprintf(w, "  projection: %d\n", s.ByPeriod[domain.PeriodProjection])
}

func printValidation(w io.Writer, v pipeline.Validation) {
	fmt.Fprintf(w, "validate: %s (%d lines)\n", v.Path, v.Lines)
	for _, ph := range v.Phases {
		if ph.Passed() {
			fmt.Fprintf(w, "  PASS  %s\n", ph.Name)
			continue
		}
		fmt.Fprintf(w, "  FAIL  %s (%d errors)\n", ph.Name, ph.Total())
		for _, e := range ph.Errors {
			fmt.Fprintf(w, "        %s\n", e)
		}
		if hidden := ph.Total() - len(ph.Errors); hidden > 0 {
			fmt.Fprintf(w, "        ... and %d more\n", hidden)
		}
	}
	if v.Passed() {
		fmt.Fprintln(w, "  all phases passed")
	}
}
