package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"time"

	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/couchcryptid/sea-level-etl/internal/observability"
)

// ErrPublishingDisabled is returned by Publish when no publisher is configured.
var ErrPublishingDisabled = errors.New("publishing disabled: KAFKA_BROKERS not set")

// SourceReader yields measurements from a source table.
type SourceReader interface {
	Measurements(path string) iter.Seq2[domain.Measurement, error]
}

// LineStore reads and writes canonical series files.
type LineStore interface {
	ReadLines(path string) ([]string, error)
	WriteLines(path string, lines []string, mode domain.WriteMode) error
}

// Publisher sends finished series records downstream.
type Publisher interface {
	Publish(ctx context.Context, records []domain.SeriesRecord) error
}

// Report describes one completed operation for end-of-run output.
type Report struct {
	Operation string
	Input     string
	Output    string
	Mode      domain.WriteMode

	Read    int // measurements or lines read from Input
	Written int // lines written to Output
	Removed int // lines dropped: duplicates, blanks, or replaced projections

	Summary domain.Summary
}

// Pipeline runs the read, transform, and write steps of each operation.
type Pipeline struct {
	source    SourceReader
	store     LineStore
	publisher Publisher
	periods   domain.Periods
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. publisher may be nil when publishing is disabled.
func New(source SourceReader, store LineStore, publisher Publisher, periods domain.Periods, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    source,
		store:     store,
		publisher: publisher,
		periods:   periods,
		logger:    logger,
		metrics:   metrics,
	}
}

// Extract reads the source table and writes its measurements to dst as
// canonical lines, replacing dst. With sortByYear the series is stably sorted
// by year first; otherwise source order is kept.
func (p *Pipeline) Extract(ctx context.Context, src, dst string, sortByYear bool) (Report, error) {
	op := "extract"
	if sortByYear {
		op = "extract_sorted"
	}
	defer p.observe(op, time.Now())

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	ms, err := collect(p.source.Measurements(src))
	if err != nil {
		return Report{}, err
	}
	p.metrics.RowsRead.Add(float64(len(ms)))

	if sortByYear {
		domain.SortByYear(ms)
	}

	lines := domain.NormalizeAll(ms)
	if err := p.write(dst, lines, domain.Overwrite); err != nil {
		return Report{}, err
	}

	r := Report{
		Operation: op,
		Input:     src,
		Output:    dst,
		Mode:      domain.Overwrite,
		Read:      len(ms),
		Written:   len(lines),
		Summary:   domain.Summarize(ms, p.periods),
	}
	p.logger.InfoContext(ctx, "extracted source measurements", "source", src, "output", dst, "sorted", sortByYear, "summary", r.Summary)
	return r, nil
}

// Clean deduplicates the series at src into dst, replacing dst, then parses
// the cleaned lines back to summarize them. Lines that do not parse are
// counted and logged but kept in the output.
func (p *Pipeline) Clean(ctx context.Context, src, dst string) (Report, error) {
	defer p.observe("clean", time.Now())

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	lines, err := p.store.ReadLines(src)
	if err != nil {
		return Report{}, err
	}

	clean := domain.Dedupe(lines)
	removed := len(lines) - len(clean)
	blanks := len(lines) - len(nonBlank(lines))
	p.metrics.BlankLinesRemoved.Add(float64(blanks))
	p.metrics.DuplicatesRemoved.Add(float64(removed - blanks))

	if err := p.write(dst, clean, domain.Overwrite); err != nil {
		return Report{}, err
	}

	summary, _ := domain.SummarizeLines(clean, p.periods, p.logger)
	p.metrics.ParseErrors.Add(float64(summary.ParseErrors))

	r := Report{
		Operation: "clean",
		Input:     src,
		Output:    dst,
		Mode:      domain.Overwrite,
		Read:      len(lines),
		Written:   len(clean),
		Removed:   removed,
		Summary:   summary,
	}
	p.logger.InfoContext(ctx, "cleaned series", "input", src, "output", dst, "removed", removed, "blank", blanks, "summary", summary)
	return r, nil
}

// AppendProjections appends the given projection rows to the series at dst,
// creating it if missing. Existing content is not inspected for overlap.
func (p *Pipeline) AppendProjections(ctx context.Context, dst string, projections []domain.Measurement) (Report, error) {
	defer p.observe("append_projections", time.Now())

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	prior, err := p.readLinesIfExists(dst)
	if err != nil {
		return Report{}, err
	}

	lines := domain.NormalizeAll(projections)
	if err := p.write(dst, lines, domain.Append); err != nil {
		return Report{}, err
	}

	summary, _ := domain.SummarizeLines(nonBlank(append(prior, lines...)), p.periods, p.logger)

	r := Report{
		Operation: "append_projections",
		Output:    dst,
		Mode:      domain.Append,
		Read:      len(prior),
		Written:   len(lines),
		Summary:   summary,
	}
	p.logger.InfoContext(ctx, "appended projections", "output", dst, "prior_lines", len(prior), "added", len(lines), "summary", summary)
	return r, nil
}

// RebaseProjections replaces the projection tail of the series at path. It
// finds the first line starting with the canonical start year of rise, drops
// it and everything after, and appends the rows generated by rise. When no
// such line exists it returns domain.ErrMarkerNotFound and writes nothing.
func (p *Pipeline) RebaseProjections(ctx context.Context, path string, rise domain.LinearRise) (Report, error) {
	defer p.observe("rebase_projections", time.Now())

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	lines, err := p.store.ReadLines(path)
	if err != nil {
		return Report{}, err
	}

	cut, err := domain.FindMarker(lines, domain.Marker(rise.StartYear))
	if err != nil {
		return Report{}, fmt.Errorf("rebase %s: %w", path, err)
	}

	projections, err := rise.Generate()
	if err != nil {
		return Report{}, err
	}

	kept := lines[:cut:cut]
	out := append(kept, domain.NormalizeAll(projections)...)
	if err := p.write(path, out, domain.Overwrite); err != nil {
		return Report{}, err
	}

	summary, _ := domain.SummarizeLines(nonBlank(out), p.periods, p.logger)

	r := Report{
		Operation: "rebase_projections",
		Input:     path,
		Output:    path,
		Mode:      domain.Overwrite,
		Read:      len(lines),
		Written:   len(out),
		Removed:   len(lines) - cut,
		Summary:   summary,
	}
	p.logger.InfoContext(ctx, "rebased projections",
		"path", path,
		"baseline_mm", rise.Baseline,
		"target_mm", rise.Target(),
		"annual_increase_mm", rise.AnnualIncrease(),
		"replaced", r.Removed,
		"summary", summary,
	)
	return r, nil
}

// Summarize parses the series at path and reports on it. Blank lines are
// ignored; unparseable lines are counted.
func (p *Pipeline) Summarize(ctx context.Context, path string) (Report, error) {
	defer p.observe("summarize", time.Now())

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	lines, err := p.store.ReadLines(path)
	if err != nil {
		return Report{}, err
	}

	summary, _ := domain.SummarizeLines(nonBlank(lines), p.periods, p.logger)
	p.metrics.ParseErrors.Add(float64(summary.ParseErrors))

	return Report{
		Operation: "summarize",
		Input:     path,
		Read:      len(lines),
		Summary:   summary,
	}, nil
}

// Publish parses the series at path and hands every measurement to the
// publisher as a SeriesRecord. Unparseable lines are skipped.
func (p *Pipeline) Publish(ctx context.Context, path string) (Report, error) {
	defer p.observe("publish", time.Now())

	if p.publisher == nil {
		return Report{}, ErrPublishingDisabled
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	lines, err := p.store.ReadLines(path)
	if err != nil {
		return Report{}, err
	}

	summary, ms := domain.SummarizeLines(nonBlank(lines), p.periods, p.logger)
	records := toRecords(ms, p.periods)

	if err := p.publisher.Publish(ctx, records); err != nil {
		return Report{}, fmt.Errorf("publish %s: %w", path, err)
	}
	p.metrics.RecordsPublished.Add(float64(len(records)))

	p.logger.InfoContext(ctx, "published series", "input", path, "records", len(records))
	return Report{
		Operation: "publish",
		Input:     path,
		Read:      len(lines),
		Written:   len(records),
		Summary:   summary,
	}, nil
}

func (p *Pipeline) write(path string, lines []string, mode domain.WriteMode) error {
	if err := p.store.WriteLines(path, lines, mode); err != nil {
		return err
	}
	p.metrics.LinesWritten.WithLabelValues(mode.String()).Add(float64(len(lines)))
	return nil
}

func (p *Pipeline) readLinesIfExists(path string) ([]string, error) {
	lines, err := p.store.ReadLines(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}

func (p *Pipeline) observe(op string, start time.Time) {
	p.metrics.RunDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
