// Command sealevel builds the sea-level rise series consumed by the chart
// front-end. Each subcommand is one batch step: extract the satellite table,
// clean the compiled series, add projections, summarize, validate, or publish.
//
// Usage:
//
//	sealevel extract
//	sealevel satellite
//	sealevel clean
//	sealevel project append
//	sealevel project rebase
//	sealevel summarize [--in path]
//	sealevel validate [--in path]
//	sealevel publish [--in path]
//
// File locations and projection parameters come from environment variables;
// see internal/config.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sea-level-etl/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/sea-level-etl/internal/adapter/kafka"
	"github.com/couchcryptid/sea-level-etl/internal/config"
	"github.com/couchcryptid/sea-level-etl/internal/observability"
	"github.com/couchcryptid/sea-level-etl/internal/pipeline"
	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, afero.NewOsFs(), os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, fs afero.Fs, args []string, stdout io.Writer) int {
	c := &cli{fs: fs}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)

	err := root.ExecuteContext(ctx)
	c.shutdown(ctx)

	if err == nil {
		return 0
	}
	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}
	if !errors.Is(err, errValidationFailed) {
		logger.Error("command failed", "error", err)
	}
	return 1
}

// cli holds the dependencies shared by every subcommand. They are built in
// the root command's pre-run hook so that --help works without a valid
// environment.
type cli struct {
	fs       afero.Fs
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	writer   *kafkaadapter.Writer
	pipeline *pipeline.Pipeline
}

func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := csvfile.NewSourceReader(c.fs, cfg.SourceYearColumn, cfg.SourceValueColumn, logger)
	source.OnSkipped(func(r csvfile.SkipReason) {
		metrics.RowsSkipped.WithLabelValues(string(r)).Inc()
	})

	// Publishing is feature-flagged via KAFKA_BROKERS.
	var publisher pipeline.Publisher
	if cfg.KafkaEnabled() {
		c.writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = c.writer
		logger.Debug("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	c.cfg = cfg
	c.logger = logger
	c.metrics = metrics
	c.pipeline = pipeline.New(source, csvfile.NewSeriesStore(c.fs), publisher, cfg.Periods(), logger, metrics)
	return nil
}

// shutdown releases the Kafka writer and pushes run metrics. It runs after
// every command, failed or not, so a failed run is still visible in metrics.
func (c *cli) shutdown(ctx context.Context) {
	if c.cfg == nil {
		return
	}
	if c.writer != nil {
		if err := c.writer.Close(); err != nil {
			c.logger.Error("kafka writer close error", "error", err)
		}
	}
	if c.cfg.PushgatewayURL != "" {
		// The run context may already be cancelled by a signal.
		if err := c.metrics.Push(context.WithoutCancel(ctx), c.cfg.PushgatewayURL, c.cfg.MetricsJob); err != nil {
			c.logger.Warn("metrics push failed", "url", c.cfg.PushgatewayURL, "error", err)
		}
	}
}
