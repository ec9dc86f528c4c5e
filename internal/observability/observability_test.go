package observability

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couchcryptid/sea-level-etl/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RowsRead.Add(3)
	a.RowsSkipped.WithLabelValues("short_row").Inc()

	assert.InDelta(t, 3.0, testutil.ToFloat64(a.RowsRead), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.RowsRead), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(a.RowsSkipped.WithLabelValues("short_row")), 1e-9)
}

func TestMetrics_Push(t *testing.T) {
	var gotPath string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.String()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMetrics()
	m.RowsRead.Add(2)

	require.NoError(t, m.Push(context.Background(), srv.URL, "sealevel"))
	assert.Equal(t, "/metrics/job/sealevel", gotPath)
	assert.NotEmpty(t, gotBody)
}

func TestMetrics_PushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewMetrics().Push(context.Background(), srv.URL, "sealevel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), srv.URL)
}

func TestNewLogger_FormatAndLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})

	_, isJSON := logger.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_TextDebug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})

	_, isText := logger.Handler().(*slog.TextHandler)
	assert.True(t, isText)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
