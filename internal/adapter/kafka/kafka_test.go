package kafka

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/sea-level-etl/internal/config"
	"github.com/couchcryptid/sea-level-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := domain.SeriesRecord{
		Year:        1993.011526,
		Value:       -37.9,
		Line:        "1993,011526;-37,9",
		Period:      domain.PeriodSatellite,
		PublishedAt: now,
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Equal(t, []byte("1993,011526;-37,9"), msg.Key)
	assert.JSONEq(t, `{"year":1993.011526,"value":-37.9,"line":"1993,011526;-37,9","period":"satellite","published_at":"2025-03-01T12:00:00Z"}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "period", msg.Headers[0].Key)
	assert.Equal(t, []byte("satellite"), msg.Headers[0].Value)
	assert.Equal(t, "published_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_SameYearDistinctKeys(t *testing.T) {
	a := domain.NewSeriesRecord(domain.Measurement{Year: 2025, Value: 78.0}, domain.DefaultPeriods())
	b := domain.NewSeriesRecord(domain.Measurement{Year: 2025, Value: 81.6}, domain.DefaultPeriods())

	msgA, err := serializeToMessage(a)
	require.NoError(t, err)
	msgB, err := serializeToMessage(b)
	require.NoError(t, err)

	assert.Equal(t, []byte("2025,000000;78,0"), msgA.Key)
	assert.Equal(t, []byte("2025,000000;81,6"), msgB.Key)
	assert.NotEqual(t, msgA.Key, msgB.Key)
}

func TestSerializeToMessage_NonFinite(t *testing.T) {
	_, err := serializeToMessage(domain.SeriesRecord{Year: 2000, Value: math.NaN()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize series record")
}

func TestWriter_PublishEmptyIsNoop(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:1"}, KafkaSinkTopic: "sea-level-series"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.Publish(context.Background(), nil))
}
