package hypercube

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestLogger_With(t *testing.T) {
	l, buf := bufferLogger(slog.LevelInfo)

	l.WithDimension("genre").WithCount(3).WithSource("plays/").Info("hello")

	out := buf.String()
	assert.Contains(t, out, "dimension=genre")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "source=plays/")
}

func TestLogger_LogIngest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		skipped int
		err     error
		want    string
	}{
		{name: "ok", want: "level=INFO msg=\"ingest completed\""},
		{name: "skipped", skipped: 2, want: "level=WARN msg=\"ingest completed with skipped records\""},
		{name: "failed", err: errors.New("boom"), want: "level=ERROR msg=\"ingest failed\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := bufferLogger(slog.LevelDebug)
			l.LogIngest(ctx, 10, tt.skipped, time.Millisecond, tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestLogger_LogEnrichAndQuery(t *testing.T) {
	ctx := context.Background()
	l, buf := bufferLogger(slog.LevelDebug)

	l.LogEnrich(ctx, 4, nil)
	l.LogEnrich(ctx, 4, errors.New("missing time"))
	l.LogQuery(ctx, "slice", 7, time.Microsecond)

	out := buf.String()
	assert.Contains(t, out, "msg=\"enrich completed\" records=4")
	assert.Contains(t, out, "level=WARN msg=\"enrich incomplete\"")
	assert.Contains(t, out, "op=slice cells=7")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogIngest(context.Background(), 1, 0, 0, errors.New("ignored"))
}

func TestNewLogger_NilHandler(t *testing.T) {
	l := NewLogger(nil)
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}
