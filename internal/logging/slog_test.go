package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufLogger(slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "k", 1)
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err")

	out := buf.String()
	assert.Contains(t, out, "msg=dbg")
	assert.Contains(t, out, "msg=inf")
	assert.Contains(t, out, "msg=wrn")
	assert.Contains(t, out, "msg=err")
	assert.Contains(t, out, "k=1")
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufLogger(slog.LevelInfo)

	child := log.With("component", "store")
	require.NotNil(t, child)
	child.Info(context.Background(), "hello")

	assert.Contains(t, buf.String(), "component=store")
}
