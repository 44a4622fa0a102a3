package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		infoOn  bool
	}{
		{level: "debug", debugOn: true, infoOn: true},
		{level: "info", debugOn: false, infoOn: true},
		{level: "warn", debugOn: false, infoOn: false},
		{level: "error", debugOn: false, infoOn: false},
		{level: "garbage", debugOn: false, infoOn: true}, // falls back to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level, "text")
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.debugOn {
				t.Errorf("Enabled(debug) = %v, want %v", got, tt.debugOn)
			}
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.infoOn {
				t.Errorf("Enabled(info) = %v, want %v", got, tt.infoOn)
			}
		})
	}
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	op := uuid.New()

	WithOperation(base, op).Info("columns parsed")

	if !strings.Contains(buf.String(), op.String()) {
		t.Errorf("log entry %q missing operation id %s", buf.String(), op)
	}
}

func TestWithOperation_NilLogger(t *testing.T) {
	if WithOperation(nil, uuid.New()) == nil {
		t.Fatal("WithOperation(nil, ...) should fall back to the default logger")
	}
}
