package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Environments(t *testing.T) {
	cases := []struct {
		env     string
		wantErr bool
	}{
		{"prod", false},
		{"local", false},
		{"dev", false},
		{"staging", true},
		{"", true},
	}

	for _, tc := range cases {
		t.Run("env_"+tc.env, func(t *testing.T) {
			l, err := NewLogger(tc.env, "")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for env %q", tc.env)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled after override")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for an unknown level")
	}
}

func TestFromContext(t *testing.T) {
	base := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), base)

	if got := FromContext(ctx); got != base {
		t.Error("expected the stored logger back")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("expected a usable fallback logger for a bare context")
	}
}
