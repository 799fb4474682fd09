package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "missing.png")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		args     []string
		wantCode int
		wantErr  string
	}{
		{"help", context.Background(), []string{"--help"}, 0, ""},
		{"missing input", context.Background(), []string{"render", missing}, 1, "FILE_NOT_FOUND"},
		{"bad flag value", context.Background(), []string{"render", missing, "--metric", "cosine"}, 1, "INVALID_INPUT"},
		{"interrupted", cancelled, []string{"render", missing}, exitInterrupted, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if got := run(tt.ctx, tt.args, &stderr); got != tt.wantCode {
				t.Fatalf("run = %d, want %d (stderr: %s)", got, tt.wantCode, stderr.String())
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr %q does not mention %s", stderr.String(), tt.wantErr)
			}
		})
	}
}
