package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/quadart/pkg/history"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
		{10 * 24 * time.Hour, "Mar 4, 2026"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatRelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestHistoryTable(t *testing.T) {
	now := time.Now()
	records := []history.Record{
		{CreatedAt: now, Source: "cat.png", Format: "svg", Width: 640, Height: 480, Leaves: 1234, CacheHit: true},
		{CreatedAt: now.Add(-2 * time.Hour), Source: "dog.jpg", Format: "png", Width: 32, Height: 32, Leaves: 9, Truncated: true},
	}
	out := historyTable(records, now)
	for _, want := range []string{"cat.png", "640x480", "1234", iconCached, "dog.jpg", "2h ago", iconWarning} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
