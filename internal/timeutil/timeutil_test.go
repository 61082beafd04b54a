package timeutil

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"90s": 90 * time.Second,
		"2h":  2 * time.Hour,
		"7d":  7 * 24 * time.Hour,
		"2w":  14 * 24 * time.Hour,
		" 1d": 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		if err != nil || got != want {
			t.Fatalf("ParseDuration(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "d", "xd", "3y"} {
		if _, err := ParseDuration(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseInstant(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"now":                  now,
		"NOW-1d":               now.Add(-24 * time.Hour),
		"now+2h":               now.Add(2 * time.Hour),
		"-30d":                 now.Add(-30 * 24 * time.Hour),
		"+1w":                  now.Add(7 * 24 * time.Hour),
		"2024-01-02":           time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"2024-01-02T03:04:05Z": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseInstant(in, now)
		if err != nil {
			t.Fatalf("ParseInstant(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseInstant(%q) = %s, want %s", in, got, want)
		}
	}
	for _, bad := range []string{"", "yesterday", "now*2", "-"} {
		if _, err := ParseInstant(bad, now); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
