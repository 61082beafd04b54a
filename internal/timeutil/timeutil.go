// Package timeutil parses the human-friendly instants and durations used in
// schema params.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts anything time.ParseDuration does plus whole days
// ("7d") and weeks ("2w").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration string")
	}

	if dur, err := time.ParseDuration(s); err == nil {
		return dur, nil
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	num, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", s[:len(s)-1])
	}

	switch s[len(s)-1] {
	case 'd':
		return time.Duration(num) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(num) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", s[len(s)-1:])
	}
}

// ParseInstant resolves one of:
//
//	now, now-7d, now+1h   relative to now
//	-30d, +2w             shorthand for now-30d, now+2w
//	2024-01-02            midnight UTC
//	2024-01-02T15:04:05Z  RFC 3339
func ParseInstant(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time string")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	rel := strings.TrimPrefix(strings.ToLower(s), "now")
	if rel == "" {
		return now, nil
	}

	var sign time.Duration
	switch rel[0] {
	case '-':
		sign = -1
	case '+':
		sign = 1
	default:
		return time.Time{}, fmt.Errorf("relative time must start with + or -: %s", s)
	}

	dur, err := ParseDuration(rel[1:])
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(sign * dur), nil
}
