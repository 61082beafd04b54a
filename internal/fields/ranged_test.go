package fields

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestNewRangedField_RejectsInvalidBounds(t *testing.T) {
	cases := []struct {
		name     string
		chars    string
		min, max int
	}{
		{"too_few_chars", "abcd", 5, 10},
		{"min_below_5", "abcdef", 4, 10},
		{"max_above_50", "abcdef", 5, 51},
		{"max_equals_min", "abcdef", 10, 10},
		{"max_below_min", "abcdef", 12, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRangedField(tc.chars, tc.min, tc.max)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestNewRangedField_AcceptsEdgeBounds(t *testing.T) {
	if _, err := NewRangedField("abcde", 5, 50); err != nil {
		t.Fatalf("expected 5..50 with 5 chars to be valid, got %v", err)
	}
	if _, err := NewRangedField("abcde", 5, 6); err != nil {
		t.Fatalf("expected 5..6 to be valid, got %v", err)
	}
}

func TestRangedField_LengthAndAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f, err := NewRangedField("xyz12", 5, 8)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		s := f.GenerateString(rng)
		if len(s) < 5 || len(s) > 8 {
			t.Fatalf("length out of range: %q", s)
		}
		seen[len(s)] = true
		for _, r := range s {
			if !strings.ContainsRune("xyz12", r) {
				t.Fatalf("unexpected character %q in %q", r, s)
			}
		}
	}
	for l := 5; l <= 8; l++ {
		if !seen[l] {
			t.Fatalf("length %d never produced", l)
		}
	}
}

func TestRangedField_MultiByteCharacters(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f, err := NewRangedField("αβγδε", 5, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		s := f.GenerateString(rng)
		n := len([]rune(s))
		if n < 5 || n > 6 {
			t.Fatalf("expected 5..6 runes, got %d in %q", n, s)
		}
	}
}

func TestRangedField_SameSeedSameOutput(t *testing.T) {
	f, err := NewRangedField("abcdefgh", 5, 20)
	if err != nil {
		t.Fatal(err)
	}
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		if x, y := f.GenerateString(a), f.GenerateString(b); x != y {
			t.Fatalf("draw %d differs: %q vs %q", i, x, y)
		}
	}
}

func TestSequence(t *testing.T) {
	if got := Sequence('a', 'e'); got != "abcde" {
		t.Fatalf("unexpected sequence: %q", got)
	}
	if got := Sequence('0', '0'); got != "0" {
		t.Fatalf("unexpected single sequence: %q", got)
	}
	if got := Sequence('z', 'a'); got != "" {
		t.Fatalf("expected empty sequence for reversed bounds, got %q", got)
	}
}
