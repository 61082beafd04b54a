package fields

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mmrzaf/rdgen/internal/domain"
)

const (
	MinAllowedChars = 5
	MinLength       = 5
	MaxLength       = 50
)

// RangedField builds a string of random length from an allowed character set.
// Characters are drawn independently and with replacement.
type RangedField struct {
	chars []rune
	min   int
	max   int
}

func NewRangedField(chars string, minLength, maxLength int) (*RangedField, error) {
	allowed := []rune(chars)
	if len(allowed) < MinAllowedChars {
		return nil, fmt.Errorf("%w: allowed characters must number at least %d, got %d",
			ErrInvalidConfiguration, MinAllowedChars, len(allowed))
	}
	if minLength < MinLength || maxLength > MaxLength || maxLength <= minLength {
		return nil, fmt.Errorf("%w: lengths must satisfy %d <= min < max <= %d, got min=%d max=%d",
			ErrInvalidConfiguration, MinLength, MaxLength, minLength, maxLength)
	}
	return &RangedField{chars: allowed, min: minLength, max: maxLength}, nil
}

func (f *RangedField) Generate(rng *rand.Rand) (interface{}, error) {
	return f.GenerateString(rng), nil
}

// GenerateString is Generate without the interface boxing.
func (f *RangedField) GenerateString(rng *rand.Rand) string {
	length := f.min + rng.Intn(f.max-f.min+1)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteRune(f.chars[rng.Intn(len(f.chars))])
	}
	return b.String()
}

func (f *RangedField) Chars() string { return string(f.chars) }

func (f *RangedField) Lengths() (min, max int) { return f.min, f.max }

func (f *RangedField) ColumnType() domain.ColumnType { return domain.ColumnTypeText }

// Sequence returns every character from start to stop inclusive, in code
// point order. It returns "" when stop precedes start.
func Sequence(start, stop rune) string {
	if stop < start {
		return ""
	}
	var b strings.Builder
	for r := start; r <= stop; r++ {
		b.WriteRune(r)
	}
	return b.String()
}
