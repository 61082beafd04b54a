// Package fields holds the random value producers that DataGenerator composes
// into rows. Every producer draws from the *rand.Rand handed to Generate, so a
// seeded source yields a reproducible sequence.
package fields

import (
	"errors"
	"math"
	"math/rand"

	"github.com/mmrzaf/rdgen/internal/domain"
)

// ErrInvalidConfiguration is wrapped by every constructor and registration
// precondition failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Field produces one random value per call.
type Field interface {
	Generate(rng *rand.Rand) (interface{}, error)
}

// Typed is implemented by fields that know which column type their values
// map to in a row sink. Fields that don't implement it are stored as text.
type Typed interface {
	ColumnType() domain.ColumnType
}

// ColumnTypeOf reports the sink column type for f.
func ColumnTypeOf(f Field) domain.ColumnType {
	if t, ok := f.(Typed); ok {
		return t.ColumnType()
	}
	return domain.ColumnTypeText
}

// uniformInt64 draws from [min, max] inclusive. Callers guarantee min <= max.
func uniformInt64(rng *rand.Rand, min, max int64) int64 {
	span := uint64(max) - uint64(min)
	if span < math.MaxInt64 {
		return min + rng.Int63n(int64(span)+1)
	}
	for {
		v := rng.Uint64()
		if v <= span {
			return int64(uint64(min) + v)
		}
	}
}
