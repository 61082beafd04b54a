package fields

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/mmrzaf/rdgen/internal/domain"
)

const (
	DefaultDoubleMin       int64 = -1000000
	DefaultDoubleMax       int64 = 1000000
	DefaultDoublePrecision       = 3

	MinPrecision = 1
	MaxPrecision = 9
)

// DoubleField joins an integral part drawn like IntegerField with a
// fractional part of exactly precision decimal digits.
type DoubleField struct {
	IntegerField
	precision int
	scale     int64
}

func NewDoubleField(min, max int64, precision int) (*DoubleField, error) {
	if precision < MinPrecision || precision > MaxPrecision {
		return nil, fmt.Errorf("%w: precision must be between %d and %d, got %d",
			ErrInvalidConfiguration, MinPrecision, MaxPrecision, precision)
	}
	base, err := NewIntegerField(min, max)
	if err != nil {
		return nil, err
	}
	scale := int64(1)
	for i := 0; i < precision; i++ {
		scale *= 10
	}
	return &DoubleField{IntegerField: *base, precision: precision, scale: scale}, nil
}

func (f *DoubleField) Generate(rng *rand.Rand) (interface{}, error) {
	s := f.GenerateDecimal(rng)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parse generated decimal %q: %w", s, err)
	}
	return v, nil
}

// GenerateDecimal returns the "<integral>.<fractional>" text that Generate
// parses, with the fractional part left-padded to precision digits.
func (f *DoubleField) GenerateDecimal(rng *rand.Rand) string {
	integral := f.GenerateInt(rng)
	frac := rng.Int63n(f.scale)
	return fmt.Sprintf("%d.%0*d", integral, f.precision, frac)
}

func (f *DoubleField) Precision() int { return f.precision }

func (f *DoubleField) ColumnType() domain.ColumnType { return domain.ColumnTypeDouble }
