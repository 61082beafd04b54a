package fields

import (
	"fmt"
	"math/rand"

	"github.com/mmrzaf/rdgen/internal/domain"
)

const (
	DefaultIntegerMin int64 = -10000
	DefaultIntegerMax int64 = 10000
)

// IntegerField draws uniformly from [min, max], both ends included.
type IntegerField struct {
	min int64
	max int64
}

func NewIntegerField(min, max int64) (*IntegerField, error) {
	if min >= max {
		return nil, fmt.Errorf("%w: integer min (%d) must be less than max (%d)", ErrInvalidConfiguration, min, max)
	}
	return &IntegerField{min: min, max: max}, nil
}

func (f *IntegerField) Generate(rng *rand.Rand) (interface{}, error) {
	return f.GenerateInt(rng), nil
}

func (f *IntegerField) GenerateInt(rng *rand.Rand) int64 {
	return uniformInt64(rng, f.min, f.max)
}

func (f *IntegerField) Bounds() (min, max int64) { return f.min, f.max }

func (f *IntegerField) ColumnType() domain.ColumnType { return domain.ColumnTypeBigInt }
