package fields

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mmrzaf/rdgen/internal/domain"
)

// NormalField draws from a Gaussian with the given mean and standard
// deviation, rounded to precision decimal places.
type NormalField struct {
	mean      float64
	std       float64
	precision int
}

func NewNormalField(mean, std float64, precision int) (*NormalField, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%w: mean must be finite", ErrInvalidConfiguration)
	}
	if !(std > 0) || math.IsInf(std, 0) {
		return nil, fmt.Errorf("%w: std must be a positive number, got %v", ErrInvalidConfiguration, std)
	}
	if precision < MinPrecision || precision > MaxPrecision {
		return nil, fmt.Errorf("%w: precision must be between %d and %d, got %d",
			ErrInvalidConfiguration, MinPrecision, MaxPrecision, precision)
	}
	return &NormalField{mean: mean, std: std, precision: precision}, nil
}

func (f *NormalField) Generate(rng *rand.Rand) (interface{}, error) {
	v := rng.NormFloat64()*f.std + f.mean
	scale := math.Pow10(f.precision)
	return math.Round(v*scale) / scale, nil
}

func (f *NormalField) ColumnType() domain.ColumnType { return domain.ColumnTypeDouble }
