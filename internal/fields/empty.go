package fields

import (
	"math/rand"

	"github.com/mmrzaf/rdgen/internal/domain"
)

type EmptyField struct{}

func (EmptyField) Generate(_ *rand.Rand) (interface{}, error) {
	return "", nil
}

func (EmptyField) ColumnType() domain.ColumnType { return domain.ColumnTypeText }
