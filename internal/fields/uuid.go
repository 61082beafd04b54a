package fields

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/mmrzaf/rdgen/internal/domain"
)

// UUIDField yields version 4 UUID strings built from rng bytes, so a seeded
// source repeats the same identifiers.
type UUIDField struct{}

func (UUIDField) Generate(rng *rand.Rand) (interface{}, error) {
	uuidBytes := make([]byte, 16)
	rng.Read(uuidBytes)
	uuidBytes[6] = (uuidBytes[6] & 0x0f) | 0x40
	uuidBytes[8] = (uuidBytes[8] & 0x3f) | 0x80
	u, err := uuid.FromBytes(uuidBytes)
	if err != nil {
		return nil, err
	}
	return u.String(), nil
}

func (UUIDField) ColumnType() domain.ColumnType { return domain.ColumnTypeUUID }
