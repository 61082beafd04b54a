package fields

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mmrzaf/rdgen/internal/domain"
)

// TimestampField picks a uniform whole second in [start, end) and renders it
// with layout.
type TimestampField struct {
	start  int64
	end    int64
	layout string
}

func NewTimestampField(start, end time.Time, layout string) (*TimestampField, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start (%s) must be before end (%s)",
			ErrInvalidConfiguration, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	lo, hi := ceilUnix(start), ceilUnix(end)-1
	if lo > hi {
		return nil, fmt.Errorf("%w: window %s..%s holds no whole second",
			ErrInvalidConfiguration, start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	}
	if layout == "" {
		layout = time.RFC3339
	}
	return &TimestampField{start: lo, end: hi, layout: layout}, nil
}

func ceilUnix(t time.Time) int64 {
	sec := t.Unix()
	if t.Nanosecond() > 0 {
		sec++
	}
	return sec
}

func (f *TimestampField) Generate(rng *rand.Rand) (interface{}, error) {
	sec := uniformInt64(rng, f.start, f.end)
	return time.Unix(sec, 0).UTC().Format(f.layout), nil
}

func (f *TimestampField) ColumnType() domain.ColumnType { return domain.ColumnTypeText }
