package fields

import (
	"fmt"
	"math/rand"
)

// CallbackFunc supplies values for a UserCallbackField. Its result is used
// as is; the core places no constraint on the type.
type CallbackFunc func() (interface{}, error)

type UserCallbackField struct {
	fn CallbackFunc
}

func NewUserCallbackField(fn CallbackFunc) (*UserCallbackField, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: callback is not callable", ErrInvalidConfiguration)
	}
	return &UserCallbackField{fn: fn}, nil
}

// Generate ignores rng. Errors from the callback are returned untouched.
func (f *UserCallbackField) Generate(_ *rand.Rand) (interface{}, error) {
	return f.fn()
}
