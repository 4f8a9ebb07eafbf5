package checker

import (
	"errors"
	"fmt"
)

var (
	ErrArithmeticMismatch = errors.New("arithmetic mismatch")
	ErrInvalidParameters  = errors.New("invalid checker parameters")
)

// MismatchError reports the first trial whose result disagreed with the reference
type MismatchError struct {
	Trial    int
	A        int64
	B        int64
	Expected int64
	Actual   int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s at trial %d: f(%d, %d) = %d, expected %d",
		ErrArithmeticMismatch, e.Trial, e.A, e.B, e.Actual, e.Expected)
}

// Is lets errors.Is match ErrArithmeticMismatch
func (e *MismatchError) Is(target error) bool {
	return target == ErrArithmeticMismatch
}
