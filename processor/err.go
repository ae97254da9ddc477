package processor

import (
	"errors"
	"fmt"

	"github.com/ezrec/critter/translate"
)

var f = translate.From

var (
	// ErrArity matches every ArityError.
	ErrArity = errors.New(f("arity mismatch"))
)

// ArityError reports a call builder used with an instruction of a different arity.
type ArityError struct {
	Instruction fmt.Stringer
	Want        int // Arity declared by the instruction.
	Got         int // Arguments supplied to the builder.
}

func (err *ArityError) Error() string {
	return f("%v takes %d arguments, not %d", err.Instruction, err.Want, err.Got)
}

func (err *ArityError) Is(target error) bool {
	return target == ErrArity
}
