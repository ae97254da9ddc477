package store

import (
	"errors"

	"github.com/ezrec/critter/translate"
)

var f = translate.From

var (
	ErrTickMissing = errors.New(f("tick not in store"))
	ErrKeyInvalid  = errors.New(f("store key invalid"))
)

// ErrKey indicates the store key an error occurred on.
type ErrKey struct {
	Key string
	Err error
}

func (err *ErrKey) Error() string {
	return f("key %v: %v", err.Key, err.Err)
}

func (err *ErrKey) Unwrap() error {
	return err.Err
}
