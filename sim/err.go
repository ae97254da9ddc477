package sim

import (
	"errors"

	"github.com/ezrec/critter/translate"
	"github.com/ezrec/critter/world"
)

var f = translate.From

var (
	ErrConfigUnknown  = errors.New(f("config key unknown"))
	ErrConfigType     = errors.New(f("config value type"))
	ErrConfigRange    = errors.New(f("config value out of range"))
	ErrConfigWordBits = errors.New(f("only 64 bit words are supported"))
)

// ErrConfig indicates the config key of an error.
type ErrConfig struct {
	Key string
	Err error
}

func (err *ErrConfig) Error() string {
	return f("config %v: %v", err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrDna indicates which seed genome failed to assemble.
type ErrDna struct {
	Index int
	Err   error
}

func (err *ErrDna) Error() string {
	return f("dna[%d]: %v", err.Index, err.Err)
}

func (err *ErrDna) Unwrap() error {
	return err.Err
}

// ErrCreature indicates the creature a runtime error belongs to.
type ErrCreature struct {
	Id  world.Id
	Err error
}

func (err *ErrCreature) Error() string {
	return f("creature %d: %v", err.Id, err.Err)
}

func (err *ErrCreature) Unwrap() error {
	return err.Err
}
