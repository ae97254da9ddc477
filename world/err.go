package world

import (
	"errors"

	"github.com/ezrec/critter/translate"
)

var f = translate.From

var (
	ErrOutOfBounds  = errors.New(f("position out of bounds"))
	ErrTileBlocked  = errors.New(f("tile blocked"))
	ErrTileOccupied = errors.New(f("tile occupied"))
	ErrIdInvalid    = errors.New(f("creature id invalid"))
	ErrIdDuplicate  = errors.New(f("creature id duplicated"))
	ErrWorldFull    = errors.New(f("no free tile"))
)
