package universe

import "errors"

var (
	//ErrInvalidDimension is returned when the width or height is not positive
	ErrInvalidDimension = errors.New("invalid dimension")
	//ErrOutOfRange is returned when the cell coordinates are outside the grid
	ErrOutOfRange = errors.New("cell out of range")
	//ErrInvalidDensity is returned when the seeding density is outside [0, 1]
	ErrInvalidDensity = errors.New("invalid density")
	//ErrUnknownEngine is returned when the engine name is not registered
	ErrUnknownEngine = errors.New("unknown engine")
	//ErrClosed is returned by the BaseUniverse after Close
	ErrClosed = errors.New("universe is closed")
)
