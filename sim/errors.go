package sim

import (
	"errors"
	"fmt"
)

var (
	ErrCellOutOfBounds = errors.New("cell out of bounds")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrDuplicateEntity = errors.New("entity already in grid")
	ErrNoLevel         = errors.New("world has no levels")
	ErrLevelIndex      = errors.New("level index out of range")
	ErrInvalidSettings = errors.New("invalid world settings")
)

// CellOutOfBoundsError reports the cell coordinates that fell outside the
// grid. It matches ErrCellOutOfBounds with errors.Is.
type CellOutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *CellOutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

func (e *CellOutOfBoundsError) Is(target error) bool {
	return target == ErrCellOutOfBounds
}
