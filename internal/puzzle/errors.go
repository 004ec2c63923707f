package puzzle

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds reports a position outside the grid.
	ErrOutOfBounds = errors.New("puzzle: position out of bounds")
	// ErrInvalidInput reports a zero, non-unit or reversing direction.
	ErrInvalidInput = errors.New("puzzle: invalid input direction")
	// ErrBlocked reports a move stopped by a wall, the snake body or an unpushable fruit.
	ErrBlocked = errors.New("puzzle: move blocked")
	// ErrBusy reports input received while the resolver is not idle.
	ErrBusy = errors.New("puzzle: resolver busy")
	// ErrInconsistentGridSize reports level maps that disagree with the declared size.
	ErrInconsistentGridSize = errors.New("puzzle: inconsistent grid size")
	// ErrInvalidStart reports a start position the snake cannot be laid out from.
	ErrInvalidStart = errors.New("puzzle: invalid start position")
	// ErrNoLevel reports an operation that needs a loaded level.
	ErrNoLevel = errors.New("puzzle: no level loaded")
)

// LevelError contains details about a level validation failure.
type LevelError struct {
	Code    string
	Message string
	Err     error
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the sentinel error the failure belongs to.
func (e *LevelError) Unwrap() error {
	return e.Err
}
