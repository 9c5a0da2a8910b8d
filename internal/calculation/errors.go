package calculation

import (
	"errors"

	"github.com/rpgo/returns-calculator/internal/domain"
)

var (
	// ErrInvalidInput marks a caller contract violation: a negative amount or fewer than one year.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange marks a computed value that cannot be represented for presentation.
	ErrOutOfRange = errors.New("value out of representable range")
	// ErrUnknownMode is returned by Engine.Compute for modes other than lumpsum and sip.
	ErrUnknownMode = domain.ErrUnknownMode
)
