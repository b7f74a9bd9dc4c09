package groebner

import (
	"errors"

	"gbf2/zdd"
)

var (
	// ErrRingMismatch is returned when a polynomial does not belong to the strategy's ring.
	ErrRingMismatch = zdd.ErrRingMismatch

	ErrZeroPolynomial = errors.New("groebner: zero polynomial cannot be a generator")
	ErrInvalidOptions = errors.New("groebner: invalid options")
)
