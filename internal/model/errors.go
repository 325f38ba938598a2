package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a board or piece list that cannot be laid out.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPieceTooLarge marks a piece that fits no empty board.
	ErrPieceTooLarge = errors.New("piece too large")
)

// InvalidPieceError reports a malformed piece. It matches ErrInvalidInput.
type InvalidPieceError struct {
	PieceID string
	Reason  string
}

func (e *InvalidPieceError) Error() string {
	return fmt.Sprintf("invalid piece %q: %s", e.PieceID, e.Reason)
}

func (e *InvalidPieceError) Unwrap() error {
	return ErrInvalidInput
}

// PieceTooLargeError reports a piece whose effective footprint does not fit
// an empty board in any eligible orientation. It matches ErrPieceTooLarge.
type PieceTooLargeError struct {
	PieceID         string
	EffectiveLength float64
	EffectiveWidth  float64
	Board           BoardSize
}

func (e *PieceTooLargeError) Error() string {
	return fmt.Sprintf("piece %q (%gx%g cm with margins) does not fit a %gx%g cm board",
		e.PieceID, e.EffectiveLength, e.EffectiveWidth, e.Board.Length, e.Board.Width)
}

func (e *PieceTooLargeError) Unwrap() error {
	return ErrPieceTooLarge
}
