package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BoardCut/internal/model"
)

// MaxUnits caps the number of units one layout may hold, per piece and in
// total. Larger requests are rejected before any instance is allocated.
const MaxUnits = 100_000

// Expand validates the board and piece list and turns every unit of quantity
// into its own PieceInstance. Instances keep the input order: all units of
// piece i come before those of piece i+1.
func Expand(board model.BoardSize, pieces []model.WoodPiece, policy model.RotationPolicy) ([]model.PieceInstance, error) {
	if err := validateBoard(board); err != nil {
		return nil, err
	}

	total := 0
	seen := make(map[string]bool, len(pieces))
	for _, p := range pieces {
		if err := validatePiece(p); err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, &model.InvalidPieceError{PieceID: p.ID, Reason: "duplicate piece id"}
		}
		seen[p.ID] = true
		if p.Quantity > MaxUnits-total {
			return nil, &model.InvalidPieceError{
				PieceID: p.ID,
				Reason:  fmt.Sprintf("quantity too large: layout is limited to %d units", MaxUnits),
			}
		}
		total += p.Quantity
	}

	instances := make([]model.PieceInstance, 0, total)
	for _, p := range pieces {
		effL := p.EffectiveLength()
		effW := p.EffectiveWidth()
		rotatable := model.CanRotate(p.Grain, policy) && effL != effW

		if !fitsEmptyBoard(board, effL, effW, rotatable) {
			return nil, &model.PieceTooLargeError{
				PieceID:         p.ID,
				EffectiveLength: effL,
				EffectiveWidth:  effW,
				Board:           board,
			}
		}

		for i := 0; i < p.Quantity; i++ {
			instances = append(instances, model.PieceInstance{
				PieceID:         p.ID,
				Ordinal:         i,
				Sequence:        len(instances),
				EffectiveLength: effL,
				EffectiveWidth:  effW,
				RotationAllowed: rotatable,
				Margins:         p.EdgeMargins,
			})
		}
	}
	return instances, nil
}

func validateBoard(b model.BoardSize) error {
	if !positive(b.Length) || !positive(b.Width) {
		return fmt.Errorf("%w: board dimensions must be positive, got %gx%g", model.ErrInvalidInput, b.Length, b.Width)
	}
	return nil
}

func validatePiece(p model.WoodPiece) error {
	switch {
	case p.ID == "":
		return &model.InvalidPieceError{Reason: "missing piece id"}
	case !positive(p.Length):
		return &model.InvalidPieceError{PieceID: p.ID, Reason: fmt.Sprintf("length must be positive, got %g", p.Length)}
	case !positive(p.Width):
		return &model.InvalidPieceError{PieceID: p.ID, Reason: fmt.Sprintf("width must be positive, got %g", p.Width)}
	case p.Quantity <= 0:
		return &model.InvalidPieceError{PieceID: p.ID, Reason: fmt.Sprintf("quantity must be positive, got %d", p.Quantity)}
	case !p.EdgeMargins.Valid():
		return &model.InvalidPieceError{PieceID: p.ID, Reason: "margins must be non-negative"}
	}
	return nil
}

// positive rejects zero, negatives, NaN and infinities.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func fitsEmptyBoard(b model.BoardSize, l, w float64, rotatable bool) bool {
	if l <= b.Length+epsilon && w <= b.Width+epsilon {
		return true
	}
	return rotatable && w <= b.Length+epsilon && l <= b.Width+epsilon
}
