package engine

import (
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ViolationKind classifies a problem found by CheckLayout.
type ViolationKind string

const (
	ViolationOverlap      ViolationKind = "overlap"
	ViolationOutOfBounds  ViolationKind = "out-of-bounds"
	ViolationQuantity     ViolationKind = "quantity"
	ViolationBoardGap     ViolationKind = "board-gap"
	ViolationBoardsNeeded ViolationKind = "boards-needed"
)

// Violation describes one broken layout guarantee.
type Violation struct {
	Kind       ViolationKind
	BoardIndex int
	PieceID    string
	Message    string
}

// CheckLayout re-validates a layout against the pieces it was computed from.
// It is used on layouts loaded from disk or received over the API, where the
// engine's guarantees can no longer be assumed. An empty result means the
// layout is consistent.
func CheckLayout(layout model.CutLayout, pieces []model.WoodPiece) []Violation {
	var out []Violation
	b := layout.Board

	used := make(map[int]bool)
	maxIndex := -1
	for _, p := range layout.Placements {
		used[p.BoardIndex] = true
		if p.BoardIndex > maxIndex {
			maxIndex = p.BoardIndex
		}
		if p.BoardIndex < 0 || p.X < -epsilon || p.Y < -epsilon ||
			p.Right() > b.Length+epsilon || p.Bottom() > b.Width+epsilon {
			out = append(out, Violation{
				Kind:       ViolationOutOfBounds,
				BoardIndex: p.BoardIndex,
				PieceID:    p.PieceID,
				Message: fmt.Sprintf("Board %d: piece %q #%d at (%.1f, %.1f) size %.1fx%.1f leaves the %.0fx%.0f board",
					p.BoardIndex+1, p.PieceID, p.Ordinal+1, p.X, p.Y, p.Length, p.Width, b.Length, b.Width),
			})
		}
	}

	for i := 0; i <= maxIndex; i++ {
		if !used[i] {
			out = append(out, Violation{
				Kind:       ViolationBoardGap,
				BoardIndex: i,
				Message:    fmt.Sprintf("Board %d has no placements", i+1),
			})
		}
	}
	if layout.BoardsNeeded != maxIndex+1 {
		out = append(out, Violation{
			Kind:    ViolationBoardsNeeded,
			Message: fmt.Sprintf("layout reports %d boards but uses %d", layout.BoardsNeeded, maxIndex+1),
		})
	}

	out = append(out, checkOverlaps(layout)...)

	for _, piece := range pieces {
		if got := layout.PieceCount(piece.ID); got != piece.Quantity {
			out = append(out, Violation{
				Kind:       ViolationQuantity,
				BoardIndex: -1,
				PieceID:    piece.ID,
				Message:    fmt.Sprintf("piece %q: %d placed, %d requested", piece.ID, got, piece.Quantity),
			})
		}
	}
	return out
}

func checkOverlaps(layout model.CutLayout) []Violation {
	var out []Violation
	for board := 0; board < layout.BoardsNeeded; board++ {
		ps := layout.BoardPlacements(board)
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				if overlaps(ps[i], ps[j]) {
					out = append(out, Violation{
						Kind:       ViolationOverlap,
						BoardIndex: board,
						PieceID:    ps[i].PieceID,
						Message: fmt.Sprintf("Board %d: %q #%d overlaps %q #%d",
							board+1, ps[i].PieceID, ps[i].Ordinal+1, ps[j].PieceID, ps[j].Ordinal+1),
					})
				}
			}
		}
	}
	return out
}

// overlaps reports whether two footprints share interior area. Touching
// edges are allowed.
func overlaps(a, b model.Placement) bool {
	return a.X < b.Right()-epsilon && b.X < a.Right()-epsilon &&
		a.Y < b.Bottom()-epsilon && b.Y < a.Bottom()-epsilon
}

// FormatViolations produces human-readable messages from violation data.
func FormatViolations(vs []Violation) []string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, v.Message)
	}
	return msgs
}
