package model

import (
	"fmt"
	"math"
	"sort"
)

// Offcut represents a usable rectangular remnant left on a board.
type Offcut struct {
	ID         string  `json:"id"`
	BoardIndex int     `json:"board_index"`
	X          float64 `json:"x"`      // cm from the left board edge
	Y          float64 `json:"y"`      // cm from the top board edge
	Length     float64 `json:"length"` // along x (cm)
	Width      float64 `json:"width"`  // along y (cm)
}

// Area returns the area of the offcut in cm².
func (o Offcut) Area() float64 {
	return o.Length * o.Width
}

// AsBoard returns the offcut as a board size for a follow-up layout.
func (o Offcut) AsBoard() BoardSize {
	return BoardSize{Length: o.Length, Width: o.Width}
}

// MinOffcutDimension is the minimum length or width (cm) for a remnant to be
// worth keeping. Smaller remnants are scrap.
const MinOffcutDimension = 10.0

// MinOffcutArea is the minimum area (cm²) for a remnant to be worth keeping.
const MinOffcutArea = 400.0

// DetectOffcuts returns the usable strips to the right of and below the
// pieces placed on one board, largest first.
func DetectOffcuts(layout CutLayout, boardIndex int) []Offcut {
	board := layout.Board
	placements := layout.BoardPlacements(boardIndex)

	if len(placements) == 0 {
		return []Offcut{{
			ID:         offcutID(boardIndex, 1),
			BoardIndex: boardIndex,
			Length:     board.Length,
			Width:      board.Width,
		}}
	}

	var maxRight, maxBottom float64
	for _, p := range placements {
		maxRight = math.Max(maxRight, p.Right())
		maxBottom = math.Max(maxBottom, p.Bottom())
	}

	var offcuts []Offcut

	// Right strip: full board width beyond the rightmost piece
	rightLen := board.Length - maxRight
	if usable(rightLen, board.Width) {
		offcuts = append(offcuts, Offcut{
			BoardIndex: boardIndex,
			X:          maxRight,
			Length:     rightLen,
			Width:      board.Width,
		})
	}

	// Bottom strip: below the lowest piece, stopping at the right strip
	bottomWidth := board.Width - maxBottom
	bottomLen := math.Min(maxRight, board.Length)
	if usable(bottomLen, bottomWidth) {
		offcuts = append(offcuts, Offcut{
			BoardIndex: boardIndex,
			Y:          maxBottom,
			Length:     bottomLen,
			Width:      bottomWidth,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	for i := range offcuts {
		offcuts[i].ID = offcutID(boardIndex, i+1)
	}
	return offcuts
}

// DetectAllOffcuts finds offcuts across every board of a layout.
func DetectAllOffcuts(layout CutLayout) []Offcut {
	var all []Offcut
	for i := 0; i < layout.BoardsNeeded; i++ {
		all = append(all, DetectOffcuts(layout, i)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in cm².
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}

func usable(length, width float64) bool {
	return length >= MinOffcutDimension && width >= MinOffcutDimension && length*width >= MinOffcutArea
}

func offcutID(boardIndex, n int) string {
	return fmt.Sprintf("B%d-O%d", boardIndex+1, n)
}
