// Package export renders computed cut layouts to the formats the workshop
// uses: the KDT cut-list workbook, board diagrams, piece labels, CNC/saw DXF
// and a utilization chart.
package export

import (
	"errors"
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ErrNoLayout is returned when a project has not been laid out yet.
var ErrNoLayout = errors.New("project has no computed layout")

func requireLayout(proj model.Project) (model.CutLayout, error) {
	if proj.Layout == nil {
		return model.CutLayout{}, ErrNoLayout
	}
	if proj.Layout.BoardsNeeded == 0 {
		return model.CutLayout{}, fmt.Errorf("no boards to export")
	}
	return *proj.Layout, nil
}

// pieceIndex maps piece IDs to their definition and list position.
type pieceIndex struct {
	byID  map[string]model.WoodPiece
	order map[string]int
}

func indexPieces(pieces []model.WoodPiece) pieceIndex {
	idx := pieceIndex{
		byID:  make(map[string]model.WoodPiece, len(pieces)),
		order: make(map[string]int, len(pieces)),
	}
	for i, p := range pieces {
		idx.byID[p.ID] = p
		idx.order[p.ID] = i
	}
	return idx
}

func (idx pieceIndex) lookup(id string) (model.WoodPiece, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

// colorFor keeps every unit of a piece the same color across boards.
func (idx pieceIndex) colorFor(id string) partColor {
	return partColors[idx.order[id]%len(partColors)]
}

// rect is an axis-aligned rectangle in board coordinates (cm).
type rect struct {
	X, Y, W, H float64
}

// cutRect returns the finished piece inside a placement's footprint, with the
// trim margins removed. A rotated piece is turned clockwise, so its authored
// top edge faces right and its left edge faces up.
func cutRect(p model.Placement, m model.EdgeMargins) rect {
	if !p.Rotated {
		return rect{
			X: p.X + m.Left,
			Y: p.Y + m.Top,
			W: p.Length - m.Left - m.Right,
			H: p.Width - m.Top - m.Bottom,
		}
	}
	return rect{
		X: p.X + m.Bottom,
		Y: p.Y + m.Left,
		W: p.Length - m.Top - m.Bottom,
		H: p.Width - m.Left - m.Right,
	}
}
