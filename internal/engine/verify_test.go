package engine

import (
	"testing"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(vs []Violation) []ViolationKind {
	var out []ViolationKind
	for _, v := range vs {
		out = append(out, v.Kind)
	}
	return out
}

func TestCheckLayout_Clean(t *testing.T) {
	layout := model.CutLayout{
		Board:        model.DefaultBoardSize(),
		BoardsNeeded: 1,
		Placements: []model.Placement{
			{PieceID: "a", X: 0, Y: 0, Length: 100, Width: 50},
			{PieceID: "a", Ordinal: 1, X: 100, Y: 0, Length: 100, Width: 50},
		},
	}
	assert.Empty(t, CheckLayout(layout, []model.WoodPiece{piece("a", 100, 50, 2)}))
}

func TestCheckLayout_Overlap(t *testing.T) {
	layout := model.CutLayout{
		Board:        model.DefaultBoardSize(),
		BoardsNeeded: 1,
		Placements: []model.Placement{
			{PieceID: "a", X: 0, Y: 0, Length: 100, Width: 50},
			{PieceID: "b", X: 50, Y: 25, Length: 100, Width: 50},
		},
	}
	vs := CheckLayout(layout, nil)
	require.Len(t, vs, 1)
	assert.Equal(t, ViolationOverlap, vs[0].Kind)
	assert.Contains(t, FormatViolations(vs)[0], "overlaps")
}

func TestCheckLayout_OutOfBoundsAndGaps(t *testing.T) {
	layout := model.CutLayout{
		Board:        model.DefaultBoardSize(),
		BoardsNeeded: 3,
		Placements: []model.Placement{
			{PieceID: "a", X: 200, Y: 0, Length: 100, Width: 50},
			{PieceID: "a", Ordinal: 1, BoardIndex: 2, Length: 10, Width: 10},
		},
	}
	vs := CheckLayout(layout, []model.WoodPiece{piece("a", 100, 50, 3)})
	assert.ElementsMatch(t, []ViolationKind{ViolationOutOfBounds, ViolationBoardGap, ViolationQuantity}, kinds(vs))
}

func TestCheckLayout_WrongBoardCount(t *testing.T) {
	layout := model.CutLayout{
		Board:        model.DefaultBoardSize(),
		BoardsNeeded: 2,
		Placements:   []model.Placement{{PieceID: "a", Length: 10, Width: 10}},
	}
	assert.Equal(t, []ViolationKind{ViolationBoardsNeeded}, kinds(CheckLayout(layout, nil)))
}
