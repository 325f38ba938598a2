package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPiece_DefaultsCategoryAndGrain(t *testing.T) {
	p := NewPiece("  ", 100, 50, 2)

	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, GrainLongitudinal, p.Grain)
	assert.Len(t, p.ID, 8)
	assert.Equal(t, 2, p.Quantity)
}

func TestWoodPiece_EffectiveDimensions(t *testing.T) {
	p := NewPiece("Door", 100, 50, 1)
	p.EdgeMargins = EdgeMargins{Top: 1, Right: 0.5, Bottom: 2, Left: 0.5}

	assert.Equal(t, 101.0, p.EffectiveLength())
	assert.Equal(t, 53.0, p.EffectiveWidth())
}

func TestParseGrain(t *testing.T) {
	tests := []struct {
		in     string
		want   GrainDirection
		wantOK bool
	}{
		{"", GrainLongitudinal, true},
		{"longitudinal", GrainLongitudinal, true},
		{"Transverse", GrainTransverse, true},
		{"طولي", GrainLongitudinal, true},
		{"عرضي", GrainTransverse, true},
		{"diagonal", GrainLongitudinal, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseGrain(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestGrainDirection_JSON(t *testing.T) {
	p := WoodPiece{ID: "a", Length: 10, Width: 5, Quantity: 1, Grain: GrainTransverse}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"grain":"transverse"`)

	var bad WoodPiece
	err = json.Unmarshal([]byte(`{"grain":"sideways"}`), &bad)
	assert.Error(t, err)
}

func TestGrainDirection_Arabic(t *testing.T) {
	assert.Equal(t, "طولي", GrainLongitudinal.Arabic())
	assert.Equal(t, "عرضي", GrainTransverse.Arabic())
}

// ─── Rotation Policy Tests ────────────────────────────────────

func TestCanRotate(t *testing.T) {
	tests := []struct {
		name   string
		grain  GrainDirection
		policy RotationPolicy
		want   bool
	}{
		{"Free/Longitudinal", GrainLongitudinal, RotationFree, true},
		{"Free/Transverse", GrainTransverse, RotationFree, true},
		{"Locked/Longitudinal", GrainLongitudinal, RotationGrainLocked, false},
		{"Locked/Transverse", GrainTransverse, RotationGrainLocked, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanRotate(tc.grain, tc.policy))
		})
	}
}

func TestParseRotationPolicy(t *testing.T) {
	p, err := ParseRotationPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RotationFree, p)

	p, err = ParseRotationPolicy("Grain-Locked")
	require.NoError(t, err)
	assert.Equal(t, RotationGrainLocked, p)

	_, err = ParseRotationPolicy("sometimes")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestRenderedGrain(t *testing.T) {
	assert.Equal(t, GrainLongitudinal, RenderedGrain(GrainLongitudinal, false))
	assert.Equal(t, GrainTransverse, RenderedGrain(GrainLongitudinal, true))
	assert.Equal(t, GrainLongitudinal, RenderedGrain(GrainTransverse, true))
}

// ─── CutLayout Tests ────────────────────────────────────

func sampleLayout() CutLayout {
	return CutLayout{
		Board:        BoardSize{Length: 100, Width: 50},
		BoardsNeeded: 2,
		Placements: []Placement{
			{PieceID: "a", Ordinal: 0, BoardIndex: 0, X: 0, Y: 0, Length: 50, Width: 50},
			{PieceID: "a", Ordinal: 1, BoardIndex: 0, X: 50, Y: 0, Length: 50, Width: 25},
			{PieceID: "b", Ordinal: 0, BoardIndex: 1, X: 0, Y: 0, Length: 20, Width: 10},
		},
		TotalWaste: 250,
	}
}

func TestCutLayout_Helpers(t *testing.T) {
	l := sampleLayout()

	assert.Len(t, l.BoardPlacements(0), 2)
	assert.Len(t, l.BoardPlacements(1), 1)
	assert.Equal(t, 3750.0, l.UsedArea(0))
	assert.InDelta(t, 75.0, l.Efficiency(0), 1e-9)
	assert.InDelta(t, 39.5, l.TotalEfficiency(), 1e-9)
	assert.Equal(t, 2.5, l.WasteMeters())
	assert.Equal(t, 2, l.PieceCount("a"))
	assert.Equal(t, 0, l.PieceCount("missing"))
}

func TestCutLayout_EmptyEfficiency(t *testing.T) {
	var l CutLayout
	assert.Equal(t, 0.0, l.TotalEfficiency())
	assert.Equal(t, 0.0, l.Efficiency(0))
}

func TestTotalQuantity(t *testing.T) {
	pieces := []WoodPiece{{Quantity: 2}, {Quantity: 5}}
	assert.Equal(t, 7, TotalQuantity(pieces))
}

func TestErrors_Matching(t *testing.T) {
	var err error = &InvalidPieceError{PieceID: "p1", Reason: "length must be positive"}
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrPieceTooLarge))
	assert.Contains(t, err.Error(), "p1")

	err = &PieceTooLargeError{PieceID: "big", EffectiveLength: 300, EffectiveWidth: 50, Board: DefaultBoardSize()}
	assert.True(t, errors.Is(err, ErrPieceTooLarge))
	var tooLarge *PieceTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, "big", tooLarge.PieceID)
	assert.Equal(t, `piece "big" (300x50 cm with margins) does not fit a 244x122 cm board`, err.Error())
}
