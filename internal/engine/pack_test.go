package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inst(id string, seq int, l, w float64, rotatable bool) model.PieceInstance {
	return model.PieceInstance{PieceID: id, Sequence: seq, EffectiveLength: l, EffectiveWidth: w, RotationAllowed: rotatable}
}

func TestPack_OrdersByAreaThenLengthThenSequence(t *testing.T) {
	board := model.BoardSize{Length: 1000, Width: 1000}
	instances := []model.PieceInstance{
		inst("small", 0, 10, 10, false),
		inst("wide", 1, 20, 50, false),
		inst("long", 2, 50, 20, false),
		inst("long2", 3, 50, 20, false),
	}

	placements, err := Pack(context.Background(), board, instances)
	require.NoError(t, err)

	var order []string
	for _, p := range placements {
		order = append(order, p.PieceID)
	}
	assert.Equal(t, []string{"long", "long2", "wide", "small"}, order)
}

func TestPack_FillsShelfBeforeOpeningNext(t *testing.T) {
	board := model.BoardSize{Length: 100, Width: 100}
	instances := []model.PieceInstance{
		inst("a", 0, 40, 30, false),
		inst("b", 1, 40, 30, false),
		inst("c", 2, 40, 30, false),
	}

	placements, err := Pack(context.Background(), board, instances)
	require.NoError(t, err)
	require.Len(t, placements, 3)

	assert.Equal(t, [2]float64{0, 0}, [2]float64{placements[0].X, placements[0].Y})
	assert.Equal(t, [2]float64{40, 0}, [2]float64{placements[1].X, placements[1].Y})
	assert.Equal(t, [2]float64{0, 30}, [2]float64{placements[2].X, placements[2].Y})
	for _, p := range placements {
		assert.Equal(t, 0, p.BoardIndex)
	}
}

func TestPack_OpensBoardWhenFull(t *testing.T) {
	board := model.BoardSize{Length: 100, Width: 100}
	instances := []model.PieceInstance{
		inst("a", 0, 100, 60, false),
		inst("b", 1, 100, 60, false),
	}

	placements, err := Pack(context.Background(), board, instances)
	require.NoError(t, err)
	assert.Equal(t, 0, placements[0].BoardIndex)
	assert.Equal(t, 1, placements[1].BoardIndex)
	assert.Equal(t, 0.0, placements[1].Y)
}

func TestPack_ClosedBoardIsNotRevisited(t *testing.T) {
	board := model.BoardSize{Length: 100, Width: 100}
	instances := []model.PieceInstance{
		inst("big", 0, 100, 60, false),
		inst("big2", 1, 100, 60, false),
		inst("tiny", 2, 10, 10, false),
	}

	placements, err := Pack(context.Background(), board, instances)
	require.NoError(t, err)
	// tiny would fit under the first big piece, but board 0 is closed.
	assert.Equal(t, 1, placements[2].BoardIndex)
}

func TestPack_ShelfPrefersSmallerHeightWaste(t *testing.T) {
	board := model.BoardSize{Length: 200, Width: 100}
	instances := []model.PieceInstance{
		inst("tall", 0, 50, 50, false),
		inst("flat", 1, 45, 20, true),
	}

	placements, err := Pack(context.Background(), board, instances)
	require.NoError(t, err)
	// Rotated the flat piece stands 45 high on the 50 shelf: waste 5 instead of 30.
	assert.True(t, placements[1].Rotated)
	assert.Equal(t, 50.0, placements[1].X)
	assert.Equal(t, 0.0, placements[1].Y)
}

func TestPack_UnplaceableInstance(t *testing.T) {
	_, err := Pack(context.Background(), model.BoardSize{Length: 50, Width: 50}, []model.PieceInstance{inst("x", 0, 60, 10, false)})
	var tooLarge *model.PieceTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, "x", tooLarge.PieceID)
}

func TestPack_DoesNotReorderInput(t *testing.T) {
	instances := []model.PieceInstance{inst("a", 0, 10, 10, false), inst("b", 1, 50, 50, false)}
	_, err := Pack(context.Background(), model.DefaultBoardSize(), instances)
	require.NoError(t, err)
	assert.Equal(t, "a", instances[0].PieceID)
}
