package engine

import (
	"context"
	"math"
	"sort"

	"github.com/piwi3910/BoardCut/internal/model"
)

// epsilon absorbs floating point error in fit comparisons.
const epsilon = 1e-9

// yieldEvery is how many instances are placed between cancellation checks.
const yieldEvery = 1024

// orientation is one candidate footprint for an instance.
type orientation struct {
	fx, fy  float64 // footprint along x and y
	rotated bool
}

func orientations(inst model.PieceInstance) []orientation {
	opts := []orientation{{fx: inst.EffectiveLength, fy: inst.EffectiveWidth}}
	if inst.RotationAllowed {
		opts = append(opts, orientation{fx: inst.EffectiveWidth, fy: inst.EffectiveLength, rotated: true})
	}
	return opts
}

// shelfCursor tracks the active board. Boards are filled in the order they
// are opened and a closed board is never revisited.
type shelfCursor struct {
	board  int     // index of the active board, -1 before the first
	shelfY float64 // top edge of the current shelf
	shelfH float64 // height of the current shelf, 0 when none is open
	x      float64 // next free x position on the current shelf
	nextY  float64 // where the next shelf starts
}

// Pack assigns every instance a board and position with a greedy shelf
// heuristic. Instances are placed largest first; the output lists
// placements in the order they were made.
func Pack(ctx context.Context, board model.BoardSize, instances []model.PieceInstance) ([]model.Placement, error) {
	order := sortInstances(instances)
	placements := make([]model.Placement, 0, len(order))
	cur := &shelfCursor{board: -1}

	for i, inst := range order {
		if i%yieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		p, ok := cur.place(board, inst)
		if !ok {
			return nil, &model.PieceTooLargeError{
				PieceID:         inst.PieceID,
				EffectiveLength: inst.EffectiveLength,
				EffectiveWidth:  inst.EffectiveWidth,
				Board:           board,
			}
		}
		placements = append(placements, p)
	}
	return placements, nil
}

// sortInstances orders by effective area, then effective length, both
// descending, then by expansion sequence. The input is left untouched.
func sortInstances(instances []model.PieceInstance) []model.PieceInstance {
	sorted := make([]model.PieceInstance, len(instances))
	copy(sorted, instances)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Area() != b.Area() {
			return a.Area() > b.Area()
		}
		if a.EffectiveLength != b.EffectiveLength {
			return a.EffectiveLength > b.EffectiveLength
		}
		return a.Sequence < b.Sequence
	})
	return sorted
}

// place tries the current shelf, then a new shelf on the active board, then
// a fresh board.
func (c *shelfCursor) place(b model.BoardSize, inst model.PieceInstance) (model.Placement, bool) {
	opts := orientations(inst)

	if c.board >= 0 && c.shelfH > 0 {
		if o, ok := pick(opts, c.shelfWaste(b)); ok {
			return c.put(inst, o), true
		}
	}

	if c.board >= 0 {
		if o, ok := pick(opts, newShelfWaste(b, c.nextY)); ok {
			c.openShelf(o.fy)
			return c.put(inst, o), true
		}
	}

	if o, ok := pick(opts, newShelfWaste(b, 0)); ok {
		c.board++
		c.nextY = 0
		c.openShelf(o.fy)
		return c.put(inst, o), true
	}
	return model.Placement{}, false
}

// wasteFunc reports the shelf height an orientation would leave unused, or
// false if it does not fit.
type wasteFunc func(o orientation) (float64, bool)

// shelfWaste evaluates an orientation against the open shelf.
func (c *shelfCursor) shelfWaste(b model.BoardSize) wasteFunc {
	return func(o orientation) (float64, bool) {
		if c.x+o.fx > b.Length+epsilon || o.fy > c.shelfH+epsilon {
			return 0, false
		}
		return c.shelfH - o.fy, true
	}
}

// newShelfWaste evaluates an orientation as the first piece of a shelf
// starting at y. The waste is the height left over once the remaining board
// is stacked with shelves of that height.
func newShelfWaste(b model.BoardSize, y float64) wasteFunc {
	return func(o orientation) (float64, bool) {
		if o.fx > b.Length+epsilon || y+o.fy > b.Width+epsilon {
			return 0, false
		}
		remaining := b.Width - y
		if remaining < o.fy {
			return 0, true
		}
		return math.Mod(remaining, o.fy), true
	}
}

// pick returns the fitting orientation with the least waste. Ties keep the
// earlier candidate, which is always the un-rotated one.
func pick(opts []orientation, waste wasteFunc) (orientation, bool) {
	var best orientation
	bestWaste := math.Inf(1)
	found := false
	for _, o := range opts {
		w, ok := waste(o)
		if !ok {
			continue
		}
		if !found || w < bestWaste-epsilon {
			best, bestWaste, found = o, w, true
		}
	}
	return best, found
}

func (c *shelfCursor) openShelf(h float64) {
	c.shelfY = c.nextY
	c.shelfH = h
	c.x = 0
	c.nextY = c.shelfY + h
}

func (c *shelfCursor) put(inst model.PieceInstance, o orientation) model.Placement {
	p := model.Placement{
		PieceID:    inst.PieceID,
		Ordinal:    inst.Ordinal,
		BoardIndex: c.board,
		X:          c.x,
		Y:          c.shelfY,
		Rotated:    o.rotated,
		Length:     o.fx,
		Width:      o.fy,
	}
	c.x += o.fx
	return p
}
