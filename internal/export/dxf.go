package export

import (
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerBoard  = "BOARD"
	LayerPieces = "PIECES"
	LayerLabels = "LABELS"
)

// Board outlines are laid out side by side along x with this gap (cm).
const dxfBoardGap = 20.0

const dxfTextHeight = 2.5

// ExportDXF writes the layout as 2D geometry in cm: each board outline on
// BOARD, the finished cut rectangle of every unit on PIECES and its ID on
// LABELS. Boards are spaced along the x axis in board order.
func ExportDXF(path string, proj model.Project) error {
	layout, err := requireLayout(proj)
	if err != nil {
		return err
	}

	d, err := buildDXF(layout, indexPieces(proj.Pieces))
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func buildDXF(layout model.CutLayout, idx pieceIndex) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerBoard, color.ColorNumber(7)},
		{LayerPieces, color.ColorNumber(3)},
		{LayerLabels, color.ColorNumber(1)},
	} {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	b := layout.Board
	for i := 0; i < layout.BoardsNeeded; i++ {
		ox := float64(i) * (b.Length + dxfBoardGap)

		if err := d.ChangeLayer(LayerBoard); err != nil {
			return nil, err
		}
		if err := dxfRect(d, ox, 0, b.Length, b.Width, b.Width); err != nil {
			return nil, err
		}

		for _, p := range layout.BoardPlacements(i) {
			piece, _ := idx.lookup(p.PieceID)
			cut := cutRect(p, piece.EdgeMargins)

			if err := d.ChangeLayer(LayerPieces); err != nil {
				return nil, err
			}
			if err := dxfRect(d, ox+cut.X, cut.Y, cut.W, cut.H, b.Width); err != nil {
				return nil, err
			}

			if err := d.ChangeLayer(LayerLabels); err != nil {
				return nil, err
			}
			label := fmt.Sprintf("%s-%d", p.PieceID, p.Ordinal+1)
			tx := ox + cut.X + 1
			ty := b.Width - (cut.Y + cut.H/2)
			if _, err := d.Text(label, tx, ty, 0, dxfTextHeight); err != nil {
				return nil, fmt.Errorf("failed to add label: %w", err)
			}
		}
	}
	return d, nil
}

// dxfRect draws a rectangle given in top-left board coordinates. DXF y grows
// upwards, so y is flipped against the board width.
func dxfRect(d *drawing.Drawing, x, y, w, h, boardWidth float64) error {
	top := boardWidth - y
	bottom := top - h
	corners := [][2]float64{{x, top}, {x + w, top}, {x + w, bottom}, {x, bottom}}
	for i := range corners {
		a := corners[i]
		c := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, c[0], c[1], 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}
	return nil
}
