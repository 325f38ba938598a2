package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoardCut/internal/model"
)

// partColor represents an RGB color for a placed piece.
type partColor struct {
	R, G, B int
}

// partColors is the 8-color cycle pieces are drawn with.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	grainSpacing = 2.5 // mm between grain lines on the page
)

// ExportPDF writes one diagram page per board followed by a summary page.
func ExportPDF(path string, proj model.Project) error {
	layout, err := requireLayout(proj)
	if err != nil {
		return err
	}
	idx := indexPieces(proj.Pieces)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i := 0; i < layout.BoardsNeeded; i++ {
		pdf.AddPage()
		renderBoardPage(pdf, layout, idx, i)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, proj, layout)

	return pdf.OutputFileAndClose(path)
}

// renderBoardPage draws a single board on the current PDF page.
func renderBoardPage(pdf *fpdf.Fpdf, layout model.CutLayout, idx pieceIndex, board int) {
	b := layout.Board
	placements := layout.BoardPlacements(board)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Board %d of %d (%.0f x %.0f cm)", board+1, layout.BoardsNeeded, b.Length, b.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Used area: %.0f cm² | Board area: %.0f cm² | Efficiency: %.1f%%",
		len(placements), layout.UsedArea(board), b.Area(), layout.Efficiency(board))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, pdf.UnicodeTranslatorFromDescriptor("")(stats), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/b.Length, drawHeight/b.Width)

	canvasW := b.Length * scale
	canvasH := b.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Board background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range placements {
		piece, _ := idx.lookup(p.PieceID)
		col := idx.colorFor(p.PieceID)
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale
		pw := p.Length * scale
		ph := p.Width * scale

		// Footprint, shaded where the trim margins will be cut away
		pdf.SetFillColor(lighten(col.R), lighten(col.G), lighten(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		cut := cutRect(p, piece.EdgeMargins)
		cx := offsetX + cut.X*scale
		cy := offsetY + cut.Y*scale
		cw := cut.W * scale
		ch := cut.H * scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.1)
		pdf.Rect(cx, cy, cw, ch, "F")

		drawGrain(pdf, model.RenderedGrain(piece.Grain, p.Rotated), cx, cy, cw, ch)

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.PieceID
			dims := fmt.Sprintf("%.0fx%.0f", piece.Length, piece.Width)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, b, offsetX, offsetY, canvasW, canvasH)
	drawPiecesLegend(pdf, placements, idx, offsetY+canvasH+5)
}

// lighten blends a channel halfway towards white for margin shading.
func lighten(c int) int {
	return c + (255-c)/2
}

// drawGrain hatches a rectangle with lines along the board axis the grain
// runs on.
func drawGrain(pdf *fpdf.Fpdf, grain model.GrainDirection, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	pdf.SetDrawColor(60, 40, 20)
	pdf.SetLineWidth(0.1)
	if grain == model.GrainLongitudinal {
		for ly := y + grainSpacing; ly < y+h; ly += grainSpacing {
			pdf.Line(x, ly, x+w, ly)
		}
		return
	}
	for lx := x + grainSpacing; lx < x+w; lx += grainSpacing {
		pdf.Line(lx, y, lx, y+h)
	}
}

// drawDimensionAnnotations adds length and width labels outside the board rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, b model.BoardSize, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f cm", b.Length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f cm", b.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPiecesLegend lists each piece on the board once with its unit count.
func drawPiecesLegend(pdf *fpdf.Fpdf, placements []model.Placement, idx pieceIndex, startY float64) {
	if len(placements) == 0 {
		return
	}

	var ids []string
	counts := make(map[string]int)
	rotated := make(map[string]bool)
	for _, p := range placements {
		if counts[p.PieceID] == 0 {
			ids = append(ids, p.PieceID)
		}
		counts[p.PieceID]++
		if p.Rotated {
			rotated[p.PieceID] = true
		}
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, id := range ids {
		piece, _ := idx.lookup(id)
		col := idx.colorFor(id)
		label := fmt.Sprintf("%s (%.0fx%.0f) x%d", id, piece.Length, piece.Width, counts[id])
		if rotated[id] {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, proj model.Project, layout model.CutLayout) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	offcuts := model.DetectAllOffcuts(layout)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Boards Needed", fmt.Sprintf("%d", layout.BoardsNeeded)},
		{"Board Size", fmt.Sprintf("%.0f x %.0f cm", layout.Board.Length, layout.Board.Width)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", layout.TotalEfficiency())},
		{"Total Pieces Placed", fmt.Sprintf("%d", len(layout.Placements))},
		{"Trim Waste", fmt.Sprintf("%.2f m", layout.WasteMeters())},
		{"Reusable Offcuts", fmt.Sprintf("%d (%.0f cm²)", len(offcuts), model.TotalOffcutArea(offcuts))},
		{"Rotation Policy", string(proj.Settings.RotationPolicy)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Board Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 40, 40, 60, 50}
	headers := []string{"Board", "Pieces", "Efficiency", "Used / Board Area", "Offcuts"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i := 0; i < layout.BoardsNeeded; i++ {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(layout.BoardPlacements(i))),
			fmt.Sprintf("%.1f%%", layout.Efficiency(i)),
			fmt.Sprintf("%.0f / %.0f cm²", layout.UsedArea(i), layout.Board.Area()),
			fmt.Sprintf("%d", len(model.DetectOffcuts(layout, i))),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(offcuts) > 0 && y < pageHeight-marginBottom-20 {
		y += 8
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Offcuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, o := range offcuts {
			if y > pageHeight-marginBottom-5 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f cm at (%.0f, %.0f)", o.ID, o.Length, o.Width, o.X, o.Y)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoardCut - Wood Cutting Plan", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
