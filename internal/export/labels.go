package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoardCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	PieceID    string  `json:"piece_id"`
	Unit       int     `json:"unit"` // 1-based unit number within the piece
	Quantity   int     `json:"quantity"`
	Length     float64 `json:"length_cm"`
	Width      float64 `json:"width_cm"`
	Grain      string  `json:"grain"`
	BoardIndex int     `json:"board"` // 1-based
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_cm"`
	Y          float64 `json:"y_cm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per placed unit, in
// board order, so labels can be stuck on pieces as they come off the saw.
func ExportLabels(path string, proj model.Project) error {
	if _, err := requireLayout(proj); err != nil {
		return err
	}

	labels := CollectLabelInfos(*proj.Layout, proj.Pieces)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PieceID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PieceID, info.Unit)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("%s  %d/%d", info.PieceID, info.Unit, info.Quantity)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.1f x %.1f cm, grain %s", info.Length, info.Width, info.Grain)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	boardInfo := fmt.Sprintf("Board %d @ (%.0f, %.0f)", info.BoardIndex, info.X, info.Y)
	pdf.CellFormat(textW, 3, boardInfo, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos builds one label per placement, ordered by board.
func CollectLabelInfos(layout model.CutLayout, pieces []model.WoodPiece) []LabelInfo {
	idx := indexPieces(pieces)
	var labels []LabelInfo
	for b := 0; b < layout.BoardsNeeded; b++ {
		for _, p := range layout.BoardPlacements(b) {
			piece, _ := idx.lookup(p.PieceID)
			labels = append(labels, LabelInfo{
				PieceID:    p.PieceID,
				Unit:       p.Ordinal + 1,
				Quantity:   piece.Quantity,
				Length:     piece.Length,
				Width:      piece.Width,
				Grain:      piece.Grain.String(),
				BoardIndex: b + 1,
				Rotated:    p.Rotated,
				X:          p.X,
				Y:          p.Y,
			})
		}
	}
	return labels
}
