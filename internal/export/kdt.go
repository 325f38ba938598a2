package export

import (
	"bytes"
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// KDTSheet is the name of the cut-list worksheet.
const KDTSheet = "KDT"

// XLSXContentType is the MIME type of a KDT workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Cut list labels.
const (
	kdtTitle        = "قائمة القطع - KDT"
	kdtProjectLabel = "اسم المشروع:"
	kdtCustomer     = "اسم الزبون:"
	kdtPhone        = "رقم الهاتف:"
	kdtSummary      = "ملخص المشروع"
	kdtBoardLength  = "قياس اللوح الأساسي - الطول"
	kdtBoardWidth   = "قياس اللوح الأساسي - العرض"
	kdtBoardsNeeded = "عدد الألواح المطلوبة"
	kdtTotalPieces  = "إجمالي القطع"
	kdtWasteMeters  = "هدر التحريف (متر)"
)

var kdtHeaders = []interface{}{
	"التصنيف", "الطول (سم)", "العرض (سم)", "العدد", "اتجاه العرق", "اتجاه التحريف", "هامش التحريف (سم)",
}

var kdtColumnWidths = []float64{20, 15, 15, 10, 15, 25, 20}

// BuildKDT lays the project's piece list and layout summary out as the KDT
// cut-list workbook. The caller must close the returned file.
func BuildKDT(proj model.Project) (*excelize.File, error) {
	if proj.Layout == nil {
		return nil, ErrNoLayout
	}
	layout := *proj.Layout

	var rows [][]interface{}
	rows = append(rows, []interface{}{kdtTitle})
	if proj.Name != "" {
		rows = append(rows, []interface{}{kdtProjectLabel, proj.Name})
	}
	if proj.Customer.Name != "" {
		rows = append(rows, []interface{}{kdtCustomer, proj.Customer.Name})
	}
	if proj.Customer.Phone != "" {
		rows = append(rows, []interface{}{kdtPhone, proj.Customer.Phone})
	}
	rows = append(rows, []interface{}{""})
	headerRow := len(rows) + 1
	rows = append(rows, kdtHeaders)

	for _, p := range proj.Pieces {
		rows = append(rows, []interface{}{
			p.Category,
			p.Length,
			p.Width,
			p.Quantity,
			p.Grain.Arabic(),
			p.EdgeMargins.Label(),
			p.EdgeMargins.Total(),
		})
	}

	rows = append(rows, nil)
	summaryRow := len(rows) + 1
	rows = append(rows,
		[]interface{}{kdtSummary},
		[]interface{}{kdtBoardLength, layout.Board.Length},
		[]interface{}{kdtBoardWidth, layout.Board.Width},
		[]interface{}{kdtBoardsNeeded, layout.BoardsNeeded},
		[]interface{}{kdtTotalPieces, model.TotalQuantity(proj.Pieces)},
		[]interface{}{kdtWasteMeters, fmt.Sprintf("%.2f", layout.WasteMeters())},
	)

	f := excelize.NewFile()
	if err := fillKDT(f, rows, headerRow, summaryRow); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillKDT(f *excelize.File, rows [][]interface{}, headerRow, summaryRow int) error {
	if err := f.SetSheetName(f.GetSheetName(0), KDTSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(KDTSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for i, w := range kdtColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(KDTSheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(KDTSheet, "A1", "A1", title); err != nil {
		return err
	}
	headerEnd, _ := excelize.CoordinatesToCellName(len(kdtHeaders), headerRow)
	if err := f.SetCellStyle(KDTSheet, fmt.Sprintf("A%d", headerRow), headerEnd, bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(KDTSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("A%d", summaryRow), bold); err != nil {
		return err
	}

	rtl := true
	return f.SetSheetView(KDTSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl})
}

// KDTBytes renders the workbook into memory, for upload or HTTP responses.
func KDTBytes(proj model.Project) ([]byte, error) {
	f, err := BuildKDT(proj)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteKDT saves the workbook to path.
func WriteKDT(path string, proj model.Project) error {
	f, err := BuildKDT(proj)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
