package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoardCut/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	err := ExportLabels(path, buildTestProject())
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoLayout(t *testing.T) {
	proj := model.NewProject()
	if err := ExportLabels(filepath.Join(t.TempDir(), "empty.pdf"), proj); err == nil {
		t.Fatal("expected error for project without layout, got nil")
	}
}

func TestExportLabels_SpansPages(t *testing.T) {
	proj := buildTestProject()
	layout := *proj.Layout
	layout.Placements = nil
	for i := 0; i < labelsPerPage+5; i++ {
		layout.Placements = append(layout.Placements, model.Placement{
			PieceID: "shelf", Ordinal: i, Length: 8, Width: 3, X: float64(i%30) * 8, Y: float64(i/30) * 3,
		})
	}
	layout.BoardsNeeded = 1
	proj.Layout = &layout

	if err := ExportLabels(filepath.Join(t.TempDir(), "pages.pdf"), proj); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	proj := buildTestProject()
	labels := CollectLabelInfos(*proj.Layout, proj.Pieces)

	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(labels))
	}

	if labels[0].PieceID != "back" || labels[0].BoardIndex != 1 {
		t.Errorf("expected back on board 1 first, got %q on board %d", labels[0].PieceID, labels[0].BoardIndex)
	}
	if labels[1].PieceID != "side" || labels[1].Unit != 1 || labels[1].Quantity != 2 {
		t.Errorf("unexpected second label: %+v", labels[1])
	}
	if labels[1].Length != 100 || labels[1].Width != 50 {
		t.Errorf("labels should carry the authored size, got %.1fx%.1f", labels[1].Length, labels[1].Width)
	}
	if labels[2].Unit != 2 {
		t.Errorf("expected unit 2, got %d", labels[2].Unit)
	}
	if !labels[3].Rotated || labels[3].Grain != "transverse" {
		t.Errorf("expected rotated transverse shelf, got %+v", labels[3])
	}
}

func TestLabelInfo_JSONKeys(t *testing.T) {
	data, err := json.Marshal(LabelInfo{PieceID: "side", Unit: 2, BoardIndex: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"piece_id", "unit", "board", "x_cm", "y_cm", "rotated"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}
