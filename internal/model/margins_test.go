package model

import (
	"math"
	"testing"
)

func TestEdgeMargins_Label(t *testing.T) {
	tests := []struct {
		name    string
		margins EdgeMargins
		want    string
	}{
		{"None", EdgeMargins{}, "بدون تحريف"},
		{"TopOnly", EdgeMargins{Top: 0.5}, "أعلى"},
		{"AllEdges", EdgeMargins{Top: 1, Right: 1, Bottom: 1, Left: 1}, "أعلى + يمين + أسفل + يسار"},
		{"RightLeft", EdgeMargins{Right: 0.5, Left: 0.5}, "يمين + يسار"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.margins.Label(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEdgeMargins_String(t *testing.T) {
	m := EdgeMargins{Top: 1, Left: 2}
	if m.String() != "T+L" {
		t.Errorf("expected T+L, got %s", m.String())
	}
	if (EdgeMargins{}).String() != "None" {
		t.Errorf("expected None for empty margins")
	}
}

func TestUniformMargins(t *testing.T) {
	m := UniformMargins(DefaultMarginValue, EdgeTop, EdgeLeft)
	if m.Top != 0.5 || m.Left != 0.5 || m.Right != 0 || m.Bottom != 0 {
		t.Errorf("unexpected margins: %+v", m)
	}
	if m.Total() != 1.0 {
		t.Errorf("expected total 1.0, got %f", m.Total())
	}
}

func TestEdgeMargins_LinearWaste(t *testing.T) {
	m := EdgeMargins{Top: 1, Bottom: 1, Left: 0.5}
	// (1+1)*50 + 0.5*40
	got := m.LinearWaste(50, 40)
	if math.Abs(got-120) > 1e-9 {
		t.Errorf("expected 120, got %f", got)
	}
}

func TestEdgeMargins_Valid(t *testing.T) {
	if !(EdgeMargins{Top: 0.5}).Valid() {
		t.Error("expected non-negative margins to be valid")
	}
	if (EdgeMargins{Left: -1}).Valid() {
		t.Error("expected negative margin to be invalid")
	}
	if (EdgeMargins{Right: math.NaN()}).Valid() {
		t.Error("expected NaN margin to be invalid")
	}
}

func TestCalculateTrimSummary(t *testing.T) {
	pieces := []WoodPiece{
		{ID: "a", Length: 50, Width: 40, Quantity: 10, EdgeMargins: EdgeMargins{Top: 1}},
		{ID: "b", Length: 100, Width: 50, Quantity: 3},
	}
	s := CalculateTrimSummary(pieces)

	// 10 units x (1 x effective length 50)
	if math.Abs(s.TotalWaste-500) > 1e-9 {
		t.Errorf("expected 500, got %f", s.TotalWaste)
	}
	if math.Abs(s.TotalWasteM-5) > 1e-9 {
		t.Errorf("expected 5 m, got %f", s.TotalWasteM)
	}
	if s.PieceCount != 10 || s.EdgeCount != 10 {
		t.Errorf("expected 10 pieces and 10 edges, got %d/%d", s.PieceCount, s.EdgeCount)
	}
}

func TestCalculatePerPieceTrim(t *testing.T) {
	pieces := []WoodPiece{
		{ID: "a", Category: "Shelf", Length: 50, Width: 40, Quantity: 2, EdgeMargins: EdgeMargins{Top: 1, Right: 1}},
		{ID: "b", Length: 100, Width: 50, Quantity: 3},
	}
	rows := CalculatePerPieceTrim(pieces)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	// effective 51 x 41: 1*51 + 1*41
	if math.Abs(r.WastePerUnit-92) > 1e-9 {
		t.Errorf("expected 92 per unit, got %f", r.WastePerUnit)
	}
	if math.Abs(r.TotalWaste-184) > 1e-9 {
		t.Errorf("expected 184 total, got %f", r.TotalWaste)
	}
	if r.Edges != "T+R" {
		t.Errorf("expected T+R, got %s", r.Edges)
	}
}
