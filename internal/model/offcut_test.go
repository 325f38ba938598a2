package model

import "testing"

func TestDetectOffcuts_RightAndBottomStrips(t *testing.T) {
	layout := CutLayout{
		Board:        DefaultBoardSize(),
		BoardsNeeded: 1,
		Placements: []Placement{
			{PieceID: "a", BoardIndex: 0, X: 0, Y: 0, Length: 100, Width: 50},
			{PieceID: "a", BoardIndex: 0, X: 100, Y: 0, Length: 100, Width: 50},
		},
	}

	offcuts := DetectOffcuts(layout, 0)
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(offcuts))
	}

	// Bottom strip 200 x 72 is larger than right strip 44 x 122.
	if offcuts[0].Y != 50 || offcuts[0].Length != 200 || offcuts[0].Width != 72 {
		t.Errorf("unexpected bottom strip: %+v", offcuts[0])
	}
	if offcuts[1].X != 200 || offcuts[1].Length != 44 || offcuts[1].Width != 122 {
		t.Errorf("unexpected right strip: %+v", offcuts[1])
	}
	if offcuts[0].ID != "B1-O1" || offcuts[1].ID != "B1-O2" {
		t.Errorf("unexpected IDs %s, %s", offcuts[0].ID, offcuts[1].ID)
	}
}

func TestDetectOffcuts_FullBoardUsed(t *testing.T) {
	layout := CutLayout{
		Board:        BoardSize{Length: 100, Width: 50},
		BoardsNeeded: 1,
		Placements: []Placement{
			{PieceID: "a", BoardIndex: 0, Length: 95, Width: 45},
		},
	}

	if offcuts := DetectOffcuts(layout, 0); len(offcuts) != 0 {
		t.Errorf("expected no usable offcuts, got %d", len(offcuts))
	}
}

func TestDetectOffcuts_EmptyBoard(t *testing.T) {
	layout := CutLayout{Board: BoardSize{Length: 100, Width: 50}}
	offcuts := DetectOffcuts(layout, 0)

	if len(offcuts) != 1 || offcuts[0].Area() != 5000 {
		t.Fatalf("expected whole board as offcut, got %+v", offcuts)
	}
	if offcuts[0].AsBoard() != layout.Board {
		t.Errorf("expected offcut board to equal the board")
	}
}

func TestDetectAllOffcuts(t *testing.T) {
	layout := CutLayout{
		Board:        BoardSize{Length: 100, Width: 50},
		BoardsNeeded: 2,
		Placements: []Placement{
			{PieceID: "a", BoardIndex: 0, Length: 50, Width: 50},
			{PieceID: "b", BoardIndex: 1, Length: 100, Width: 20},
		},
	}

	all := DetectAllOffcuts(layout)
	if len(all) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(all))
	}
	if all[0].BoardIndex != 0 || all[1].BoardIndex != 1 {
		t.Errorf("expected one offcut per board, got %+v", all)
	}
	if TotalOffcutArea(all) != 2500+3000 {
		t.Errorf("unexpected total offcut area %f", TotalOffcutArea(all))
	}
}
