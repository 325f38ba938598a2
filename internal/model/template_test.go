package model

import (
	"testing"
)

func TestNewProjectTemplate(t *testing.T) {
	pieces := []WoodPiece{
		NewPiece("Side", 60, 40, 2),
		NewPiece("Top", 50, 30, 1),
	}
	settings := DefaultSettings()

	tmpl := NewProjectTemplate("Cabinet", "Standard cabinet", DefaultBoardSize(), pieces, settings)

	if tmpl.Name != "Cabinet" {
		t.Errorf("expected name 'Cabinet', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" || tmpl.UpdatedAt == "" {
		t.Error("expected timestamps")
	}
	if len(tmpl.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(tmpl.Pieces))
	}

	// Modifying the source must not affect the template.
	pieces[0].Length = 999
	if tmpl.Pieces[0].Length == 999 {
		t.Error("template pieces should be a copy")
	}
}

func TestNewProjectTemplate_NilPieces(t *testing.T) {
	tmpl := NewProjectTemplate("Empty", "", DefaultBoardSize(), nil, DefaultSettings())
	if tmpl.Pieces == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestProjectTemplate_ToProject(t *testing.T) {
	piece := NewPiece("Door", 70, 40, 2)
	piece.EdgeMargins = EdgeMargins{Top: 0.5}
	piece.Grain = GrainTransverse
	tmpl := NewProjectTemplate("Wardrobe", "", BoardSize{Length: 200, Width: 100}, []WoodPiece{piece}, DefaultSettings())

	proj := tmpl.ToProject("Customer job")

	if proj.Name != "Customer job" {
		t.Errorf("expected project name, got %q", proj.Name)
	}
	if proj.Board.Length != 200 {
		t.Errorf("expected board from template, got %v", proj.Board)
	}
	if len(proj.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(proj.Pieces))
	}
	got := proj.Pieces[0]
	if got.ID == piece.ID {
		t.Error("expected a fresh piece ID")
	}
	if got.EdgeMargins != piece.EdgeMargins || got.Grain != GrainTransverse || got.Category != "Door" {
		t.Errorf("piece attributes not carried over: %+v", got)
	}
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	store.Add(NewProjectTemplate("A", "", DefaultBoardSize(), nil, DefaultSettings()))
	store.Add(NewProjectTemplate("B", "", DefaultBoardSize(), nil, DefaultSettings()))

	first := store.FindByName("A")
	if first == nil {
		t.Fatal("expected to find template A")
	}
	id := first.ID

	// Re-adding under the same name replaces but keeps the ID.
	store.Add(NewProjectTemplate("A", "updated", DefaultBoardSize(), nil, DefaultSettings()))
	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}
	if store.FindByName("A").ID != id || store.FindByName("A").Description != "updated" {
		t.Error("expected replacement to keep ID and take new description")
	}

	names := store.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected names %v", names)
	}

	if !store.Remove("A") {
		t.Error("expected Remove to succeed")
	}
	if store.Remove("A") {
		t.Error("expected second Remove to fail")
	}
	if store.FindByName("missing") != nil {
		t.Error("expected nil for unknown template")
	}
}
