package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoardCut/internal/model"
)

func TestExportImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultWastePercent = 15
	cfg.RememberCustomer(model.Customer{Name: "Lina", Phone: "0933000000"})

	templates := model.NewTemplateStore()
	templates.Add(model.NewProjectTemplate("Wardrobe", "", model.DefaultBoardSize(),
		[]model.WoodPiece{model.NewPiece("Doors", 200, 50, 2)}, model.DefaultSettings()))

	if err := ExportAllData(path, cfg, templates); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}
	if backup.Config.DefaultWastePercent != 15 {
		t.Errorf("expected waste percent 15, got %f", backup.Config.DefaultWastePercent)
	}
	if backup.Config.SavedCustomer.Name != "Lina" {
		t.Errorf("expected saved customer Lina, got %q", backup.Config.SavedCustomer.Name)
	}
	if tmpl := backup.Templates.FindByName("Wardrobe"); tmpl == nil || len(tmpl.Pieces) != 1 {
		t.Errorf("template not restored: %+v", backup.Templates)
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for backup without version")
	}
}

func TestImportAllDataNormalizesSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
	if backup.Templates.Templates == nil {
		t.Error("Templates should not be nil")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
