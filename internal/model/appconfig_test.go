package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultBoard != DefaultBoardSize() {
		t.Errorf("expected default board 244x122, got %vx%v", cfg.DefaultBoard.Length, cfg.DefaultBoard.Width)
	}
	if cfg.DefaultMarginValue != 0.5 {
		t.Errorf("expected margin 0.5, got %f", cfg.DefaultMarginValue)
	}
	if cfg.DefaultRotationPolicy != RotationFree {
		t.Errorf("expected free rotation, got %s", cfg.DefaultRotationPolicy)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
	if cfg.FindPreset("Standard 244x122") == nil {
		t.Error("expected standard preset")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultRotationPolicy = RotationGrainLocked

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.RotationPolicy != RotationGrainLocked {
		t.Errorf("expected grain-locked, got %s", s.RotationPolicy)
	}
}

func TestApplyToSettings_EmptyPolicyKeepsCurrent(t *testing.T) {
	cfg := AppConfig{}
	s := LayoutSettings{RotationPolicy: RotationGrainLocked}
	cfg.ApplyToSettings(&s)

	if s.RotationPolicy != RotationGrainLocked {
		t.Errorf("expected policy to stay grain-locked, got %s", s.RotationPolicy)
	}
}

func TestRememberCustomer(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.RememberCustomer(Customer{Name: "Ahmad", Phone: "0791234567"})
	cfg.RememberCustomer(Customer{Name: "Ahmad Saleh"})

	if cfg.SavedCustomer.Name != "Ahmad Saleh" {
		t.Errorf("expected updated name, got %q", cfg.SavedCustomer.Name)
	}
	if cfg.SavedCustomer.Phone != "0791234567" {
		t.Errorf("blank phone should keep saved value, got %q", cfg.SavedCustomer.Phone)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("b.json", 2)
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("c.json", 2)

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 recent projects, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "c.json" || cfg.RecentProjects[1] != "a.json" {
		t.Errorf("unexpected order: %v", cfg.RecentProjects)
	}
}
