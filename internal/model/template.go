package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a saved piece list with its board size, reusable across
// customers. Layout results are never stored in a template.
type ProjectTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Board       BoardSize      `json:"board"`
	Pieces      []WoodPiece    `json:"pieces"`
	Settings    LayoutSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
func NewProjectTemplate(name, description string, board BoardSize, pieces []WoodPiece, settings LayoutSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Board:       board,
		Pieces:      copyPieces(pieces),
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
// Pieces get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	pieces := make([]WoodPiece, len(t.Pieces))
	for i, p := range t.Pieces {
		pieces[i] = NewPiece(p.Category, p.Length, p.Width, p.Quantity)
		pieces[i].EdgeMargins = p.EdgeMargins
		pieces[i].Grain = p.Grain
	}

	return Project{
		Name:     projectName,
		Board:    t.Board,
		Pieces:   pieces,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store, replacing one with the same name.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	for i := range ts.Templates {
		if ts.Templates[i].Name == t.Name {
			t.ID = ts.Templates[i].ID
			t.CreatedAt = ts.Templates[i].CreatedAt
			ts.Templates[i] = t
			return
		}
	}
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by name. Returns true if found and removed.
func (ts *TemplateStore) Remove(name string) bool {
	for i, t := range ts.Templates {
		if t.Name == name {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the template names in storage order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyPieces(pieces []WoodPiece) []WoodPiece {
	if pieces == nil {
		return []WoodPiece{}
	}
	cp := make([]WoodPiece, len(pieces))
	copy(cp, pieces)
	return cp
}
