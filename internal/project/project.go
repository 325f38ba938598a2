package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/BoardCut/internal/model"
)

// SaveProject writes a project, including its computed layout, as JSON.
func SaveProject(path string, proj model.Project) error {
	return writeJSON(path, proj)
}

// LoadProject reads a project file written by SaveProject.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	proj := model.NewProject()
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if proj.Pieces == nil {
		proj.Pieces = []model.WoodPiece{}
	}
	return proj, nil
}
