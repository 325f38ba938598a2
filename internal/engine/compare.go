package engine

import (
	"context"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds the layout and derived statistics for a single
// scenario. Err is set when the scenario could not be laid out, for example
// when a piece only fits rotated and the scenario locks rotation.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Layout       model.CutLayout
	BoardsUsed   int
	RotatedCount int
	Efficiency   float64
	Err          error
}

// CompareScenarios computes a layout for each scenario and returns the results
// in scenario order. A failing scenario does not stop the others.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, board model.BoardSize, pieces []model.WoodPiece, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		eng := New(scenario.Settings, opts...)
		layout, err := eng.ComputeLayout(ctx, board, pieces)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		rotated := 0
		for _, p := range layout.Placements {
			if p.Rotated {
				rotated++
			}
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Layout:       layout,
			BoardsUsed:   layout.BoardsNeeded,
			RotatedCount: rotated,
			Efficiency:   layout.TotalEfficiency(),
		})
	}

	return results
}

// BuildDefaultScenarios returns the current settings followed by the other
// rotation policy, so the cost of respecting grain can be seen side by side.
func BuildDefaultScenarios(base model.LayoutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	alt := base
	if base.RotationPolicy == model.RotationGrainLocked {
		alt.RotationPolicy = model.RotationFree
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Free Rotation",
			Settings: alt,
		})
	} else {
		alt.RotationPolicy = model.RotationGrainLocked
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Grain Locked",
			Settings: alt,
		})
	}

	return scenarios
}
