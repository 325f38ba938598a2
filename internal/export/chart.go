package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/BoardCut/internal/model"
)

// EfficiencyChart builds a bar chart of material usage per board.
func EfficiencyChart(layout model.CutLayout) *charts.Bar {
	boards := make([]string, 0, layout.BoardsNeeded)
	usage := make([]opts.BarData, 0, layout.BoardsNeeded)
	for i := 0; i < layout.BoardsNeeded; i++ {
		boards = append(boards, fmt.Sprintf("Board %d", i+1))
		usage = append(usage, opts.BarData{Value: round1(layout.Efficiency(i))})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "BoardCut"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Board utilization",
			Subtitle: fmt.Sprintf("%d boards, %.1f%% overall", layout.BoardsNeeded, layout.TotalEfficiency()),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	bar.SetXAxis(boards).AddSeries("Efficiency", usage)
	return bar
}

// RenderChart writes the chart page as HTML.
func RenderChart(w io.Writer, layout model.CutLayout) error {
	return EfficiencyChart(layout).Render(w)
}

// ExportChart writes the utilization chart to an HTML file.
func ExportChart(path string, proj model.Project) error {
	layout, err := requireLayout(proj)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := RenderChart(f, layout); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
