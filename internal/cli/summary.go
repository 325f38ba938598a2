package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
)

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	bad     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99")),
		label:   r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#FF5555")),
	}
}

func (s styles) row(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "  %s %s\n", s.label.Render(fmt.Sprintf("%-14s", key)), value)
}

// renderSummary prints the layout totals, per-board usage and offcuts.
func renderSummary(r *lipgloss.Renderer, proj model.Project) string {
	s := newStyles(r)
	layout := *proj.Layout

	var b strings.Builder
	b.WriteString(s.heading.Render("BOARDCUT "+proj.Name) + "\n")
	if proj.Customer.Name != "" {
		cust := proj.Customer.Name
		if proj.Customer.Phone != "" {
			cust += " (" + proj.Customer.Phone + ")"
		}
		s.row(&b, "Customer", cust)
	}
	s.row(&b, "Board", fmt.Sprintf("%g x %g cm", layout.Board.Length, layout.Board.Width))
	s.row(&b, "Policy", string(proj.Settings.RotationPolicy))
	s.row(&b, "Boards needed", strconv.Itoa(layout.BoardsNeeded))
	s.row(&b, "Units placed", strconv.Itoa(len(layout.Placements)))
	s.row(&b, "Trim waste", fmt.Sprintf("%.2f m", layout.WasteMeters()))
	s.row(&b, "Efficiency", fmt.Sprintf("%.1f%%", layout.TotalEfficiency()))

	b.WriteString("\n" + s.heading.Render("BOARDS") + "\n")
	for i := 0; i < layout.BoardsNeeded; i++ {
		fmt.Fprintf(&b, "  #%-3d %3d units  %5.1f%%\n", i+1, len(layout.BoardPlacements(i)), layout.Efficiency(i))
	}

	if offcuts := model.DetectAllOffcuts(layout); len(offcuts) > 0 {
		b.WriteString("\n" + s.heading.Render("OFFCUTS") + "\n")
		for _, o := range offcuts {
			fmt.Fprintf(&b, "  %-6s %g x %g cm\n", o.ID, o.Length, o.Width)
		}
	}
	return b.String()
}

func renderEstimate(r *lipgloss.Renderer, est model.PurchaseEstimate) string {
	s := newStyles(r)
	var b strings.Builder
	b.WriteString(s.heading.Render("PURCHASE ESTIMATE") + "\n")
	s.row(&b, "Piece area", fmt.Sprintf("%.2f m²", est.TotalPieceAreaM2))
	s.row(&b, "Exact boards", fmt.Sprintf("%.2f", est.BoardsNeededExact))
	s.row(&b, "Minimum", strconv.Itoa(est.BoardsNeededMin))
	s.row(&b, "With waste", fmt.Sprintf("%d (+%g%%)", est.BoardsWithWaste, est.WastePercent))
	s.row(&b, "Shelf layout", strconv.Itoa(est.BoardsInLayout))
	s.row(&b, "Trim waste", fmt.Sprintf("%.2f m", est.TrimWaste/100))
	if est.PricePerBoard > 0 {
		s.row(&b, "Cost", fmt.Sprintf("%.2f", est.EstimatedCost))
	}
	return b.String()
}

func renderComparison(r *lipgloss.Renderer, results []engine.ComparisonResult) string {
	s := newStyles(r)
	var b strings.Builder
	b.WriteString(s.heading.Render("POLICY COMPARISON") + "\n")
	fmt.Fprintf(&b, "  %-18s %6s %8s %10s\n", "Scenario", "Boards", "Rotated", "Efficiency")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(&b, "  %-18s %s\n", res.Scenario.Name, s.bad.Render(res.Err.Error()))
			continue
		}
		fmt.Fprintf(&b, "  %-18s %6d %8d %9.1f%%\n", res.Scenario.Name, res.BoardsUsed, res.RotatedCount, res.Efficiency)
	}
	return b.String()
}
