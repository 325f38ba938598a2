package model

import (
	"math"
	"strings"
)

// Edge names one side of a piece.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
)

// edgeLabels are the cut list names for each edge.
var edgeLabels = map[Edge]string{
	EdgeTop:    "أعلى",
	EdgeRight:  "يمين",
	EdgeBottom: "أسفل",
	EdgeLeft:   "يسار",
}

// NoTrimLabel is printed when no edge carries a trim margin.
const NoTrimLabel = "بدون تحريف"

// EdgeMargins holds the trim allowance per edge in cm. Zero means the edge
// is not trimmed.
type EdgeMargins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformMargins applies value to each of the listed edges.
func UniformMargins(value float64, edges ...Edge) EdgeMargins {
	var m EdgeMargins
	for _, e := range edges {
		switch e {
		case EdgeTop:
			m.Top = value
		case EdgeRight:
			m.Right = value
		case EdgeBottom:
			m.Bottom = value
		case EdgeLeft:
			m.Left = value
		}
	}
	return m
}

// HasAny returns true if at least one edge is trimmed.
func (m EdgeMargins) HasAny() bool {
	return m.Top > 0 || m.Right > 0 || m.Bottom > 0 || m.Left > 0
}

// Total returns the sum of the four margins.
func (m EdgeMargins) Total() float64 {
	return m.Top + m.Right + m.Bottom + m.Left
}

// Edges returns the trimmed edges in top, right, bottom, left order.
func (m EdgeMargins) Edges() []Edge {
	var edges []Edge
	if m.Top > 0 {
		edges = append(edges, EdgeTop)
	}
	if m.Right > 0 {
		edges = append(edges, EdgeRight)
	}
	if m.Bottom > 0 {
		edges = append(edges, EdgeBottom)
	}
	if m.Left > 0 {
		edges = append(edges, EdgeLeft)
	}
	return edges
}

// Label returns the cut list description of the trimmed edges,
// e.g. "أعلى + يسار".
func (m EdgeMargins) Label() string {
	edges := m.Edges()
	if len(edges) == 0 {
		return NoTrimLabel
	}
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = edgeLabels[e]
	}
	return strings.Join(parts, " + ")
}

// String returns a compact form such as "T+L".
func (m EdgeMargins) String() string {
	var parts []string
	for _, e := range m.Edges() {
		parts = append(parts, strings.ToUpper(string(e[:1])))
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "+")
}

// LinearWaste returns the material consumed by trimming one unit whose
// effective footprint is effLength x effWidth. Top and bottom trims run
// along the length, left and right trims along the width.
func (m EdgeMargins) LinearWaste(effLength, effWidth float64) float64 {
	return (m.Top+m.Bottom)*effLength + (m.Left+m.Right)*effWidth
}

// Valid reports whether every margin is a finite non-negative number.
func (m EdgeMargins) Valid() bool {
	for _, v := range []float64{m.Top, m.Right, m.Bottom, m.Left} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TrimSummary holds the trim waste totals for a piece list.
type TrimSummary struct {
	TotalWaste  float64 `json:"total_waste"`   // cm, summed over all units
	TotalWasteM float64 `json:"total_waste_m"` // TotalWaste / 100
	PieceCount  int     `json:"piece_count"`   // units carrying at least one trim
	EdgeCount   int     `json:"edge_count"`    // trimmed edges over all units
}

// CalculateTrimSummary totals the trim waste for a piece list.
func CalculateTrimSummary(pieces []WoodPiece) TrimSummary {
	var total float64
	var pieceCount, edgeCount int

	for _, p := range pieces {
		if !p.EdgeMargins.HasAny() {
			continue
		}
		perUnit := p.EdgeMargins.LinearWaste(p.EffectiveLength(), p.EffectiveWidth())
		total += perUnit * float64(p.Quantity)
		pieceCount += p.Quantity
		edgeCount += len(p.EdgeMargins.Edges()) * p.Quantity
	}

	return TrimSummary{
		TotalWaste:  total,
		TotalWasteM: total / 100.0,
		PieceCount:  pieceCount,
		EdgeCount:   edgeCount,
	}
}

// PerPieceTrim is a per-piece breakdown row of trim waste.
type PerPieceTrim struct {
	PieceID      string  `json:"piece_id"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Edges        string  `json:"edges"`
	MarginTotal  float64 `json:"margin_total"`
	WastePerUnit float64 `json:"waste_per_unit"`
	TotalWaste   float64 `json:"total_waste"`
}

// CalculatePerPieceTrim returns a breakdown of trim waste per piece.
func CalculatePerPieceTrim(pieces []WoodPiece) []PerPieceTrim {
	var results []PerPieceTrim
	for _, p := range pieces {
		if !p.EdgeMargins.HasAny() {
			continue
		}
		perUnit := p.EdgeMargins.LinearWaste(p.EffectiveLength(), p.EffectiveWidth())
		results = append(results, PerPieceTrim{
			PieceID:      p.ID,
			Category:     p.Category,
			Quantity:     p.Quantity,
			Edges:        p.EdgeMargins.String(),
			MarginTotal:  p.EdgeMargins.Total(),
			WastePerUnit: perUnit,
			TotalWaste:   perUnit * float64(p.Quantity),
		})
	}
	return results
}
