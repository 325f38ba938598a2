package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GrainDirection describes which board axis the wood grain of a piece must
// run parallel to.
type GrainDirection int

const (
	GrainLongitudinal GrainDirection = iota // Grain runs along the piece length
	GrainTransverse                         // Grain runs along the piece width
)

func (g GrainDirection) String() string {
	switch g {
	case GrainTransverse:
		return "transverse"
	default:
		return "longitudinal"
	}
}

// Arabic returns the label used on printed cut lists.
func (g GrainDirection) Arabic() string {
	if g == GrainTransverse {
		return "عرضي"
	}
	return "طولي"
}

// MarshalText encodes the grain as its lowercase English name.
func (g GrainDirection) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText accepts any spelling understood by ParseGrain.
func (g *GrainDirection) UnmarshalText(text []byte) error {
	parsed, ok := ParseGrain(string(text))
	if !ok {
		return fmt.Errorf("unknown grain direction %q", string(text))
	}
	*g = parsed
	return nil
}

// ParseGrain converts a user supplied grain string into a GrainDirection.
// An empty string maps to longitudinal.
func ParseGrain(s string) (GrainDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "longitudinal", "long", "l", "length", "طولي":
		return GrainLongitudinal, true
	case "transverse", "trans", "t", "cross", "عرضي":
		return GrainTransverse, true
	default:
		return GrainLongitudinal, false
	}
}

// DefaultCategory is the label given to pieces entered without a category.
const DefaultCategory = "بدون تصنيف"

// BoardSize is the fixed size of one stock board in cm.
// Length runs along the x axis, width along the y axis.
type BoardSize struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// DefaultBoardSize returns the standard 244 x 122 cm sheet.
func DefaultBoardSize() BoardSize {
	return BoardSize{Length: 244, Width: 122}
}

// Area returns the board area in cm².
func (b BoardSize) Area() float64 {
	return b.Length * b.Width
}

// WoodPiece is one requested rectangular cut, specified once with the number
// of identical units needed.
type WoodPiece struct {
	ID          string         `json:"id"`
	Length      float64        `json:"length"` // cm
	Width       float64        `json:"width"`  // cm
	Quantity    int            `json:"quantity"`
	Category    string         `json:"category"`
	EdgeMargins EdgeMargins    `json:"edge_margins"`
	Grain       GrainDirection `json:"grain"`
}

func NewPiece(category string, length, width float64, qty int) WoodPiece {
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	return WoodPiece{
		ID:       uuid.New().String()[:8],
		Length:   length,
		Width:    width,
		Quantity: qty,
		Category: category,
		Grain:    GrainLongitudinal,
	}
}

// EffectiveLength is the length inflated by the left and right trim margins.
func (p WoodPiece) EffectiveLength() float64 {
	return p.Length + p.EdgeMargins.Left + p.EdgeMargins.Right
}

// EffectiveWidth is the width inflated by the top and bottom trim margins.
func (p WoodPiece) EffectiveWidth() float64 {
	return p.Width + p.EdgeMargins.Top + p.EdgeMargins.Bottom
}

// PieceInstance is one physical unit of a WoodPiece. It only exists for the
// duration of a single layout computation.
type PieceInstance struct {
	PieceID         string
	Ordinal         int // 0-based unit number within the source piece
	Sequence        int // position in the expanded list, used as final tie-break
	EffectiveLength float64
	EffectiveWidth  float64
	RotationAllowed bool
	Margins         EdgeMargins
}

// Area returns the effective footprint area.
func (pi PieceInstance) Area() float64 {
	return pi.EffectiveLength * pi.EffectiveWidth
}

// Placement records where one piece instance landed.
type Placement struct {
	PieceID    string  `json:"piece_id"`
	Ordinal    int     `json:"ordinal"`
	BoardIndex int     `json:"board_index"`
	X          float64 `json:"x"`       // from the left board edge (cm)
	Y          float64 `json:"y"`       // from the top board edge (cm)
	Rotated    bool    `json:"rotated"` // turned 90° from the authored orientation
	Length     float64 `json:"length"`  // footprint along x
	Width      float64 `json:"width"`   // footprint along y
}

// Right returns the x coordinate of the far edge.
func (p Placement) Right() float64 {
	return p.X + p.Length
}

// Bottom returns the y coordinate of the far edge.
func (p Placement) Bottom() float64 {
	return p.Y + p.Width
}

// Area returns the footprint area.
func (p Placement) Area() float64 {
	return p.Length * p.Width
}

// CutLayout is the engine output: how many boards are needed, where each
// unit goes, and how much material the trim margins consume.
type CutLayout struct {
	Board        BoardSize   `json:"board"`
	BoardsNeeded int         `json:"boards_needed"`
	Placements   []Placement `json:"placements"`
	TotalWaste   float64     `json:"total_waste"`
}

// BoardPlacements returns the placements on board i in placement order.
func (l CutLayout) BoardPlacements(i int) []Placement {
	var out []Placement
	for _, p := range l.Placements {
		if p.BoardIndex == i {
			out = append(out, p)
		}
	}
	return out
}

// UsedArea returns the footprint area placed on board i.
func (l CutLayout) UsedArea(i int) float64 {
	var total float64
	for _, p := range l.Placements {
		if p.BoardIndex == i {
			total += p.Area()
		}
	}
	return total
}

// Efficiency returns the usage percentage of board i.
func (l CutLayout) Efficiency(i int) float64 {
	ba := l.Board.Area()
	if ba == 0 {
		return 0
	}
	return (l.UsedArea(i) / ba) * 100.0
}

// TotalEfficiency returns overall material usage percentage.
func (l CutLayout) TotalEfficiency() float64 {
	totalArea := l.Board.Area() * float64(l.BoardsNeeded)
	if totalArea == 0 {
		return 0
	}
	var used float64
	for _, p := range l.Placements {
		used += p.Area()
	}
	return (used / totalArea) * 100.0
}

// WasteMeters converts the trim waste into the unit shown on reports.
func (l CutLayout) WasteMeters() float64 {
	return l.TotalWaste / 100.0
}

// PieceCount returns how many units of the given piece were placed.
func (l CutLayout) PieceCount(id string) int {
	n := 0
	for _, p := range l.Placements {
		if p.PieceID == id {
			n++
		}
	}
	return n
}

// RotationPolicy decides whether a piece may be turned 90° on the board.
type RotationPolicy string

const (
	// RotationFree always allows rotation; grain only affects rendering.
	RotationFree RotationPolicy = "free"
	// RotationGrainLocked never rotates, since a turn moves the grain onto
	// the other board axis.
	RotationGrainLocked RotationPolicy = "grain-locked"
)

// ParseRotationPolicy validates a policy name. Empty selects RotationFree.
func ParseRotationPolicy(s string) (RotationPolicy, error) {
	switch RotationPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RotationFree:
		return RotationFree, nil
	case RotationGrainLocked:
		return RotationGrainLocked, nil
	default:
		return "", fmt.Errorf("%w: unknown rotation policy %q", ErrInvalidInput, s)
	}
}

// CanRotate reports whether a piece with the given grain may be rotated
// under the policy.
func CanRotate(grain GrainDirection, policy RotationPolicy) bool {
	switch policy {
	case RotationGrainLocked:
		return false
	default:
		return true
	}
}

// RenderedGrain returns the board axis the grain lines run along for a
// placement: a rotated piece carries its grain onto the other axis.
func RenderedGrain(grain GrainDirection, rotated bool) GrainDirection {
	if !rotated {
		return grain
	}
	if grain == GrainLongitudinal {
		return GrainTransverse
	}
	return GrainLongitudinal
}

// LayoutSettings holds the engine configuration.
type LayoutSettings struct {
	RotationPolicy RotationPolicy `json:"rotation_policy"`
}

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		RotationPolicy: RotationFree,
	}
}

// Project ties everything together for save/load.
type Project struct {
	Name     string         `json:"name"`
	Customer Customer       `json:"customer"`
	Board    BoardSize      `json:"board"`
	Pieces   []WoodPiece    `json:"pieces"`
	Settings LayoutSettings `json:"settings"`
	Layout   *CutLayout     `json:"layout,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Board:    DefaultBoardSize(),
		Pieces:   []WoodPiece{},
		Settings: DefaultSettings(),
	}
}

// TotalQuantity returns the sum of all piece quantities.
func TotalQuantity(pieces []WoodPiece) int {
	total := 0
	for _, p := range pieces {
		total += p.Quantity
	}
	return total
}
