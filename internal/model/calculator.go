package model

import "math"

// PurchaseEstimate holds the results of a board purchasing calculation.
type PurchaseEstimate struct {
	TotalPieceArea    float64 `json:"total_piece_area"`    // Area of all units including margins (cm²)
	TotalPieceAreaM2  float64 `json:"total_piece_area_m2"` // Same in square meters
	BoardArea         float64 `json:"board_area"`          // Area of one board (cm²)
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Exact fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Area lower bound (ceiling of exact)
	BoardsWithWaste   int     `json:"boards_with_waste"`   // Recommended boards including waste factor
	BoardsInLayout    int     `json:"boards_in_layout"`    // Boards used by the computed layout, 0 if unknown
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	PricePerBoard     float64 `json:"price_per_board"`     // Price used for estimation
	TrimWaste         float64 `json:"trim_waste"`          // Linear trim waste (cm)
}

// sqcmPerSquareMeter converts board areas to square meters.
const sqcmPerSquareMeter = 10000.0

// CalculatePurchaseEstimate computes how many boards to buy for a piece list.
// Piece areas include their trim margins. The estimate is an area bound and
// does not depend on how the pieces are packed.
func CalculatePurchaseEstimate(pieces []WoodPiece, board BoardSize, wastePercent, pricePerBoard float64) PurchaseEstimate {
	var totalArea float64
	for _, p := range pieces {
		totalArea += p.EffectiveLength() * p.EffectiveWidth() * float64(p.Quantity)
	}
	trim := CalculateTrimSummary(pieces).TotalWaste

	boardArea := board.Area()
	if boardArea <= 0 {
		return PurchaseEstimate{
			TotalPieceArea:   totalArea,
			TotalPieceAreaM2: totalArea / sqcmPerSquareMeter,
			WastePercent:     wastePercent,
			TrimWaste:        trim,
		}
	}

	exact := totalArea / boardArea
	minBoards := int(math.Ceil(exact))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minBoards {
		withWaste = minBoards
	}

	return PurchaseEstimate{
		TotalPieceArea:    totalArea,
		TotalPieceAreaM2:  totalArea / sqcmPerSquareMeter,
		BoardArea:         boardArea,
		BoardsNeededExact: exact,
		BoardsNeededMin:   minBoards,
		BoardsWithWaste:   withWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(withWaste) * pricePerBoard,
		PricePerBoard:     pricePerBoard,
		TrimWaste:         trim,
	}
}

// WithLayout records the board count of an actual layout and reprices the
// estimate when the layout needs more boards than the waste allowance.
func (e PurchaseEstimate) WithLayout(layout CutLayout) PurchaseEstimate {
	e.BoardsInLayout = layout.BoardsNeeded
	if layout.BoardsNeeded > e.BoardsWithWaste {
		e.EstimatedCost = float64(layout.BoardsNeeded) * e.PricePerBoard
	}
	return e
}
