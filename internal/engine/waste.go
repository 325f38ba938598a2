package engine

import "github.com/piwi3910/BoardCut/internal/model"

// Waste sums the trim strips of every instance. Each selected edge removes a
// strip as long as the effective side it runs along, so the total depends
// only on the inputs and never on where the pieces were placed.
func Waste(instances []model.PieceInstance) float64 {
	var total float64
	for _, inst := range instances {
		total += inst.Margins.LinearWaste(inst.EffectiveLength, inst.EffectiveWidth)
	}
	return total
}
