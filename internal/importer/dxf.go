package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// DXFCategory is the category given to pieces traced from a drawing.
const DXFCategory = "DXF"

// point is a 2D drawing coordinate.
type point struct {
	X, Y float64
}

// outline is a closed polygon; the closing edge is implied.
type outline []point

// bounds returns the outline's axis-aligned bounding box size.
func (o outline) bounds() (w, h float64) {
	if len(o) == 0 {
		return 0, 0
	}
	minX, minY := o[0].X, o[0].Y
	maxX, maxY := minX, minY
	for _, p := range o[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// segment is a line between two points, used for chaining loose LINE and
// ARC entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ImportDXF reads a drawing and turns every closed shape (LWPOLYLINE, CIRCLE,
// or a loop of LINEs and ARCs) into a piece the size of its bounding box.
// scale converts drawing units to cm, e.g. 0.1 for millimeter drawings; a
// non-positive scale means the drawing is already in cm.
func ImportDXF(path string, scale float64) ImportResult {
	result := ImportResult{}
	if scale <= 0 {
		scale = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			r := e.Radius
			cx, cy := e.Center[0], e.Center[1]
			outlines = append(outlines, outline{{cx - r, cy - r}, {cx + r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			for i := 0; i < len(pts)-1; i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, o := range outlines {
		w, h := o.bounds()
		length, width := roundCM(math.Max(w, h)*scale), roundCM(math.Min(w, h)*scale)
		if length < 0.1 || width < 0.1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape %d (%.2f x %.2f cm)", i+1, length, width))
			continue
		}

		piece := model.NewPiece(DXFCategory, length, width, 1)
		result.Pieces = append(result.Pieces, piece)
	}

	return mergeIdentical(result)
}

// roundCM drops drawing noise below a tenth of a millimeter.
func roundCM(v float64) float64 {
	return math.Round(v*100) / 100
}

// mergeIdentical folds pieces with the same size into one with a quantity.
func mergeIdentical(result ImportResult) ImportResult {
	var merged []model.WoodPiece
	seen := make(map[[2]float64]int)
	for _, p := range result.Pieces {
		key := [2]float64{p.Length, p.Width}
		if i, ok := seen[key]; ok {
			merged[i].Quantity++
			continue
		}
		seen[key] = len(merged)
		merged = append(merged, p)
	}
	result.Pieces = merged
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulged vertices are expanded into arc points so the bounding box includes
// the arc.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	var o outline

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			o = append(o, arcPts[:len(arcPts)-1]...)
		} else {
			o = append(o, current)
		}
	}

	return o
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, point{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)})
	}
	return pts
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}

// chainSegments connects individual segments into closed outlines. Open
// chains are dropped. tolerance is the maximum endpoint gap that still
// counts as connected.
func chainSegments(segs []segment, tolerance float64) []outline {
	used := make([]bool, len(segs))
	var outlines []outline

	for start := range segs {
		if used[start] {
			continue
		}
		chain := []point{segs[start].start, segs[start].end}
		used[start] = true

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case pointsClose(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, outline(chain[:len(chain)-1]))
		}
	}

	// Largest first for a stable order.
	sort.SliceStable(outlines, func(i, j int) bool {
		wi, hi := outlines[i].bounds()
		wj, hj := outlines[j].bounds()
		return wi*hi > wj*hj
	})
	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
