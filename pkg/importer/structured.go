package importer

import (
	"encoding/json"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/symmetry"
)

// componentPointsLimit is the component size below which raw points are
// cheaper to emit than any structured form.
const componentPointsLimit = 16

// RegionKind tags the variant held by a StructuredRegion.
type RegionKind int

const (
	RegionPoints RegionKind = iota
	RegionRect
	RegionPolygon
	RegionUnion
)

// StructuredRegion is a higher-level description of a token's pixels:
// a rect, a polygon, a union of parts, or raw points as the fallback.
type StructuredRegion struct {
	Kind    RegionKind
	Rect    [4]int
	Polygon [][2]int
	Parts   []StructuredRegion
	Points  [][2]int
}

// MarshalJSON emits the region in wire form: {"rect": [...]},
// {"polygon": [...]}, {"union": [...]} or {"points": [...]}.
func (r StructuredRegion) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RegionRect:
		return json.Marshal(map[string][4]int{"rect": r.Rect})
	case RegionPolygon:
		return json.Marshal(map[string][][2]int{"polygon": r.Polygon})
	case RegionUnion:
		return json.Marshal(map[string][]StructuredRegion{"union": r.Parts})
	default:
		points := r.Points
		if points == nil {
			points = [][2]int{}
		}
		return json.Marshal(map[string][][2]int{"points": points})
	}
}

// toValue renders the region as a JSON-ready object so callers can attach
// extra fields (z-order) before serialization.
func (r StructuredRegion) toValue() map[string]any {
	switch r.Kind {
	case RegionRect:
		return map[string]any{"rect": r.Rect}
	case RegionPolygon:
		return map[string]any{"polygon": r.Polygon}
	case RegionUnion:
		parts := make([]map[string]any, len(r.Parts))
		for i, p := range r.Parts {
			parts[i] = p.toValue()
		}
		return map[string]any{"union": parts}
	default:
		points := r.Points
		if points == nil {
			points = [][2]int{}
		}
		return map[string]any{"points": points}
	}
}

// isEmptyPoints reports whether the region is an empty points fallback.
func (r StructuredRegion) isEmptyPoints() bool {
	return r.Kind == RegionPoints && len(r.Points) == 0
}

// ExtractStructured converts a token's pixel set into structured form.
// Each 4-connected component becomes a rect when it exactly fills its
// bounding box, or raw points otherwise; small components always stay
// points. Multiple components combine into a union.
func ExtractStructured(pixels geometry.PixelSet) StructuredRegion {
	if len(pixels) == 0 {
		return StructuredRegion{Kind: RegionPoints, Points: [][2]int{}}
	}

	components := connectedComponents(pixels)

	structured := make([]StructuredRegion, 0, len(components))
	for _, component := range components {
		if len(component) < componentPointsLimit {
			structured = append(structured, StructuredRegion{Kind: RegionPoints, Points: sortedPairs(component)})
			continue
		}

		box, _ := geometry.BoundingBox(component)
		if len(component) == box.Width()*box.Height() {
			structured = append(structured, StructuredRegion{
				Kind: RegionRect,
				Rect: [4]int{box.MinX, box.MinY, box.Width(), box.Height()},
			})
			continue
		}

		structured = append(structured, StructuredRegion{Kind: RegionPoints, Points: sortedPairs(component)})
	}

	if len(structured) == 1 {
		return structured[0]
	}
	return StructuredRegion{Kind: RegionUnion, Parts: structured}
}

// connectedComponents splits a pixel set into 4-connected components,
// ordered by their smallest (y, x) pixel for deterministic output.
func connectedComponents(pixels geometry.PixelSet) []geometry.PixelSet {
	remaining := pixels.Clone()
	var components []geometry.PixelSet

	for _, start := range pixels.SortedPoints() {
		if !remaining.Contains(start) {
			continue
		}

		component := make(geometry.PixelSet)
		stack := []geometry.Point{start}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !remaining.Contains(p) {
				continue
			}
			delete(remaining, p)
			component.Add(p)

			for _, n := range [4]geometry.Point{
				{X: p.X - 1, Y: p.Y},
				{X: p.X + 1, Y: p.Y},
				{X: p.X, Y: p.Y - 1},
				{X: p.X, Y: p.Y + 1},
			} {
				if remaining.Contains(n) {
					stack = append(stack, n)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

func sortedPairs(pixels geometry.PixelSet) [][2]int {
	out := make([][2]int, 0, len(pixels))
	for _, p := range pixels.SortedPoints() {
		out = append(out, [2]int{p.X, p.Y})
	}
	return out
}

// FilterPointsHalf keeps only the primary half of a point list: the left
// half for X symmetry, the top half for Y, the top-left quarter for XY.
// The center column/row of odd-sized sprites is always kept.
func FilterPointsHalf(points [][2]int, axis symmetry.Axis, width, height int) [][2]int {
	halfWidth := (width + 1) / 2
	halfHeight := (height + 1) / 2

	out := make([][2]int, 0, len(points))
	for _, p := range points {
		inLeft := p[0] < halfWidth
		inTop := p[1] < halfHeight

		keep := false
		switch axis {
		case symmetry.AxisX:
			keep = inLeft
		case symmetry.AxisY:
			keep = inTop
		case symmetry.AxisXY:
			keep = inLeft && inTop
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}

// FilterStructuredHalf clips a structured region to the sprite's primary
// half. Rects clip exactly; polygons fall back to filtered rasterized
// points; unions drop parts that clip to nothing.
func FilterStructuredHalf(region StructuredRegion, axis symmetry.Axis, width, height int) StructuredRegion {
	halfWidth := (width + 1) / 2
	halfHeight := (height + 1) / 2

	switch region.Kind {
	case RegionRect:
		x, y, w, h := region.Rect[0], region.Rect[1], region.Rect[2], region.Rect[3]
		switch axis {
		case symmetry.AxisX:
			endX := min(x+w, halfWidth)
			if x >= halfWidth || endX <= x {
				return StructuredRegion{Kind: RegionPoints, Points: [][2]int{}}
			}
			w = endX - x
		case symmetry.AxisY:
			endY := min(y+h, halfHeight)
			if y >= halfHeight || endY <= y {
				return StructuredRegion{Kind: RegionPoints, Points: [][2]int{}}
			}
			h = endY - y
		case symmetry.AxisXY:
			endX := min(x+w, halfWidth)
			endY := min(y+h, halfHeight)
			if x >= halfWidth || y >= halfHeight || endX <= x || endY <= y {
				return StructuredRegion{Kind: RegionPoints, Points: [][2]int{}}
			}
			w = endX - x
			h = endY - y
		}
		return StructuredRegion{Kind: RegionRect, Rect: [4]int{x, y, w, h}}

	case RegionPolygon:
		vertices := make([]geometry.Point, len(region.Polygon))
		for i, v := range region.Polygon {
			vertices[i] = geometry.Point{X: v[0], Y: v[1]}
		}
		rasterized := geometry.RasterizePolygon(vertices)
		return StructuredRegion{
			Kind:   RegionPoints,
			Points: FilterPointsHalf(sortedPairs(rasterized), axis, width, height),
		}

	case RegionUnion:
		var parts []StructuredRegion
		for _, part := range region.Parts {
			filtered := FilterStructuredHalf(part, axis, width, height)
			if filtered.isEmptyPoints() {
				continue
			}
			parts = append(parts, filtered)
		}
		if len(parts) == 0 {
			return StructuredRegion{Kind: RegionPoints, Points: [][2]int{}}
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return StructuredRegion{Kind: RegionUnion, Parts: parts}

	default:
		return StructuredRegion{
			Kind:   RegionPoints,
			Points: FilterPointsHalf(region.Points, axis, width, height),
		}
	}
}
