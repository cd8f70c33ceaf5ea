// Package shape classifies pixel sets into primitive shapes with confidence
// scores. Probes run in a fixed priority order (rect, stroke, line, ellipse)
// with a convex-hull polygon as the universal fallback; the order is
// contractual, so a set matching several probes always reports the earliest.
package shape

import (
	"math"

	"github.com/spritelab/spritesem/pkg/geometry"
)

// Classifier acceptance thresholds. These are fixed engine behavior;
// generated content depends on the exact values.
const (
	// StrokeMatchThreshold is the minimum overlap with the reference
	// stroke for a hollow-rectangle match.
	StrokeMatchThreshold = 0.95
	// LineMatchThreshold is the minimum overlap with the best candidate
	// digital line.
	LineMatchThreshold = 0.95
	// EllipseMatchThreshold is the minimum combined Jaccard/area score for
	// an ellipse match.
	EllipseMatchThreshold = 0.7
)

// Kind identifies a primitive shape variant.
type Kind int

const (
	KindRect Kind = iota
	KindStroke
	KindLine
	KindEllipse
	KindPolygon
)

// Shape is a closed set of primitive shape variants.
type Shape interface {
	Kind() Kind
}

// Rect is a filled rectangle with top-left corner (X, Y).
type Rect struct {
	X, Y, W, H int
}

// Stroke is a hollow rectangle outline with top-left corner (X, Y).
type Stroke struct {
	X, Y, W, H int
}

// Line is a digital line between two endpoints. A single pixel is a
// degenerate line with both endpoints equal.
type Line struct {
	P0, P1 geometry.Point
}

// Ellipse is a filled ellipse centered at (CX, CY) with radii (RX, RY).
type Ellipse struct {
	CX, CY, RX, RY int
}

// Polygon is the fallback variant holding convex-hull vertices. It may hold
// zero vertices only for an empty input.
type Polygon struct {
	Vertices []geometry.Point
}

func (Rect) Kind() Kind    { return KindRect }
func (Stroke) Kind() Kind  { return KindStroke }
func (Line) Kind() Kind    { return KindLine }
func (Ellipse) Kind() Kind { return KindEllipse }
func (Polygon) Kind() Kind { return KindPolygon }

// Detection is a detected shape with its confidence score.
type Detection struct {
	Shape      Shape
	Confidence float64
}

// NewDetection creates a detection, clamping confidence to [0, 1].
func NewDetection(s Shape, confidence float64) Detection {
	return Detection{Shape: s, Confidence: clamp01(confidence)}
}

// DetectRect matches a pixel set that is exactly its full bounding-box
// rectangle. A single pixel is a valid 1x1 rect; any missing cell
// disqualifies the set. Empty input does not match.
func DetectRect(pixels geometry.PixelSet) (Detection, bool) {
	box, ok := geometry.BoundingBox(pixels)
	if !ok {
		return Detection{}, false
	}

	if len(pixels) != box.Width()*box.Height() {
		return Detection{}, false
	}
	return NewDetection(Rect{X: box.MinX, Y: box.MinY, W: box.Width(), H: box.Height()}, 1.0), true
}

// DetectStroke matches a 1-pixel-thick rectangle outline with a strictly
// empty interior. Rectangles too small to have an interior are rejected.
func DetectStroke(pixels geometry.PixelSet) (Detection, bool) {
	box, ok := geometry.BoundingBox(pixels)
	if !ok {
		return Detection{}, false
	}

	w := box.Width()
	h := box.Height()
	if w < 3 || h < 3 {
		return Detection{}, false
	}

	for x := box.MinX + 1; x < box.MaxX; x++ {
		for y := box.MinY + 1; y < box.MaxY; y++ {
			if pixels.Contains(geometry.Point{X: x, Y: y}) {
				return Detection{}, false
			}
		}
	}

	expected := geometry.RasterizeStroke(box.MinX, box.MinY, w, h, 1)
	matching := geometry.IntersectionCount(pixels, expected)
	confidence := float64(matching) / float64(max(len(pixels), len(expected)))
	if confidence < StrokeMatchThreshold {
		return Detection{}, false
	}
	return NewDetection(Stroke{X: box.MinX, Y: box.MinY, W: w, H: h}, confidence), true
}

// DetectLine matches a pixel set that equals a rasterized digital line
// between two endpoints. Candidate endpoints are taken from the bounding-box
// extremes and every pair is tested against a Bresenham rasterization.
func DetectLine(pixels geometry.PixelSet) (Detection, bool) {
	if len(pixels) == 0 {
		return Detection{}, false
	}

	if len(pixels) == 1 {
		var p geometry.Point
		for q := range pixels {
			p = q
		}
		return NewDetection(Line{P0: p, P1: p}, 1.0), true
	}

	if len(pixels) == 2 {
		pts := pixels.SortedPoints()
		dx := abs(pts[1].X - pts[0].X)
		dy := abs(pts[1].Y - pts[0].Y)
		if dx <= 1 && dy <= 1 {
			return NewDetection(Line{P0: pts[0], P1: pts[1]}, 1.0), true
		}
	}

	box, _ := geometry.BoundingBox(pixels)

	var candidates []geometry.Point
	for p := range pixels {
		if p.X == box.MinX || p.X == box.MaxX || p.Y == box.MinY || p.Y == box.MaxY {
			candidates = append(candidates, p)
		}
	}

	var bestP0, bestP1 geometry.Point
	bestConfidence := 0.0
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			linePixels := geometry.RasterizeLine(candidates[i], candidates[j])
			if len(linePixels) != len(pixels) {
				continue
			}
			matching := geometry.IntersectionCount(pixels, linePixels)
			confidence := float64(matching) / float64(len(pixels))
			if confidence > bestConfidence {
				bestP0, bestP1 = candidates[i], candidates[j]
				bestConfidence = confidence
			}
		}
	}

	if bestConfidence < LineMatchThreshold {
		return Detection{}, false
	}
	return NewDetection(Line{P0: bestP0, P1: bestP1}, bestConfidence), true
}

// DetectEllipse matches a pixel set that closely approximates a filled
// ellipse centered near the bounding-box center. Degenerate ellipses smaller
// than 3x3 never match; callers must treat ellipse detection as optional.
func DetectEllipse(pixels geometry.PixelSet) (Detection, bool) {
	box, ok := geometry.BoundingBox(pixels)
	if !ok {
		return Detection{}, false
	}

	w := box.Width()
	h := box.Height()
	if w < 3 || h < 3 {
		return Detection{}, false
	}

	cx := (box.MinX + box.MaxX) / 2
	cy := (box.MinY + box.MaxY) / 2
	rx := w / 2
	ry := h / 2
	if rx < 1 || ry < 1 {
		return Detection{}, false
	}

	expected := geometry.RasterizeEllipse(cx, cy, rx, ry)
	if len(expected) == 0 {
		return Detection{}, false
	}

	intersection := geometry.IntersectionCount(pixels, expected)
	unionSize := len(pixels) + len(expected) - intersection
	jaccard := 0.0
	if unionSize > 0 {
		jaccard = float64(intersection) / float64(unionSize)
	}

	expectedArea := math.Pi * float64(rx) * float64(ry)
	areaRatio := float64(len(pixels)) / expectedArea
	areaConfidence := 1.0 - math.Min(math.Abs(areaRatio-1.0), 1.0)

	confidence := (jaccard + areaConfidence) / 2.0
	if confidence < EllipseMatchThreshold {
		return Detection{}, false
	}
	return NewDetection(Ellipse{CX: cx, CY: cy, RX: rx, RY: ry}, confidence), true
}

// Detect classifies a pixel set, trying each primitive probe in the fixed
// priority order rect > stroke > line > ellipse and falling back to the
// convex-hull polygon. An empty set yields an empty polygon with
// confidence 0.
func Detect(pixels geometry.PixelSet) (Shape, float64) {
	if len(pixels) == 0 {
		return Polygon{}, 0.0
	}

	if d, ok := DetectRect(pixels); ok {
		return d.Shape, d.Confidence
	}
	if d, ok := DetectStroke(pixels); ok {
		return d.Shape, d.Confidence
	}
	if d, ok := DetectLine(pixels); ok {
		return d.Shape, d.Confidence
	}
	if d, ok := DetectEllipse(pixels); ok {
		return d.Shape, d.Confidence
	}

	vertices := geometry.ConvexHull(pixels)
	hullPixels := geometry.RasterizePolygon(vertices)
	confidence := float64(geometry.IntersectionCount(pixels, hullPixels)) / float64(len(pixels))
	return Polygon{Vertices: vertices}, confidence
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
