// Package relationships infers pairwise semantic relationships between
// sprite regions: color derivation, containment, adjacency, and mirror
// pairing. Each predicate is independent; the batch driver runs them over
// all pairs and sorts results by confidence.
package relationships

import (
	"image/color"
	"math"
	"sort"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/types"
)

const (
	// DerivesHueTolerance is the maximum hue difference in degrees.
	DerivesHueTolerance = 15.0
	// DerivesSatTolerance is the maximum saturation difference.
	DerivesSatTolerance = 0.15
	// DerivesMinLightDiff is the minimum lightness gap for a derivation.
	DerivesMinLightDiff = 0.1
	// DerivesMinConfidence rejects weak derivation matches.
	DerivesMinConfidence = 0.5
	// ContainedMinSurrounded is the minimum fraction of inner pixels
	// bordered by the outer region.
	ContainedMinSurrounded = 0.5
	// PairedMinSizeRatio rejects mirror pairs of very different sizes.
	PairedMinSizeRatio = 0.8
	// PairedMinShapeSimilarity is the minimum Jaccard overlap of the
	// mirrored pixel sets.
	PairedMinShapeSimilarity = 0.5
	// PairedMinConfidence rejects weak mirror-pair matches.
	PairedMinConfidence = 0.6
	// PairedToleranceRatio scales sprite width into the centroid
	// position tolerance.
	PairedToleranceRatio = 0.1
)

// Inference is one inferred relationship between two named regions.
type Inference struct {
	Source     string
	Kind       types.RelationshipKind
	Target     string
	Confidence float64
}

// NewInference creates an inference, clamping confidence to [0, 1].
func NewInference(source string, kind types.RelationshipKind, target string, confidence float64) Inference {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Inference{Source: source, Kind: kind, Target: target, Confidence: confidence}
}

// HSL is a color in hue/saturation/lightness space, hue in degrees [0, 360).
type HSL struct {
	H float64
	S float64
	L float64
}

// RGBToHSL converts an RGBA color to HSL, ignoring alpha. Achromatic colors
// get H=0, S=0.
func RGBToHSL(c color.RGBA) HSL {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2.0

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2.0 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
	case g:
		h = (b-r)/d + 2.0
	default:
		h = (r-g)/d + 4.0
	}
	h *= 60.0
	return HSL{H: h, S: s, L: l}
}

// InferDerivesFrom matches when source's color is a lightness-only variant
// of target's: near-identical hue and saturation, clearly different
// lightness.
func InferDerivesFrom(sourceName string, sourceColor color.RGBA, targetName string, targetColor color.RGBA) (Inference, bool) {
	if sourceName == targetName {
		return Inference{}, false
	}

	a := RGBToHSL(sourceColor)
	b := RGBToHSL(targetColor)

	hueDiff := math.Abs(a.H - b.H)
	if hueDiff > 180 {
		hueDiff = 360 - hueDiff
	}
	satDiff := math.Abs(a.S - b.S)
	lightDiff := math.Abs(a.L - b.L)

	if hueDiff > DerivesHueTolerance || satDiff > DerivesSatTolerance || lightDiff < DerivesMinLightDiff {
		return Inference{}, false
	}

	confidence := 0.3*(1.0-hueDiff/DerivesHueTolerance) +
		0.3*(1.0-satDiff/DerivesSatTolerance) +
		0.4*math.Min((lightDiff-DerivesMinLightDiff)/0.4, 1.0)
	if confidence < DerivesMinConfidence {
		return Inference{}, false
	}
	return NewInference(sourceName, types.DerivesFrom, targetName, confidence), true
}

// InferContainedWithin matches when the inner region sits inside the outer:
// bounding box enclosed and at least half the inner pixels bordered by the
// outer region.
func InferContainedWithin(innerName string, innerPixels geometry.PixelSet, outerName string, outerPixels geometry.PixelSet) (Inference, bool) {
	if innerName == outerName || len(innerPixels) == 0 || len(outerPixels) == 0 {
		return Inference{}, false
	}

	innerBox, _ := geometry.BoundingBox(innerPixels)
	outerBox, _ := geometry.BoundingBox(outerPixels)
	if !outerBox.ContainsBox(innerBox) {
		return Inference{}, false
	}

	surrounded := 0
	for p := range innerPixels {
		for _, n := range [4]geometry.Point{
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
			{X: p.X, Y: p.Y - 1},
			{X: p.X, Y: p.Y + 1},
		} {
			if outerPixels.Contains(n) {
				surrounded++
				break
			}
		}
	}

	ratio := float64(surrounded) / float64(len(innerPixels))
	if ratio < ContainedMinSurrounded {
		return Inference{}, false
	}
	return NewInference(innerName, types.ContainedWithin, outerName, 0.7*ratio+0.3), true
}

// InferAdjacentTo matches when the two regions share any 4-connected
// boundary.
func InferAdjacentTo(aName string, aPixels geometry.PixelSet, bName string, bPixels geometry.PixelSet) (Inference, bool) {
	if aName == bName || len(aPixels) == 0 || len(bPixels) == 0 {
		return Inference{}, false
	}

	boundaryCount := 0
	for p := range aPixels {
		for _, n := range [4]geometry.Point{
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
			{X: p.X, Y: p.Y - 1},
			{X: p.X, Y: p.Y + 1},
		} {
			if bPixels.Contains(n) {
				boundaryCount++
				break
			}
		}
	}
	if boundaryCount == 0 {
		return Inference{}, false
	}

	smaller := len(aPixels)
	if len(bPixels) < smaller {
		smaller = len(bPixels)
	}
	confidence := 0.5 + 0.5*float64(boundaryCount)/float64(smaller)
	return NewInference(aName, types.AdjacentTo, bName, confidence), true
}

// InferPairedWith matches symmetric twins mirrored about the sprite's
// vertical centerline: similar size, mirrored centroid positions, and high
// overlap after reflecting one set.
func InferPairedWith(aName string, aPixels geometry.PixelSet, bName string, bPixels geometry.PixelSet, spriteWidth int) (Inference, bool) {
	if aName == bName || len(aPixels) == 0 || len(bPixels) == 0 {
		return Inference{}, false
	}

	sizeA := float64(len(aPixels))
	sizeB := float64(len(bPixels))
	sizeRatio := math.Min(sizeA, sizeB) / math.Max(sizeA, sizeB)
	if sizeRatio < PairedMinSizeRatio {
		return Inference{}, false
	}

	ax, ay, _ := geometry.Centroid(aPixels)
	bx, by, _ := geometry.Centroid(bPixels)

	tolerance := float64(spriteWidth) * PairedToleranceRatio
	expectedMirrorX := float64(spriteWidth) - 1.0 - ax
	xMirrorDiff := math.Abs(bx - expectedMirrorX)
	yDiff := math.Abs(ay - by)
	if xMirrorDiff > tolerance || yDiff > tolerance {
		return Inference{}, false
	}

	mirrored := make(geometry.PixelSet, len(aPixels))
	for p := range aPixels {
		mirrored.Add(geometry.Point{X: spriteWidth - 1 - p.X, Y: p.Y})
	}
	intersection := geometry.IntersectionCount(mirrored, bPixels)
	union := len(mirrored) + len(bPixels) - intersection
	similarity := 0.0
	if union > 0 {
		similarity = float64(intersection) / float64(union)
	}
	if similarity < PairedMinShapeSimilarity {
		return Inference{}, false
	}

	positionScore := 1.0 - (xMirrorDiff+yDiff)/(2.0*tolerance)
	confidence := 0.2*sizeRatio + 0.5*similarity + 0.3*positionScore
	if confidence < PairedMinConfidence {
		return Inference{}, false
	}
	return NewInference(aName, types.PairedWith, bName, confidence), true
}

// InferBatch evaluates all predicates over all region pairs: derivation over
// every ordered pair, containment in both directions, adjacency and pairing
// once per unordered pair. Results are sorted by confidence descending.
func InferBatch(regions []types.Region, spriteWidth int) []Inference {
	var out []Inference

	for i := range regions {
		for j := range regions {
			if i == j {
				continue
			}
			if inf, ok := InferDerivesFrom(regions[i].Name, regions[i].Color, regions[j].Name, regions[j].Color); ok {
				out = append(out, inf)
			}
		}
	}

	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i], regions[j]

			if inf, ok := InferContainedWithin(a.Name, a.Pixels, b.Name, b.Pixels); ok {
				out = append(out, inf)
			}
			if inf, ok := InferContainedWithin(b.Name, b.Pixels, a.Name, a.Pixels); ok {
				out = append(out, inf)
			}
			if inf, ok := InferAdjacentTo(a.Name, a.Pixels, b.Name, b.Pixels); ok {
				out = append(out, inf)
			}
			if inf, ok := InferPairedWith(a.Name, a.Pixels, b.Name, b.Pixels, spriteWidth); ok {
				out = append(out, inf)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}
