// Package roles infers semantic roles for sprite regions. Probes run in a
// fixed priority order (boundary, anchor, shadow, highlight, fill) and
// short-circuit on the first match; a region matching no probe gets no role.
package roles

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/types"
)

const (
	// LowConfidenceThreshold gates advisory warnings on inferred roles.
	LowConfidenceThreshold = 0.7
	// AnchorMaxSize is the exclusive pixel-count limit for anchor regions.
	AnchorMaxSize = 4
	// BrightnessDelta is the minimum mean-brightness gap for shadow and
	// highlight matches.
	BrightnessDelta = 0.15
	// FillMinSizeRatio is the minimum share of sprite area for a fill.
	FillMinSizeRatio = 0.05
	// FillMinInteriorRatio is the minimum share of strictly interior
	// pixels for a fill.
	FillMinInteriorRatio = 0.5
	// BoundaryEdgeRatio is the edge-pixel ratio above which a region
	// infers boundary even when it is not thin.
	BoundaryEdgeRatio = 0.7
)

// Inference is an inferred role with its confidence score.
type Inference struct {
	Role       types.Role
	Confidence float64
}

// NewInference creates an inference, clamping confidence to [0, 1].
func NewInference(role types.Role, confidence float64) Inference {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Inference{Role: role, Confidence: confidence}
}

// IsLowConfidence reports whether the inference should carry a warning.
func (inf Inference) IsLowConfidence() bool {
	return inf.Confidence < LowConfidenceThreshold
}

// Warning is an advisory message about a low-confidence inference.
type Warning struct {
	Token   string
	Message string
}

// Context carries the sprite dimensions, immutable per analysis run.
type Context struct {
	SpriteWidth  int
	SpriteHeight int
}

// NewContext creates a role inference context for a sprite.
func NewContext(width, height int) Context {
	return Context{SpriteWidth: width, SpriteHeight: height}
}

// touchesEdge reports whether the pixel lies on any sprite edge.
func (ctx Context) touchesEdge(p geometry.Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == ctx.SpriteWidth-1 || p.Y == ctx.SpriteHeight-1
}

// isInterior reports whether the pixel lies strictly inside the sprite rect.
// Pixels outside the sprite are not interior.
func (ctx Context) isInterior(p geometry.Point) bool {
	return p.X > 0 && p.X < ctx.SpriteWidth-1 && p.Y > 0 && p.Y < ctx.SpriteHeight-1
}

// Infer assigns a semantic role to a region, trying each probe in priority
// order. Color-dependent probes are skipped when clr is nil or no adjacent
// colors are supplied. The second return value is false when no probe
// matches, including for an empty pixel set.
func Infer(pixels geometry.PixelSet, ctx Context, clr *color.RGBA, adjacent []color.RGBA) (Inference, bool) {
	if len(pixels) == 0 {
		return Inference{}, false
	}

	if inf, ok := InferBoundary(pixels, ctx); ok {
		return inf, true
	}
	if inf, ok := InferAnchor(pixels); ok {
		return inf, true
	}
	if clr != nil && len(adjacent) > 0 {
		if inf, ok := InferShadow(*clr, adjacent); ok {
			return inf, true
		}
		if inf, ok := InferHighlight(*clr, adjacent); ok {
			return inf, true
		}
	}
	return InferFill(pixels, ctx)
}

// InferBoundary matches thin regions hugging a sprite edge, or any region
// whose edge-pixel ratio alone exceeds the boundary threshold.
func InferBoundary(pixels geometry.PixelSet, ctx Context) (Inference, bool) {
	if len(pixels) == 0 {
		return Inference{}, false
	}

	edgeCount := 0
	for p := range pixels {
		if ctx.touchesEdge(p) {
			edgeCount++
		}
	}
	if edgeCount == 0 {
		return Inference{}, false
	}

	edgeRatio := float64(edgeCount) / float64(len(pixels))
	box, _ := geometry.BoundingBox(pixels)
	thin := box.Width() == 1 || box.Height() == 1

	if thin {
		return NewInference(types.RoleBoundary, edgeRatio*0.7+0.3), true
	}
	if edgeRatio > BoundaryEdgeRatio {
		return NewInference(types.RoleBoundary, edgeRatio*0.8), true
	}
	return Inference{}, false
}

// InferAnchor matches tiny regions that must survive scaling pixel-exact.
func InferAnchor(pixels geometry.PixelSet) (Inference, bool) {
	if len(pixels) == 0 || len(pixels) >= AnchorMaxSize {
		return Inference{}, false
	}

	var confidence float64
	switch len(pixels) {
	case 1:
		confidence = 1.0
	case 2:
		confidence = 0.9
	default:
		confidence = 0.8
	}
	return NewInference(types.RoleAnchor, confidence), true
}

// InferShadow matches regions noticeably darker than their neighbors' mean.
func InferShadow(clr color.RGBA, adjacent []color.RGBA) (Inference, bool) {
	return inferBrightnessRole(types.RoleShadow, clr, adjacent, func(mean, own float64) float64 {
		return mean - own
	})
}

// InferHighlight matches regions noticeably lighter than their neighbors'
// mean.
func InferHighlight(clr color.RGBA, adjacent []color.RGBA) (Inference, bool) {
	return inferBrightnessRole(types.RoleHighlight, clr, adjacent, func(mean, own float64) float64 {
		return own - mean
	})
}

func inferBrightnessRole(role types.Role, clr color.RGBA, adjacent []color.RGBA, delta func(mean, own float64) float64) (Inference, bool) {
	if len(adjacent) == 0 {
		return Inference{}, false
	}

	var sum float64
	for _, a := range adjacent {
		sum += Brightness(a)
	}
	d := delta(sum/float64(len(adjacent)), Brightness(clr))
	if d < BrightnessDelta {
		return Inference{}, false
	}

	excess := (d - BrightnessDelta) / 0.25
	if excess > 1 {
		excess = 1
	}
	confidence := 0.7 + 0.3*excess
	return NewInference(role, confidence), true
}

// InferFill matches large regions whose pixels are mostly interior.
func InferFill(pixels geometry.PixelSet, ctx Context) (Inference, bool) {
	if len(pixels) == 0 || ctx.SpriteWidth <= 0 || ctx.SpriteHeight <= 0 {
		return Inference{}, false
	}

	sizeRatio := float64(len(pixels)) / float64(ctx.SpriteWidth*ctx.SpriteHeight)
	if sizeRatio < FillMinSizeRatio {
		return Inference{}, false
	}

	interior := 0
	for p := range pixels {
		if ctx.isInterior(p) {
			interior++
		}
	}
	interiorRatio := float64(interior) / float64(len(pixels))
	if interiorRatio < FillMinInteriorRatio {
		return Inference{}, false
	}

	cappedSize := sizeRatio
	if cappedSize > 0.5 {
		cappedSize = 0.5
	}
	confidence := 0.4*2*cappedSize + 0.6*interiorRatio
	return NewInference(types.RoleFill, confidence), true
}

// Brightness computes perceptual brightness in [0, 1] from RGB channels.
func Brightness(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// GenerateWarning produces an advisory warning for a low-confidence
// inference, or false for confident ones.
func GenerateWarning(token string, inf Inference) (Warning, bool) {
	if !inf.IsLowConfidence() {
		return Warning{}, false
	}
	msg := fmt.Sprintf(
		"Low confidence (%.0f%%) inferring '%s' role for token '%s'. Consider specifying the role explicitly.",
		inf.Confidence*100, inf.Role, token,
	)
	return Warning{Token: token, Message: msg}, true
}

// RegionInput is one named region in a batch inference call. A nil color
// excludes the region from brightness comparisons.
type RegionInput struct {
	Pixels geometry.PixelSet
	Color  *color.RGBA
}

// InferBatch infers roles for a set of regions. The adjacent colors for each
// region's shadow/highlight probes are all other regions' colors. Warnings
// are returned in token order for deterministic output.
func InferBatch(regions map[string]RegionInput, ctx Context) (map[string]Inference, []Warning) {
	inferences := make(map[string]Inference, len(regions))

	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []Warning
	for _, name := range names {
		region := regions[name]

		// Adjacent colors are every distinct region color other than
		// this region's own value; comparing by value rather than name
		// keeps same-colored twins from shifting each other's mean.
		var adjacent []color.RGBA
		for _, other := range regions {
			if other.Color == nil {
				continue
			}
			if region.Color != nil && *other.Color == *region.Color {
				continue
			}
			adjacent = append(adjacent, *other.Color)
		}

		inf, ok := Infer(region.Pixels, ctx, region.Color, adjacent)
		if !ok {
			continue
		}
		inferences[name] = inf
		if w, warned := GenerateWarning(name, inf); warned {
			warnings = append(warnings, w)
		}
	}
	return inferences, warnings
}
