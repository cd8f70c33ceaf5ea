// Package importer converts raster sprite images into declarative sprite
// definitions: a token palette, per-token regions, and optional semantic
// analysis (shapes, symmetry, roles, relationships, z-order, naming hints).
package importer

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/relationships"
	"github.com/spritelab/spritesem/pkg/roles"
	"github.com/spritelab/spritesem/pkg/symmetry"
	"github.com/spritelab/spritesem/pkg/types"
)

// Options controls what the import pipeline produces beyond the raw
// palette and regions.
type Options struct {
	// Analyze enables symmetry, role, relationship and z-order inference.
	Analyze bool
	// ConfidenceThreshold drops inferences below it (0 keeps everything).
	ConfidenceThreshold float64
	// Hints enables token naming suggestions; requires Analyze.
	Hints bool
	// ExtractShapes emits structured regions (rects, unions) instead of
	// raw point lists.
	ExtractShapes bool
	// HalfSprite exports only the primary half of symmetric sprites.
	HalfSprite bool
}

// Analysis holds the semantic results of an import run.
type Analysis struct {
	// Roles maps tokens to their inferred semantic roles.
	Roles map[string]types.Role
	// Relationships holds accepted relationship edges between tokens.
	Relationships []Relationship
	// Symmetry is the detected mirror axis, nil when asymmetric.
	Symmetry *symmetry.Axis
	// NamingHints suggests semantic token names.
	NamingHints []NamingHint
	// ZOrder maps tokens to render layers; higher draws on top.
	ZOrder map[string]int
	// Warnings carries low-confidence role advisories.
	Warnings []roles.Warning
}

// Result is the outcome of importing one sprite image.
type Result struct {
	Name              string
	Width             int
	Height            int
	Palette           map[string]string
	Grid              []string
	Regions           map[string][][2]int
	StructuredRegions map[string]StructuredRegion
	Analysis          *Analysis
	HalfSprite        bool
}

// Import converts an image into a sprite definition. Every distinct color
// becomes a token: fully transparent pixels map to "{_}", opaque colors to
// "{c1}", "{c2}", ... in row-major first-appearance order.
func Import(img image.Image, name string, opts Options) (*Result, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("import %q: empty image", name)
	}

	palette := make(map[string]string)
	regions := make(map[string][][2]int)
	tokenPixels := make(map[string]geometry.PixelSet)
	tokenColors := make(map[string]color.RGBA)
	colorToToken := make(map[color.RGBA]string)
	grid := make([]string, 0, height)

	colorNum := 1
	var rowBuilder []byte
	for y := 0; y < height; y++ {
		rowBuilder = rowBuilder[:0]
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)

			token, seen := colorToToken[c]
			if !seen {
				if c.A == 0 {
					token = "{_}"
				} else {
					token = fmt.Sprintf("{c%d}", colorNum)
					colorNum++
				}
				colorToToken[c] = token
				palette[token] = hexColor(c)
				tokenPixels[token] = make(geometry.PixelSet)
				tokenColors[token] = c
			}

			rowBuilder = append(rowBuilder, token...)
			regions[token] = append(regions[token], [2]int{x, y})
			tokenPixels[token].Add(geometry.Point{X: x, Y: y})
		}
		grid = append(grid, string(rowBuilder))
	}

	result := &Result{
		Name:       name,
		Width:      width,
		Height:     height,
		Palette:    palette,
		Grid:       grid,
		Regions:    regions,
		HalfSprite: opts.HalfSprite,
	}

	if opts.Analyze {
		result.Analysis = analyze(width, height, tokenPixels, tokenColors, opts)
	}

	if opts.ExtractShapes {
		structured, err := extractAllStructured(tokenPixels)
		if err != nil {
			return nil, fmt.Errorf("import %q: %w", name, err)
		}
		result.StructuredRegions = structured
	}

	return result, nil
}

// extractAllStructured converts every token's pixels to structured form,
// one goroutine per token with a deterministic reduce into the map.
func extractAllStructured(tokenPixels map[string]geometry.PixelSet) (map[string]StructuredRegion, error) {
	tokens := sortedTokens(tokenPixels)
	extracted := make([]StructuredRegion, len(tokens))

	var g errgroup.Group
	for i, token := range tokens {
		i := i
		pixels := tokenPixels[token]
		g.Go(func() error {
			extracted[i] = ExtractStructured(pixels)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]StructuredRegion, len(tokens))
	for i, token := range tokens {
		out[token] = extracted[i]
	}
	return out, nil
}

func analyze(width, height int, tokenPixels map[string]geometry.PixelSet, tokenColors map[string]color.RGBA, opts Options) *Analysis {
	analysis := &Analysis{
		Roles: make(map[string]types.Role),
	}

	// Rebuild the flat RGBA buffer from token data for symmetry detection.
	buf := make([]byte, width*height*4)
	for token, pixels := range tokenPixels {
		c, ok := tokenColors[token]
		if !ok {
			continue
		}
		for p := range pixels {
			idx := (p.Y*width + p.X) * 4
			buf[idx] = c.R
			buf[idx+1] = c.G
			buf[idx+2] = c.B
			buf[idx+3] = c.A
		}
	}
	if axis, ok := symmetry.Detect(buf, width, height); ok {
		analysis.Symmetry = &axis
	}

	roleInput := make(map[string]roles.RegionInput, len(tokenPixels))
	for token, pixels := range tokenPixels {
		input := roles.RegionInput{Pixels: pixels}
		if c, ok := tokenColors[token]; ok {
			clr := c
			input.Color = &clr
		}
		roleInput[token] = input
	}
	inferences, warnings := roles.InferBatch(roleInput, roles.NewContext(width, height))
	analysis.Warnings = warnings
	for token, inf := range inferences {
		if inf.Confidence >= opts.ConfidenceThreshold {
			analysis.Roles[token] = inf.Role
		}
	}

	regionData := make([]types.Region, 0, len(tokenPixels))
	for _, token := range sortedTokens(tokenPixels) {
		c := tokenColors[token]
		regionData = append(regionData, types.Region{Name: token, Pixels: tokenPixels[token], Color: c})
	}
	for _, rel := range relationships.InferBatch(regionData, width) {
		if rel.Confidence >= opts.ConfidenceThreshold {
			analysis.Relationships = append(analysis.Relationships, Relationship{
				Source: rel.Source,
				Kind:   rel.Kind,
				Target: rel.Target,
			})
		}
	}

	analysis.ZOrder = InferZOrder(sortedTokens(tokenPixels), analysis.Relationships)

	if opts.Hints {
		analysis.NamingHints = GenerateNamingHints(analysis.Roles, tokenPixels, tokenColors, width, height)
	}

	return analysis
}

func sortedTokens(tokenPixels map[string]geometry.PixelSet) []string {
	tokens := make([]string, 0, len(tokenPixels))
	for token := range tokenPixels {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// hexColor formats a color as #RRGGBB, or #RRGGBBAA when not fully opaque.
func hexColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
