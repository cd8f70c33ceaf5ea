// Package spritesem provides semantic analysis for pixel-art sprites.
//
// This package classifies sprite regions into primitive shapes, detects
// mirror symmetry, infers semantic roles (boundary, anchor, fill, shadow,
// highlight) and pairwise relationships (derives-from, contained-within,
// adjacent-to, paired-with), and assembles the results into a per-pixel
// semantic context for downstream tooling.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		spritesem "github.com/spritelab/spritesem"
//		"github.com/spritelab/spritesem/pkg/importer"
//	)
//
//	func main() {
//		engine := spritesem.New()
//
//		// Load a sprite image
//		img, err := importer.LoadImage("hero.png")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Import and analyze it
//		result, err := engine.ImportSprite(img, "hero")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		if a := result.Analysis; a != nil {
//			for token, role := range a.Roles {
//				fmt.Printf("%s: %s\n", token, role)
//			}
//		}
//
//		// Serialize to JSONL
//		jsonl, err := result.ToStructuredJSONL()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(jsonl)
//	}
//
// The package consists of these main components:
//
// 1. Shape classifier (pkg/shape): matches pixel sets against primitives
// 2. Symmetry detector (pkg/symmetry): finds mirror axes in RGBA buffers
// 3. Role inferrer (pkg/roles): assigns semantic roles per region
// 4. Relationship inferrer (pkg/relationships): links region pairs
// 5. Semantic context (pkg/semantic): per-pixel lookups for consumers
// 6. Importer (pkg/importer): converts images into sprite definitions
//
// All analysis is deterministic and threshold-exact: the same inputs always
// produce the same inferences, so generated sprite definitions are stable
// across runs.
package spritesem

import (
	"image"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/importer"
	"github.com/spritelab/spritesem/pkg/relationships"
	"github.com/spritelab/spritesem/pkg/roles"
	"github.com/spritelab/spritesem/pkg/shape"
	"github.com/spritelab/spritesem/pkg/symmetry"
	"github.com/spritelab/spritesem/pkg/types"
)

// Version of the sprite semantics library
const Version = "1.0.0"

// Engine provides a high-level interface to the analysis pipeline.
type Engine struct {
	options importer.Options
}

// New creates an Engine with default options: analysis enabled at the 0.5
// confidence threshold, no hints, raw point regions.
func New() *Engine {
	return &Engine{
		options: importer.Options{
			Analyze:             true,
			ConfidenceThreshold: 0.5,
		},
	}
}

// NewWithOptions creates an Engine with custom import options.
func NewWithOptions(opts importer.Options) *Engine {
	return &Engine{options: opts}
}

// ImportSprite converts an image into a sprite definition with analysis per
// the engine's options.
func (e *Engine) ImportSprite(img image.Image, name string) (*importer.Result, error) {
	return importer.Import(img, name, e.options)
}

// ClassifyShape matches a pixel set against the shape primitives.
func (e *Engine) ClassifyShape(pixels geometry.PixelSet) (shape.Shape, float64) {
	return shape.Detect(pixels)
}

// DetectSymmetry finds the mirror axis of a tightly packed RGBA buffer.
func (e *Engine) DetectSymmetry(buf []byte, width, height int) (symmetry.Axis, bool) {
	return symmetry.Detect(buf, width, height)
}

// InferRoles assigns semantic roles to named regions.
func (e *Engine) InferRoles(regions map[string]roles.RegionInput, width, height int) (map[string]roles.Inference, []roles.Warning) {
	return roles.InferBatch(regions, roles.NewContext(width, height))
}

// InferRelationships links region pairs, sorted by confidence descending.
func (e *Engine) InferRelationships(regions []types.Region, spriteWidth int) []relationships.Inference {
	return relationships.InferBatch(regions, spriteWidth)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
