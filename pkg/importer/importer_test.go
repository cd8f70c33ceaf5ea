package importer

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/symmetry"
	"github.com/spritelab/spritesem/pkg/types"
)

var (
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	transparent = color.RGBA{}
)

// buildImage creates a test image from a color grid.
func buildImage(rows [][]color.RGBA) *image.RGBA {
	h := len(rows)
	w := len(rows[0])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, row := range rows {
		for x, c := range row {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestImportTokenAssignment(t *testing.T) {
	img := buildImage([][]color.RGBA{
		{red, transparent},
		{transparent, blue},
	})

	result, err := Import(img, "tiny", Options{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Width != 2 || result.Height != 2 {
		t.Errorf("size = %dx%d, want 2x2", result.Width, result.Height)
	}
	// Scan order: red first, then transparent, then blue.
	if got := result.Palette["{c1}"]; got != "#FF0000" {
		t.Errorf("{c1} = %q, want #FF0000", got)
	}
	if got := result.Palette["{c2}"]; got != "#0000FF" {
		t.Errorf("{c2} = %q, want #0000FF", got)
	}
	if got := result.Palette["{_}"]; got != "#00000000" {
		t.Errorf("{_} = %q, want #00000000", got)
	}

	if len(result.Grid) != 2 || result.Grid[0] != "{c1}{_}" || result.Grid[1] != "{_}{c2}" {
		t.Errorf("unexpected grid: %v", result.Grid)
	}

	if got := result.Regions["{c1}"]; len(got) != 1 || got[0] != [2]int{0, 0} {
		t.Errorf("{c1} region = %v", got)
	}
	if got := result.Regions["{_}"]; len(got) != 2 {
		t.Errorf("{_} region = %v", got)
	}
}

func TestImportRejectsEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Import(img, "empty", Options{}); err == nil {
		t.Fatal("expected error for empty image")
	}
}

func TestImportAnalysisSymmetry(t *testing.T) {
	// Left-right symmetric 4x2 sprite.
	img := buildImage([][]color.RGBA{
		{red, blue, blue, red},
		{blue, red, red, blue},
	})

	result, err := Import(img, "sym", Options{Analyze: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Analysis == nil {
		t.Fatal("expected analysis")
	}
	if result.Analysis.Symmetry == nil || *result.Analysis.Symmetry != symmetry.AxisX {
		t.Errorf("symmetry = %v, want x", result.Analysis.Symmetry)
	}
}

func TestImportAnalysisRolesAndThreshold(t *testing.T) {
	// 8x8 sprite: dark outline frame around a bright body.
	dark := color.RGBA{R: 20, G: 20, B: 20, A: 255}
	bright := color.RGBA{R: 240, G: 220, B: 200, A: 255}
	rows := make([][]color.RGBA, 8)
	for y := 0; y < 8; y++ {
		rows[y] = make([]color.RGBA, 8)
		for x := 0; x < 8; x++ {
			if x == 0 || y == 0 || x == 7 || y == 7 {
				rows[y][x] = dark
			} else {
				rows[y][x] = bright
			}
		}
	}

	result, err := Import(buildImage(rows), "framed", Options{Analyze: true, ConfidenceThreshold: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	a := result.Analysis
	if a.Roles["{c1}"] != types.RoleBoundary {
		t.Errorf("{c1} role = %v, want boundary", a.Roles["{c1}"])
	}

	// An impossible threshold keeps every inference out.
	strict, err := Import(buildImage(rows), "framed", Options{Analyze: true, ConfidenceThreshold: 1.1})
	if err != nil {
		t.Fatal(err)
	}
	if len(strict.Analysis.Roles) != 0 {
		t.Errorf("roles above threshold 1.1: %v", strict.Analysis.Roles)
	}
}

func TestImportStructuredRegions(t *testing.T) {
	// 8x8 solid red: one component, exact rect.
	rows := make([][]color.RGBA, 8)
	for y := range rows {
		rows[y] = make([]color.RGBA, 8)
		for x := range rows[y] {
			rows[y][x] = red
		}
	}

	result, err := Import(buildImage(rows), "solid", Options{ExtractShapes: true})
	if err != nil {
		t.Fatal(err)
	}

	region, ok := result.StructuredRegions["{c1}"]
	if !ok {
		t.Fatal("missing structured region for {c1}")
	}
	if region.Kind != RegionRect || region.Rect != [4]int{0, 0, 8, 8} {
		t.Errorf("unexpected region: %+v", region)
	}
}

func TestExtractStructuredSmallComponentStaysPoints(t *testing.T) {
	pixels := geometry.RasterizeRect(0, 0, 3, 3) // 9 < 16 pixels

	region := ExtractStructured(pixels)
	if region.Kind != RegionPoints {
		t.Fatalf("kind = %v, want points", region.Kind)
	}
	if len(region.Points) != 9 {
		t.Errorf("points = %d, want 9", len(region.Points))
	}
}

func TestExtractStructuredUnion(t *testing.T) {
	// Two disconnected 4x4 blocks.
	pixels := geometry.Union([]geometry.PixelSet{
		geometry.RasterizeRect(0, 0, 4, 4),
		geometry.RasterizeRect(8, 0, 4, 4),
	})

	region := ExtractStructured(pixels)
	if region.Kind != RegionUnion {
		t.Fatalf("kind = %v, want union", region.Kind)
	}
	if len(region.Parts) != 2 {
		t.Errorf("parts = %d, want 2", len(region.Parts))
	}
	for _, part := range region.Parts {
		if part.Kind != RegionRect {
			t.Errorf("part kind = %v, want rect", part.Kind)
		}
	}
}

func TestExtractStructuredNonRectComponent(t *testing.T) {
	// An L shape of 24 pixels does not fill its bounding box.
	pixels := geometry.Union([]geometry.PixelSet{
		geometry.RasterizeRect(0, 0, 2, 8),
		geometry.RasterizeRect(2, 6, 4, 2),
	})

	region := ExtractStructured(pixels)
	if region.Kind != RegionPoints {
		t.Fatalf("kind = %v, want points fallback", region.Kind)
	}
	if len(region.Points) != len(pixels) {
		t.Errorf("points = %d, want %d", len(region.Points), len(pixels))
	}
}

func TestFilterPointsHalf(t *testing.T) {
	points := [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}

	// Odd width keeps the center column.
	left := FilterPointsHalf(points, symmetry.AxisX, 5, 1)
	if len(left) != 3 {
		t.Errorf("left half = %v, want x < 3", left)
	}

	vertical := [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}}
	top := FilterPointsHalf(vertical, symmetry.AxisY, 1, 4)
	if len(top) != 2 {
		t.Errorf("top half = %v, want y < 2", top)
	}

	grid := [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	quarter := FilterPointsHalf(grid, symmetry.AxisXY, 4, 4)
	if len(quarter) != 1 || quarter[0] != [2]int{0, 0} {
		t.Errorf("quarter = %v, want [[0 0]]", quarter)
	}
}

func TestFilterStructuredHalfRect(t *testing.T) {
	region := StructuredRegion{Kind: RegionRect, Rect: [4]int{0, 0, 8, 4}}

	clipped := FilterStructuredHalf(region, symmetry.AxisX, 8, 4)
	if clipped.Kind != RegionRect || clipped.Rect != [4]int{0, 0, 4, 4} {
		t.Errorf("unexpected clip: %+v", clipped)
	}

	// A rect entirely in the mirrored half clips to nothing.
	right := StructuredRegion{Kind: RegionRect, Rect: [4]int{5, 0, 3, 4}}
	gone := FilterStructuredHalf(right, symmetry.AxisX, 8, 4)
	if !gone.isEmptyPoints() {
		t.Errorf("expected empty points, got %+v", gone)
	}
}

func TestFilterStructuredHalfUnionDropsEmptyParts(t *testing.T) {
	region := StructuredRegion{Kind: RegionUnion, Parts: []StructuredRegion{
		{Kind: RegionRect, Rect: [4]int{0, 0, 2, 2}},
		{Kind: RegionRect, Rect: [4]int{6, 0, 2, 2}},
	}}

	filtered := FilterStructuredHalf(region, symmetry.AxisX, 8, 2)
	// The right part clips away, leaving a single rect.
	if filtered.Kind != RegionRect || filtered.Rect != [4]int{0, 0, 2, 2} {
		t.Errorf("unexpected filter result: %+v", filtered)
	}
}

func TestInferZOrder(t *testing.T) {
	tokens := []string{"{c1}", "{c2}", "{c3}", "{c4}"}
	rels := []Relationship{
		{Source: "{c2}", Kind: types.ContainedWithin, Target: "{c1}"},
		{Source: "{c3}", Kind: types.ContainedWithin, Target: "{c2}"},
		{Source: "{c2}", Kind: types.AdjacentTo, Target: "{c4}"}, // ignored
	}

	z := InferZOrder(tokens, rels)
	if z["{c1}"] != 0 || z["{c2}"] != 1 || z["{c3}"] != 2 || z["{c4}"] != 0 {
		t.Errorf("unexpected z-order: %v", z)
	}
}

func TestInferZOrderCycle(t *testing.T) {
	tokens := []string{"a", "b"}
	rels := []Relationship{
		{Source: "a", Kind: types.ContainedWithin, Target: "b"},
		{Source: "b", Kind: types.ContainedWithin, Target: "a"},
	}

	// The re-entrant lookup bottoms out at 0: "b" resolves against that to
	// z=1 and "a" stacks above it to z=2. No token recurses forever.
	z := InferZOrder(tokens, rels)
	if z["b"] != 1 || z["a"] != 2 {
		t.Errorf("unexpected z-order for cycle: %v", z)
	}
}

func TestToJSONL(t *testing.T) {
	img := buildImage([][]color.RGBA{
		{red, transparent},
		{transparent, red},
	})
	result, err := Import(img, "checker", Options{})
	if err != nil {
		t.Fatal(err)
	}

	out, err := result.ToJSONL()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("jsonl lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"type":"palette"`) || !strings.Contains(lines[0], "checker_palette") {
		t.Errorf("unexpected palette line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"type":"sprite"`) || !strings.Contains(lines[1], `"regions"`) {
		t.Errorf("unexpected sprite line: %s", lines[1])
	}
	if strings.Contains(lines[1], `"grid"`) {
		t.Error("jsonl must not carry the grid")
	}
}

func TestToStructuredJSONLHalfSprite(t *testing.T) {
	// X-symmetric (but not Y-symmetric) sprite with half-sprite export.
	img := buildImage([][]color.RGBA{
		{red, blue, blue, red},
		{blue, red, red, blue},
	})
	result, err := Import(img, "mirror", Options{Analyze: true, HalfSprite: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Analysis.Symmetry == nil {
		t.Fatal("expected symmetry")
	}

	out, err := result.ToStructuredJSONL()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"symmetry":"x"`) {
		t.Errorf("missing symmetry marker: %s", out)
	}
	// Right-half points (x >= 2) must be filtered out.
	if strings.Contains(out, "[3,0]") || strings.Contains(out, "[3,1]") {
		t.Errorf("right half leaked into output: %s", out)
	}
}

func TestGenerateNamingHints(t *testing.T) {
	// 16x16: dark hair block at top center, single bright pixel at center.
	dark := color.RGBA{R: 15, G: 10, B: 10, A: 255}
	gleam := color.RGBA{R: 250, G: 250, B: 250, A: 255}

	pixels := map[string]geometry.PixelSet{
		"{c1}": geometry.RasterizeRect(5, 0, 6, 3),
		"{c2}": geometry.NewPixelSet(geometry.Point{X: 8, Y: 8}),
	}
	colors := map[string]color.RGBA{"{c1}": dark, "{c2}": gleam}

	hints := GenerateNamingHints(nil, pixels, colors, 16, 16)

	byToken := make(map[string]NamingHint)
	for _, h := range hints {
		byToken[h.Token] = h
	}
	if got := byToken["{c1}"].SuggestedName; got != "{hair}" {
		t.Errorf("{c1} suggestion = %q, want {hair}", got)
	}
	if got := byToken["{c2}"].SuggestedName; got != "{gleam}" {
		t.Errorf("{c2} suggestion = %q, want {gleam}", got)
	}
}

func TestGenerateNamingHintsSkipsNearMatches(t *testing.T) {
	dark := color.RGBA{R: 15, G: 10, B: 10, A: 255}
	pixels := map[string]geometry.PixelSet{
		"{hairs}": geometry.RasterizeRect(5, 0, 6, 3),
	}
	colors := map[string]color.RGBA{"{hairs}": dark}

	hints := GenerateNamingHints(nil, pixels, colors, 16, 16)
	for _, h := range hints {
		if h.Token == "{hairs}" {
			t.Errorf("near-match token still hinted: %+v", h)
		}
	}
}

func TestGenerateNamingHintsSkipsTransparent(t *testing.T) {
	pixels := map[string]geometry.PixelSet{
		"{_}": geometry.RasterizeRect(0, 0, 16, 16),
	}
	hints := GenerateNamingHints(nil, pixels, nil, 16, 16)
	if len(hints) != 0 {
		t.Errorf("transparent token hinted: %v", hints)
	}
}

func TestAnalyzePosition(t *testing.T) {
	// Background: full coverage.
	bg := geometry.RasterizeRect(0, 0, 16, 16)
	if pos, _ := AnalyzePosition(bg, 16, 16); pos != PositionSurrounding {
		t.Errorf("full coverage position = %v, want surrounding", pos)
	}

	// Centered block.
	center := geometry.RasterizeRect(6, 7, 4, 3)
	if pos, _ := AnalyzePosition(center, 16, 16); pos != PositionCenter {
		t.Errorf("centered position = %v, want center", pos)
	}

	// Top center block.
	top := geometry.RasterizeRect(6, 0, 4, 3)
	if pos, _ := AnalyzePosition(top, 16, 16); pos != PositionTopCenter {
		t.Errorf("top position = %v, want top center", pos)
	}
}

func TestLabFromRGB(t *testing.T) {
	white := LabFromRGB(255, 255, 255)
	if white.L < 99.9 || white.L > 100.1 {
		t.Errorf("white L = %v, want 100", white.L)
	}
	black := LabFromRGB(0, 0, 0)
	if black.L != 0 {
		t.Errorf("black L = %v, want 0", black.L)
	}
	red := LabFromRGB(255, 0, 0)
	if red.A <= 0 {
		t.Errorf("red a* = %v, want positive", red.A)
	}
}
