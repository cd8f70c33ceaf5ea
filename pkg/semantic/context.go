// Package semantic assembles per-pixel semantic context from analyzed sprite
// regions: role masks, anchor pixels, containment edges, gradient pairs and
// adjacency boundaries. Downstream consumers (antialiasing, scaling) use it
// to make per-pixel decisions from meaning rather than raw color.
package semantic

import (
	"image/color"
	"sort"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/types"
)

// GradientPair is a color transition between a derived region and its base,
// such as skin to skin-shadow. Boundary pixels are candidates for smooth
// interpolation.
type GradientPair struct {
	SourceToken    string
	TargetToken    string
	SourceColor    color.RGBA
	TargetColor    color.RGBA
	BoundaryPixels []geometry.Point
}

// AdjacencyInfo tracks two regions sharing a boundary and the pixels along
// the shared edge.
type AdjacencyInfo struct {
	RegionA     string
	RegionB     string
	SharedEdges []geometry.Point
}

// Region is one rendered region offered to context extraction. A nil role
// means the region carries no role of its own; the roles map passed to
// Extract may still supply one.
type Region struct {
	Name   string
	Pixels geometry.PixelSet
	Color  color.RGBA
	Role   *types.Role
}

// Relation is one resolved relationship edge between two named regions.
type Relation struct {
	Source string
	Kind   types.RelationshipKind
	Target string
}

// Context provides per-pixel semantic lookups for a rendered sprite.
type Context struct {
	// RoleMasks maps each role to the pixels carrying it.
	RoleMasks map[types.Role]geometry.PixelSet

	// AnchorPixels is a fast lookup of all anchor-role pixels, which
	// smoothing passes must leave untouched.
	AnchorPixels geometry.PixelSet

	// AnchorBounds holds one bounding box per anchor region, used when
	// preserving anchors across scaling.
	AnchorBounds []geometry.Box

	// ContainmentEdges holds hard-boundary pixels that blending must not
	// cross.
	ContainmentEdges geometry.PixelSet

	// GradientPairs holds derivation boundaries eligible for smooth
	// interpolation.
	GradientPairs []GradientPair

	// Adjacencies holds shared-edge information between region pairs.
	Adjacencies []AdjacencyInfo
}

// Empty creates a context with no semantic information. Used when semantic
// guidance is disabled.
func Empty() *Context {
	return &Context{
		RoleMasks:        make(map[types.Role]geometry.PixelSet),
		AnchorPixels:     make(geometry.PixelSet),
		ContainmentEdges: make(geometry.PixelSet),
	}
}

// IsAnchor reports whether the pixel belongs to an anchor region.
func (c *Context) IsAnchor(p geometry.Point) bool {
	return c.AnchorPixels.Contains(p)
}

// IsContainmentEdge reports whether the pixel lies on a hard containment
// boundary.
func (c *Context) IsContainmentEdge(p geometry.Point) bool {
	return c.ContainmentEdges.Contains(p)
}

// RoleAt returns the semantic role covering the pixel, if any. When masks
// overlap, the lowest-valued role wins for a stable answer.
func (c *Context) RoleAt(p geometry.Point) (types.Role, bool) {
	found := false
	var best types.Role
	for role, mask := range c.RoleMasks {
		if !mask.Contains(p) {
			continue
		}
		if !found || role < best {
			best = role
			found = true
		}
	}
	return best, found
}

// GradientAt returns the gradient pair whose boundary covers the pixel, if
// any.
func (c *Context) GradientAt(p geometry.Point) (*GradientPair, bool) {
	for i := range c.GradientPairs {
		for _, bp := range c.GradientPairs[i].BoundaryPixels {
			if bp == p {
				return &c.GradientPairs[i], true
			}
		}
	}
	return nil, false
}

// IsAdjacencyBoundary reports whether the pixel lies on any shared edge
// between two regions.
func (c *Context) IsAdjacencyBoundary(p geometry.Point) bool {
	for _, adj := range c.Adjacencies {
		for _, edge := range adj.SharedEdges {
			if edge == p {
				return true
			}
		}
	}
	return false
}

// Scale expands the context by an integer factor so it matches an upscaled
// image: every pixel becomes a factor-by-factor block.
func (c *Context) Scale(factor int) *Context {
	out := &Context{
		RoleMasks:        make(map[types.Role]geometry.PixelSet, len(c.RoleMasks)),
		AnchorPixels:     scaleSet(c.AnchorPixels, factor),
		ContainmentEdges: scaleSet(c.ContainmentEdges, factor),
	}
	for role, mask := range c.RoleMasks {
		out.RoleMasks[role] = scaleSet(mask, factor)
	}
	for _, b := range c.AnchorBounds {
		out.AnchorBounds = append(out.AnchorBounds, b.Scaled(factor))
	}
	for _, g := range c.GradientPairs {
		out.GradientPairs = append(out.GradientPairs, GradientPair{
			SourceToken:    g.SourceToken,
			TargetToken:    g.TargetToken,
			SourceColor:    g.SourceColor,
			TargetColor:    g.TargetColor,
			BoundaryPixels: scalePoints(g.BoundaryPixels, factor),
		})
	}
	for _, a := range c.Adjacencies {
		out.Adjacencies = append(out.Adjacencies, AdjacencyInfo{
			RegionA:     a.RegionA,
			RegionB:     a.RegionB,
			SharedEdges: scalePoints(a.SharedEdges, factor),
		})
	}
	return out
}

func scaleSet(pixels geometry.PixelSet, factor int) geometry.PixelSet {
	out := make(geometry.PixelSet, len(pixels)*factor*factor)
	for p := range pixels {
		for dy := 0; dy < factor; dy++ {
			for dx := 0; dx < factor; dx++ {
				out.Add(geometry.Point{X: p.X*factor + dx, Y: p.Y*factor + dy})
			}
		}
	}
	return out
}

func scalePoints(points []geometry.Point, factor int) []geometry.Point {
	out := make([]geometry.Point, 0, len(points)*factor*factor)
	for _, p := range points {
		for dy := 0; dy < factor; dy++ {
			for dx := 0; dx < factor; dx++ {
				out = append(out, geometry.Point{X: p.X*factor + dx, Y: p.Y*factor + dy})
			}
		}
	}
	return out
}

// Extract builds a semantic context from rendered regions, resolved roles
// and relationship edges. A region's own role takes precedence over the
// roles map. Regions without explicit adjacency relations get auto-detected
// shared edges; iteration is name-ordered so output is deterministic.
func Extract(regions map[string]Region, roles map[string]types.Role, relations []Relation) *Context {
	ctx := Empty()

	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		region := regions[name]

		role, ok := resolveRole(region, roles)
		if !ok {
			continue
		}

		mask, exists := ctx.RoleMasks[role]
		if !exists {
			mask = make(geometry.PixelSet, len(region.Pixels))
			ctx.RoleMasks[role] = mask
		}
		for p := range region.Pixels {
			mask.Add(p)
		}

		if role == types.RoleAnchor {
			for p := range region.Pixels {
				ctx.AnchorPixels.Add(p)
			}
			if box, ok := geometry.BoundingBox(region.Pixels); ok {
				ctx.AnchorBounds = append(ctx.AnchorBounds, box)
			}
		}
	}

	for _, rel := range relations {
		source, okS := regions[rel.Source]
		target, okT := regions[rel.Target]
		if !okS || !okT {
			continue
		}

		switch rel.Kind {
		case types.DerivesFrom:
			boundary := BoundaryPixels(source.Pixels, target.Pixels)
			if len(boundary) > 0 {
				ctx.GradientPairs = append(ctx.GradientPairs, GradientPair{
					SourceToken:    rel.Source,
					TargetToken:    rel.Target,
					SourceColor:    source.Color,
					TargetColor:    target.Color,
					BoundaryPixels: boundary,
				})
			}
		case types.ContainedWithin:
			for _, p := range BoundaryPixels(source.Pixels, target.Pixels) {
				ctx.ContainmentEdges.Add(p)
			}
		case types.AdjacentTo:
			boundary := BoundaryPixels(source.Pixels, target.Pixels)
			if len(boundary) > 0 {
				ctx.Adjacencies = append(ctx.Adjacencies, AdjacencyInfo{
					RegionA:     rel.Source,
					RegionB:     rel.Target,
					SharedEdges: boundary,
				})
			}
		case types.PairedWith:
			// Mirror pairing carries no per-pixel context.
		}
	}

	// Auto-detect adjacencies not covered by explicit relations.
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if ctx.hasAdjacency(names[i], names[j]) {
				continue
			}
			boundary := BoundaryPixels(regions[names[i]].Pixels, regions[names[j]].Pixels)
			if len(boundary) > 0 {
				ctx.Adjacencies = append(ctx.Adjacencies, AdjacencyInfo{
					RegionA:     names[i],
					RegionB:     names[j],
					SharedEdges: boundary,
				})
			}
		}
	}

	return ctx
}

func resolveRole(region Region, roles map[string]types.Role) (types.Role, bool) {
	if region.Role != nil {
		return *region.Role, true
	}
	role, ok := roles[region.Name]
	return role, ok
}

func (c *Context) hasAdjacency(a, b string) bool {
	for _, adj := range c.Adjacencies {
		if (adj.RegionA == a && adj.RegionB == b) || (adj.RegionA == b && adj.RegionB == a) {
			return true
		}
	}
	return false
}

// BoundaryPixels returns the pixels of a that have a 4-neighbor in b,
// sorted by (y, x) for deterministic output.
func BoundaryPixels(a, b geometry.PixelSet) []geometry.Point {
	boundary := make(geometry.PixelSet)
	for p := range a {
		for _, n := range [4]geometry.Point{
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
			{X: p.X, Y: p.Y - 1},
			{X: p.X, Y: p.Y + 1},
		} {
			if b.Contains(n) {
				boundary.Add(p)
				break
			}
		}
	}
	return boundary.SortedPoints()
}
