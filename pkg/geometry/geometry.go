// Package geometry provides the integer pixel-lattice primitives shared by
// the sprite analysis engine: sparse pixel sets, bounding boxes, centroids,
// convex hulls, and the reference rasterizers used both to generate fixtures
// and as acceptance shapes for the classifier.
package geometry

import "sort"

// Point is a single integer pixel coordinate.
type Point struct {
	X int
	Y int
}

// PixelSet is an unordered set of pixel coordinates. Order never affects
// analysis output; negative coordinates are valid.
type PixelSet map[Point]struct{}

// NewPixelSet creates a pixel set from the given points, dropping duplicates.
func NewPixelSet(points ...Point) PixelSet {
	ps := make(PixelSet, len(points))
	for _, p := range points {
		ps[p] = struct{}{}
	}
	return ps
}

// Add inserts a point into the set.
func (ps PixelSet) Add(p Point) {
	ps[p] = struct{}{}
}

// Contains reports whether the point is in the set.
func (ps PixelSet) Contains(p Point) bool {
	_, ok := ps[p]
	return ok
}

// Clone returns an independent copy of the set.
func (ps PixelSet) Clone() PixelSet {
	out := make(PixelSet, len(ps))
	for p := range ps {
		out[p] = struct{}{}
	}
	return out
}

// Points returns the set's points in an unspecified order.
func (ps PixelSet) Points() []Point {
	out := make([]Point, 0, len(ps))
	for p := range ps {
		out = append(out, p)
	}
	return out
}

// SortedPoints returns the set's points sorted by (y, x). Useful when a
// deterministic traversal is required.
func (ps PixelSet) SortedPoints() []Point {
	out := ps.Points()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Box is an inclusive axis-aligned bounding box.
type Box struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// Width returns the box width in pixels.
func (b Box) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the box height in pixels.
func (b Box) Height() int { return b.MaxY - b.MinY + 1 }

// ContainsBox reports whether other lies entirely within b.
func (b Box) ContainsBox(other Box) bool {
	return other.MinX >= b.MinX && other.MinY >= b.MinY &&
		other.MaxX <= b.MaxX && other.MaxY <= b.MaxY
}

// Scaled returns the box scaled by an integer factor.
func (b Box) Scaled(factor int) Box {
	return Box{
		MinX: b.MinX * factor,
		MinY: b.MinY * factor,
		MaxX: (b.MaxX+1)*factor - 1,
		MaxY: (b.MaxY+1)*factor - 1,
	}
}

// BoundingBox computes the tight axis-aligned bounds of a pixel set.
// The second return value is false iff the set is empty.
func BoundingBox(pixels PixelSet) (Box, bool) {
	if len(pixels) == 0 {
		return Box{}, false
	}

	first := true
	var box Box
	for p := range pixels {
		if first {
			box = Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			first = false
			continue
		}
		if p.X < box.MinX {
			box.MinX = p.X
		}
		if p.X > box.MaxX {
			box.MaxX = p.X
		}
		if p.Y < box.MinY {
			box.MinY = p.Y
		}
		if p.Y > box.MaxY {
			box.MaxY = p.Y
		}
	}
	return box, true
}

// Centroid computes the arithmetic mean position of a pixel set.
// The third return value is false iff the set is empty.
func Centroid(pixels PixelSet) (float64, float64, bool) {
	if len(pixels) == 0 {
		return 0, 0, false
	}

	var sumX, sumY int64
	for p := range pixels {
		sumX += int64(p.X)
		sumY += int64(p.Y)
	}
	n := float64(len(pixels))
	return float64(sumX) / n, float64(sumY) / n, true
}

// ConvexHull extracts the convex hull vertices of a pixel set using a Graham
// scan. An empty set yields an empty slice; collinear interior points are
// dropped, so a triangle-shaped blob yields at least three vertices.
func ConvexHull(pixels PixelSet) []Point {
	if len(pixels) == 0 {
		return nil
	}

	points := pixels.Points()

	// Lowest point first, leftmost on ties.
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})

	start := points[0]

	// Remaining points by polar angle around the start, nearer first when
	// collinear.
	rest := points[1:]
	sort.Slice(rest, func(i, j int) bool {
		c := cross(start, rest[i], rest[j])
		if c == 0 {
			di := distSq(start, rest[i])
			dj := distSq(start, rest[j])
			return di < dj
		}
		return c > 0
	})

	hull := make([]Point, 0, len(points))
	for _, p := range points {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull
}

// cross computes the z component of (a-o) x (b-o).
func cross(o, a, b Point) int64 {
	return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
}

func distSq(a, b Point) int64 {
	dx := int64(b.X - a.X)
	dy := int64(b.Y - a.Y)
	return dx*dx + dy*dy
}
