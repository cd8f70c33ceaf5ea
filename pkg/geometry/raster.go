package geometry

import "sort"

// RasterizePoints collects explicit coordinates into a pixel set.
func RasterizePoints(points []Point) PixelSet {
	return NewPixelSet(points...)
}

// RasterizeLine rasterizes a digital line between two endpoints using
// Bresenham's algorithm. Both endpoints are always included.
func RasterizeLine(p0, p1 Point) PixelSet {
	pixels := make(PixelSet)

	x0, y0 := p0.X, p0.Y
	x1, y1 := p1.X, p1.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		pixels.Add(Point{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return pixels
}

// RasterizeRect rasterizes a filled rectangle with top-left corner (x, y).
// Non-positive dimensions yield an empty set.
func RasterizeRect(x, y, w, h int) PixelSet {
	pixels := make(PixelSet)
	if w <= 0 || h <= 0 {
		return pixels
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			pixels.Add(Point{X: x + dx, Y: y + dy})
		}
	}
	return pixels
}

// RasterizeStroke rasterizes a rectangle outline of the given thickness.
func RasterizeStroke(x, y, w, h, thickness int) PixelSet {
	pixels := make(PixelSet)
	if w <= 0 || h <= 0 || thickness <= 0 {
		return pixels
	}

	// Top and bottom edges.
	for dx := 0; dx < w; dx++ {
		for t := 0; t < min(thickness, h); t++ {
			pixels.Add(Point{X: x + dx, Y: y + t})
			pixels.Add(Point{X: x + dx, Y: y + h - 1 - t})
		}
	}
	// Left and right edges.
	for dy := 0; dy < h; dy++ {
		for t := 0; t < min(thickness, w); t++ {
			pixels.Add(Point{X: x + t, Y: y + dy})
			pixels.Add(Point{X: x + w - 1 - t, Y: y + dy})
		}
	}
	return pixels
}

// RasterizeEllipse rasterizes a filled ellipse centered at (cx, cy) with
// radii (rx, ry) using the midpoint algorithm with horizontal span fill.
func RasterizeEllipse(cx, cy, rx, ry int) PixelSet {
	pixels := make(PixelSet)
	if rx <= 0 || ry <= 0 {
		return pixels
	}

	rx64 := int64(rx)
	ry64 := int64(ry)
	rxSq := rx64 * rx64
	rySq := ry64 * ry64

	x := int64(0)
	y := ry64

	p1 := rySq - rxSq*ry64 + rxSq/4
	dx := 2 * rySq * x
	dy := 2 * rxSq * y

	// Region 1: slope magnitude below 1.
	for dx < dy {
		fillEllipseSpans(pixels, cx, cy, int(x), int(y))
		if p1 < 0 {
			x++
			dx += 2 * rySq
			p1 += dx + rySq
		} else {
			x++
			y--
			dx += 2 * rySq
			dy -= 2 * rxSq
			p1 += dx - dy + rySq
		}
	}

	// Region 2: slope magnitude of 1 and above.
	p2 := rySq*(x+1)*(x+1)/4 + rxSq*(y-1)*(y-1) - rxSq*rySq
	for y >= 0 {
		fillEllipseSpans(pixels, cx, cy, int(x), int(y))
		if p2 > 0 {
			y--
			dy -= 2 * rxSq
			p2 += rxSq - dy
		} else {
			x++
			y--
			dx += 2 * rySq
			dy -= 2 * rxSq
			p2 += dx - dy + rxSq
		}
	}
	return pixels
}

// fillEllipseSpans fills the two horizontal spans mirrored about the center.
func fillEllipseSpans(pixels PixelSet, cx, cy, x, y int) {
	for sx := -x; sx <= x; sx++ {
		pixels.Add(Point{X: cx + sx, Y: cy + y})
		pixels.Add(Point{X: cx + sx, Y: cy - y})
	}
}

// RasterizePolygon rasterizes a filled polygon using an even-odd scanline
// fill. Vertices are always included; fewer than three vertices yield an
// empty set.
func RasterizePolygon(vertices []Point) PixelSet {
	pixels := make(PixelSet)
	if len(vertices) < 3 {
		return pixels
	}

	minY := vertices[0].Y
	maxY := vertices[0].Y
	for _, v := range vertices {
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
		pixels.Add(v)
	}

	for y := minY; y <= maxY; y++ {
		var intersections []int

		for i := range vertices {
			v1 := vertices[i]
			v2 := vertices[(i+1)%len(vertices)]

			if v1.Y == v2.Y {
				// Horizontal edge at this scanline fills its whole span.
				if v1.Y == y {
					for x := min(v1.X, v2.X); x <= max(v1.X, v2.X); x++ {
						pixels.Add(Point{X: x, Y: y})
					}
				}
				continue
			}

			// Exclusive upper bound so a vertex shared by two edges is
			// counted once, by the edge it is the lower endpoint of.
			yMin := min(v1.Y, v2.Y)
			yMax := max(v1.Y, v2.Y)
			if y >= yMin && y < yMax {
				x := v1.X + (y-v1.Y)*(v2.X-v1.X)/(v2.Y-v1.Y)
				intersections = append(intersections, x)
			}
		}

		sort.Ints(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := intersections[i]; x <= intersections[i+1]; x++ {
				pixels.Add(Point{X: x, Y: y})
			}
		}
	}
	return pixels
}

// Union combines all pixels from the given regions.
func Union(regions []PixelSet) PixelSet {
	out := make(PixelSet)
	for _, region := range regions {
		for p := range region {
			out[p] = struct{}{}
		}
	}
	return out
}

// Subtract removes from base every pixel present in any removal region.
func Subtract(base PixelSet, removals []PixelSet) PixelSet {
	out := base.Clone()
	for _, removal := range removals {
		for p := range removal {
			delete(out, p)
		}
	}
	return out
}

// Intersect keeps only pixels present in every region. No regions yield an
// empty set; a single region yields a copy of it.
func Intersect(regions []PixelSet) PixelSet {
	if len(regions) == 0 {
		return make(PixelSet)
	}

	out := regions[0].Clone()
	for _, region := range regions[1:] {
		for p := range out {
			if !region.Contains(p) {
				delete(out, p)
			}
		}
	}
	return out
}

// IntersectionCount returns the number of pixels present in both sets.
func IntersectionCount(a, b PixelSet) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for p := range a {
		if b.Contains(p) {
			n++
		}
	}
	return n
}

// FloodFill fills all pixels reachable from the seed that are not part of
// the boundary, staying within the canvas (0..width, 0..height) using
// 4-connectivity. A nil seed triggers interior auto-detection from the
// boundary's bounding-box center. The boundary itself is never included.
func FloodFill(boundary PixelSet, seed *Point, canvasWidth, canvasHeight int) PixelSet {
	filled := make(PixelSet)
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return filled
	}

	var start Point
	if seed != nil {
		start = *seed
	} else {
		found, ok := findInteriorSeed(boundary, canvasWidth, canvasHeight)
		if !ok {
			return filled
		}
		start = found
	}

	if !isValidFillPoint(start, boundary, canvasWidth, canvasHeight) {
		return filled
	}

	queue := []Point{start}
	filled.Add(start)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, n := range neighbors4(p) {
			if isValidFillPoint(n, boundary, canvasWidth, canvasHeight) && !filled.Contains(n) {
				filled.Add(n)
				queue = append(queue, n)
			}
		}
	}
	return filled
}

// FloodFillExcept flood fills while also treating the except regions as
// obstacles.
func FloodFillExcept(boundary PixelSet, except []PixelSet, seed *Point, canvasWidth, canvasHeight int) PixelSet {
	combined := boundary.Clone()
	for _, region := range except {
		for p := range region {
			combined[p] = struct{}{}
		}
	}
	return FloodFill(combined, seed, canvasWidth, canvasHeight)
}

func isValidFillPoint(p Point, boundary PixelSet, canvasWidth, canvasHeight int) bool {
	return p.X >= 0 && p.X < canvasWidth && p.Y >= 0 && p.Y < canvasHeight && !boundary.Contains(p)
}

// findInteriorSeed tries the boundary bounding-box center first, then spirals
// outward in expanding squares.
func findInteriorSeed(boundary PixelSet, canvasWidth, canvasHeight int) (Point, bool) {
	if len(boundary) == 0 {
		if canvasWidth > 0 && canvasHeight > 0 {
			return Point{}, true
		}
		return Point{}, false
	}

	box, _ := BoundingBox(boundary)
	center := Point{X: (box.MinX + box.MaxX) / 2, Y: (box.MinY + box.MaxY) / 2}
	if isValidFillPoint(center, boundary, canvasWidth, canvasHeight) {
		return center, true
	}

	maxRadius := max(box.MaxX-box.MinX, box.MaxY-box.MinY)
	for radius := 1; radius <= maxRadius; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				p := Point{X: center.X + dx, Y: center.Y + dy}
				if isValidFillPoint(p, boundary, canvasWidth, canvasHeight) {
					return p, true
				}
			}
		}
	}
	return Point{}, false
}

func neighbors4(p Point) [4]Point {
	return [4]Point{
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
