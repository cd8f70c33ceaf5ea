// Package symmetry detects mirror symmetry in RGBA pixel buffers.
package symmetry

import "bytes"

// Axis identifies the mirror axis of a symmetric sprite.
type Axis int

const (
	// AxisX mirrors left/right about the vertical centerline.
	AxisX Axis = iota
	// AxisY mirrors top/bottom about the horizontal centerline.
	AxisY
	// AxisXY mirrors about both centerlines.
	AxisXY
)

// String returns the axis's wire name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisXY:
		return "xy"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON/YAML output.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Detect checks a tightly packed RGBA buffer for exact mirror symmetry.
// Symmetry is exact byte equality of mirrored pixels, alpha included. The
// second return value is false when the sprite is asymmetric, a dimension is
// not positive, or the buffer is shorter than width*height*4 bytes; longer
// buffers are accepted with the excess ignored.
func Detect(buf []byte, width, height int) (Axis, bool) {
	if width <= 0 || height <= 0 || len(buf) < width*height*4 {
		return 0, false
	}

	symX := detectX(buf, width, height)
	symY := detectY(buf, width, height)

	switch {
	case symX && symY:
		return AxisXY, true
	case symX:
		return AxisX, true
	case symY:
		return AxisY, true
	default:
		return 0, false
	}
}

// detectX compares each pixel against its horizontal mirror.
func detectX(buf []byte, width, height int) bool {
	for y := 0; y < height; y++ {
		row := y * width * 4
		for x := 0; x < width/2; x++ {
			left := row + x*4
			right := row + (width-1-x)*4
			if !bytes.Equal(buf[left:left+4], buf[right:right+4]) {
				return false
			}
		}
	}
	return true
}

// detectY compares whole rows against their vertical mirrors.
func detectY(buf []byte, width, height int) bool {
	stride := width * 4
	for y := 0; y < height/2; y++ {
		top := y * stride
		bottom := (height - 1 - y) * stride
		if !bytes.Equal(buf[top:top+stride], buf[bottom:bottom+stride]) {
			return false
		}
	}
	return true
}
