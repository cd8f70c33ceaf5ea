package symmetry

import "testing"

// buildRGBA packs per-pixel byte values into a tight RGBA buffer where each
// pixel's four channels carry the same value.
func buildRGBA(t *testing.T, values [][]byte) ([]byte, int, int) {
	t.Helper()
	height := len(values)
	width := len(values[0])
	buf := make([]byte, 0, width*height*4)
	for _, row := range values {
		if len(row) != width {
			t.Fatal("ragged fixture")
		}
		for _, v := range row {
			buf = append(buf, v, v, v, 255)
		}
	}
	return buf, width, height
}

func TestDetectXSymmetry(t *testing.T) {
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 2, 2, 1},
		{3, 4, 4, 3},
		{5, 6, 6, 5},
	})

	axis, ok := Detect(buf, w, h)
	if !ok {
		t.Fatal("expected symmetry")
	}
	if axis != AxisX {
		t.Errorf("axis = %v, want x", axis)
	}
}

func TestDetectYSymmetry(t *testing.T) {
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 2, 3},
		{4, 5, 6},
		{1, 2, 3},
	})

	axis, ok := Detect(buf, w, h)
	if !ok {
		t.Fatal("expected symmetry")
	}
	if axis != AxisY {
		t.Errorf("axis = %v, want y", axis)
	}
}

func TestDetectXYSymmetry(t *testing.T) {
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 2, 1},
		{3, 4, 3},
		{1, 2, 1},
	})

	axis, ok := Detect(buf, w, h)
	if !ok {
		t.Fatal("expected symmetry")
	}
	if axis != AxisXY {
		t.Errorf("axis = %v, want xy", axis)
	}
}

func TestDetectAsymmetric(t *testing.T) {
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	if _, ok := Detect(buf, w, h); ok {
		t.Error("asymmetric sprite must not match")
	}
}

func TestDetectOddWidthCenterColumnIgnored(t *testing.T) {
	// The center column mirrors onto itself and never breaks symmetry.
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 9, 1},
		{2, 7, 2},
	})

	axis, ok := Detect(buf, w, h)
	if !ok || axis != AxisX {
		t.Errorf("got (%v, %v), want (x, true)", axis, ok)
	}
}

func TestDetectAlphaBreaksSymmetry(t *testing.T) {
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 1},
		{2, 2},
	})
	buf[3] = 0 // alpha of top-left pixel

	if _, ok := Detect(buf, w, h); ok {
		t.Error("differing alpha must break symmetry")
	}
}

func TestDetectRejectsShortBuffer(t *testing.T) {
	buf := make([]byte, 4*4*4-1)
	if _, ok := Detect(buf, 4, 4); ok {
		t.Error("short buffer must be rejected")
	}
}

func TestDetectAcceptsLongerBuffer(t *testing.T) {
	buf, w, h := buildRGBA(t, [][]byte{
		{1, 1},
		{1, 1},
	})
	buf = append(buf, 0xAA, 0xBB) // trailing bytes ignored

	axis, ok := Detect(buf, w, h)
	if !ok || axis != AxisXY {
		t.Errorf("got (%v, %v), want (xy, true)", axis, ok)
	}
}

func TestDetectUniformBufferIsXY(t *testing.T) {
	// A single-color sprite mirrors trivially on both axes at any size.
	buf, w, h := buildRGBA(t, [][]byte{
		{7, 7, 7, 7, 7},
		{7, 7, 7, 7, 7},
		{7, 7, 7, 7, 7},
	})
	axis, ok := Detect(buf, w, h)
	if !ok || axis != AxisXY {
		t.Errorf("uniform 5x3 got (%v, %v), want (xy, true)", axis, ok)
	}

	single, w, h := buildRGBA(t, [][]byte{{9}})
	axis, ok = Detect(single, w, h)
	if !ok || axis != AxisXY {
		t.Errorf("uniform 1x1 got (%v, %v), want (xy, true)", axis, ok)
	}
}

func TestDetectRejectsZeroDimensions(t *testing.T) {
	if _, ok := Detect(nil, 0, 4); ok {
		t.Error("zero width must be rejected")
	}
	if _, ok := Detect(nil, 4, 0); ok {
		t.Error("zero height must be rejected")
	}
}

func TestDetectRejectsNegativeDimensions(t *testing.T) {
	buf := make([]byte, 64)
	if _, ok := Detect(buf, -3, 2); ok {
		t.Error("negative width must be rejected")
	}
	if _, ok := Detect(buf, 2, -3); ok {
		t.Error("negative height must be rejected")
	}
}

func TestAxisStrings(t *testing.T) {
	cases := map[Axis]string{AxisX: "x", AxisY: "y", AxisXY: "xy"}
	for axis, want := range cases {
		if got := axis.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", axis, got, want)
		}
	}
}
