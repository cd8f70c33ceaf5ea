package importer

import (
	"image/color"
	"math"
)

// LabColor is a color in CIE Lab space, used for perceptual color checks
// when suggesting token names.
type LabColor struct {
	L float64
	A float64
	B float64
}

// LabFromRGB converts sRGB channels to Lab under the D65 illuminant.
func LabFromRGB(r, g, b uint8) LabColor {
	rl := srgbToLinear(float64(r) / 255.0)
	gl := srgbToLinear(float64(g) / 255.0)
	bl := srgbToLinear(float64(b) / 255.0)

	x := rl*0.4124564 + gl*0.3575761 + bl*0.1804375
	y := rl*0.2126729 + gl*0.7151522 + bl*0.0721750
	z := rl*0.0193339 + gl*0.1191920 + bl*0.9503041

	// D65 reference white.
	fx := labF(x / 0.95047)
	fy := labF(y / 1.00000)
	fz := labF(z / 1.08883)

	return LabColor{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// Distance is the CIE76 Delta E between two Lab colors.
func (c LabColor) Distance(other LabColor) float64 {
	dl := c.L - other.L
	da := c.A - other.A
	db := c.B - other.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3.0*delta*delta) + 4.0/29.0
}

// isSkinTone reports whether a color falls in the Lab band typical of skin
// tones: moderate lightness, reddish, moderately yellowish.
func isSkinTone(c color.RGBA) bool {
	lab := LabFromRGB(c.R, c.G, c.B)
	return lab.L > 40.0 && lab.L < 90.0 && lab.A > 5.0 && lab.A < 40.0 && lab.B > 5.0 && lab.B < 50.0
}

// isDarkColor reports whether a color is dark enough to suggest outline,
// shadow or hair.
func isDarkColor(c color.RGBA) bool {
	return LabFromRGB(c.R, c.G, c.B).L < 35.0
}

// isLightColor reports whether a color is light enough to suggest a
// highlight or reflection.
func isLightColor(c color.RGBA) bool {
	return LabFromRGB(c.R, c.G, c.B).L > 85.0
}
