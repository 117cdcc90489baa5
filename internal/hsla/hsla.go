// Package hsla implements the perceptual color model used throughout the
// compression engine: HSLA pixels, conversion to and from 8-bit RGBA, and
// the two distance metrics the tree and grid rely on.
package hsla

import "math"

// epsilon guards the RGB->HSLA chroma delta against division by ~zero.
const epsilon = 1e-10

// DefaultEqualityTolerance is the pixel-equality threshold (tau) used by
// Grid and the tree unless a caller overrides it via config.
const DefaultEqualityTolerance = 0.007

// HSLA is a hue/saturation/luminance/alpha pixel in double precision.
// Hue is in degrees [0, 360); saturation, luminance, and alpha are in
// [0, 1]. When saturation is 0 the hue is undefined and stored as 0.
type HSLA struct {
	H, S, L, A float64
}

// RGBA is an 8-bit-per-channel pixel, as produced by a decoder.
type RGBA struct {
	R, G, B, A uint8
}

// RGBToHSLA converts an 8-bit RGBA pixel to the HSLA color model.
func RGBToHSLA(p RGBA) HSLA {
	r := float64(p.R) / 255
	g := float64(p.G) / 255
	b := float64(p.B) / 255
	a := float64(p.A) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	l := (max + min) / 2

	if delta < epsilon {
		return HSLA{H: 0, S: 0, L: l, A: a}
	}

	var s float64
	if l < 0.5 {
		s = delta / (max + min)
	} else {
		s = delta / (2 - max - min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default: // max == b
		h = (r-g)/delta + 4
	}
	h *= 60

	return NormalizeHSLA(HSLA{H: h, S: s, L: l, A: a})
}

// ToRGB converts an HSLA pixel back to 8-bit RGBA.
func (p HSLA) ToRGB() RGBA {
	a := uint8(math.Round(clamp01(p.A) * 255))

	if p.S < epsilon {
		v := uint8(math.Round(clamp01(p.L) * 255))
		return RGBA{R: v, G: v, B: v, A: a}
	}

	l := clamp01(p.L)
	s := clamp01(p.S)

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	pp := 2*l - q

	h := p.H / 360
	r := hueToRGB(pp, q, h+1.0/3)
	g := hueToRGB(pp, q, h)
	b := hueToRGB(pp, q, h-1.0/3)

	return RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: a,
	}
}

// hueToRGB implements the classic HSL->RGB per-channel helper.
func hueToRGB(p, q, t float64) float64 {
	t = math.Mod(t, 1)
	if t < 0 {
		t++
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// NormalizeHSLA reduces hue modulo 360 into [0, 360) and clamps saturation,
// luminance, and alpha into [0, 1]. It is idempotent.
func NormalizeHSLA(p HSLA) HSLA {
	h := math.Mod(p.H, 360)
	if h < 0 {
		h += 360
	}
	return HSLA{H: h, S: clamp01(p.S), L: clamp01(p.L), A: clamp01(p.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// cone projects an HSLA pixel onto 3-D cone coordinates used for the
// pixel-equality distance.
func cone(p HSLA) (x, y, z float64) {
	rad := p.H * math.Pi / 180
	x = math.Sin(rad) * p.S * p.L
	y = math.Cos(rad) * p.S * p.L
	z = p.L
	return
}

// PixelDistance is the cone-projection distance used for pixel equality.
// It is distinct from PruneColorDistance and the two are not
// interchangeable: this one drives Grid/tree equality, the other drives
// pruning.
func PixelDistance(a, b HSLA) float64 {
	ax, ay, az := cone(a)
	bx, by, bz := cone(b)
	dx, dy, dz := ax-bx, ay-by, az-bz
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Similar reports whether two pixels are within the given cone-projection
// distance of each other.
func Similar(a, b HSLA, tau float64) bool {
	return PixelDistance(a, b) < tau
}

// Equal is pixel similarity at the default tolerance (tau = 0.007); it is
// the only equality test used by the grid and the tree.
func Equal(a, b HSLA) bool {
	return Similar(a, b, DefaultEqualityTolerance)
}

// PruneColorDistance is the HSL-diff distance used only during pruning; it
// is unrelated to PixelDistance's cone projection.
func PruneColorDistance(a, b HSLA) float64 {
	dh := math.Abs(a.H - b.H)
	if dh > 180 {
		dh = 360 - dh
	}
	dh /= 180

	ds := a.S - b.S
	dl := a.L - b.L

	return math.Sqrt(dh*dh + ds*ds + dl*dl)
}
