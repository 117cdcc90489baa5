// Package grid implements the pixel grid: a bounds-checked, row-major raster
// of HSLA pixels, plus the Rectangle type shared by the statistics and tree
// packages.
package grid

import "github.com/KaiTaiTong/content-aware-image-compression/internal/hsla"

// defaultPixel is the value new cells (including those Resize exposes)
// take: opaque white.
var defaultPixel = hsla.HSLA{H: 0, S: 0, L: 1, A: 1}

// Rectangle is an inclusive, axis-aligned region. ULX <= LRX and
// ULY <= LRY are required for a rectangle to be valid.
type Rectangle struct {
	ULX, ULY, LRX, LRY int
}

// Width returns the rectangle's width in pixels.
func (r Rectangle) Width() int { return r.LRX - r.ULX + 1 }

// Height returns the rectangle's height in pixels.
func (r Rectangle) Height() int { return r.LRY - r.ULY + 1 }

// Area returns the number of pixels covered by the rectangle.
func (r Rectangle) Area() int { return r.Width() * r.Height() }

// Grid is a fixed-size, row-major raster of HSLA pixels.
type Grid struct {
	Width, Height int
	pixels        []hsla.HSLA
}

// New creates a W x H grid with every pixel set to opaque white.
func New(w, h int) *Grid {
	g := &Grid{Width: w, Height: h}
	if w > 0 && h > 0 {
		g.pixels = make([]hsla.HSLA, w*h)
		for i := range g.pixels {
			g.pixels[i] = defaultPixel
		}
	}
	return g
}

// Rect returns the rectangle covering the whole grid. Callers must not call
// this on an empty grid.
func (g *Grid) Rect() Rectangle {
	return Rectangle{ULX: 0, ULY: 0, LRX: g.Width - 1, LRY: g.Height - 1}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the pixel at (x, y) and true, or the zero pixel and false if
// (x, y) is out of bounds.
func (g *Grid) At(x, y int) (hsla.HSLA, bool) {
	if !g.inBounds(x, y) {
		return hsla.HSLA{}, false
	}
	return g.pixels[y*g.Width+x], true
}

// Set writes the pixel at (x, y), returning false without effect if the
// coordinate is out of bounds.
func (g *Grid) Set(x, y int, p hsla.HSLA) bool {
	if !g.inBounds(x, y) {
		return false
	}
	g.pixels[y*g.Width+x] = p
	return true
}

// Resize returns a new grid of the given dimensions, preserving pixels that
// overlap the original grid and filling any newly exposed cells with opaque
// white.
func (g *Grid) Resize(newW, newH int) *Grid {
	out := New(newW, newH)
	overlapW := min(g.Width, newW)
	overlapH := min(g.Height, newH)
	for y := 0; y < overlapH; y++ {
		for x := 0; x < overlapW; x++ {
			p, _ := g.At(x, y)
			out.Set(x, y, p)
		}
	}
	return out
}

// Equal reports whether two grids share dimensions and are pixelwise equal
// under the HSLA similarity test at the default tolerance (tau = 0.007).
func (g *Grid) Equal(other *Grid) bool {
	return g.EqualWithTolerance(other, hsla.DefaultEqualityTolerance)
}

// EqualWithTolerance reports whether two grids share dimensions and are
// pixelwise similar under the HSLA similarity test at the given tau. This
// is the hook callers needing a non-default tau (for example, a
// configured round-trip verification) go through instead of Equal.
func (g *Grid) EqualWithTolerance(other *Grid, tau float64) bool {
	if other == nil || g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i := range g.pixels {
		if !hsla.Similar(g.pixels[i], other.pixels[i], tau) {
			return false
		}
	}
	return true
}
