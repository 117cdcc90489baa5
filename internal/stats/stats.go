// Package stats builds the integral-image statistics structure: five
// summed-area tables over an HSLA grid that answer O(1) rectangle queries
// for area, mean color, hue histogram, and hue entropy.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/KaiTaiTong/content-aware-image-compression/internal/grid"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/hsla"
)

// HueBins is the number of hue-histogram buckets, each spanning 10 degrees.
const HueBins = 36

// entropyMinArea is a defensive lower bound; rectangle queries below it
// return zero entropy rather than dividing by zero.
const entropyMinArea = 1

// Tables holds the five prefix-sum tables built from a single row-major
// sweep of a grid. It is immutable after Build returns, so its queries are
// pure and safe to call from multiple goroutines concurrently.
type Tables struct {
	width, height int
	hx, hy, s, l  []float64
	hist          [HueBins][]float64
}

// Build computes the integral-statistics tables for g in a single pass.
func Build(g *grid.Grid) *Tables {
	w, h := g.Width, g.Height
	t := &Tables{width: w, height: h}
	if w == 0 || h == 0 {
		return t
	}

	n := w * h
	t.hx = make([]float64, n)
	t.hy = make([]float64, n)
	t.s = make([]float64, n)
	t.l = make([]float64, n)
	for b := range t.hist {
		t.hist[b] = make([]float64, n)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p, _ := g.At(x, y)
			rad := p.H * math.Pi / 180
			hx := p.S * math.Cos(rad)
			hy := p.S * math.Sin(rad)
			bin := int(p.H / 10)
			if bin > HueBins-1 {
				bin = HueBins - 1
			}

			idx := y*w + x
			left := t.left(t.hx, x, y)
			top := t.top(t.hx, x, y)
			topLeft := t.topLeft(t.hx, x, y)
			t.hx[idx] = hx + left + top - topLeft

			left = t.left(t.hy, x, y)
			top = t.top(t.hy, x, y)
			topLeft = t.topLeft(t.hy, x, y)
			t.hy[idx] = hy + left + top - topLeft

			left = t.left(t.s, x, y)
			top = t.top(t.s, x, y)
			topLeft = t.topLeft(t.s, x, y)
			t.s[idx] = p.S + left + top - topLeft

			left = t.left(t.l, x, y)
			top = t.top(t.l, x, y)
			topLeft = t.topLeft(t.l, x, y)
			t.l[idx] = p.L + left + top - topLeft

			for b := 0; b < HueBins; b++ {
				left = t.left(t.hist[b], x, y)
				top = t.top(t.hist[b], x, y)
				topLeft = t.topLeft(t.hist[b], x, y)
				count := 0.0
				if b == bin {
					count = 1
				}
				t.hist[b][idx] = count + left + top - topLeft
			}
		}
	}

	return t
}

func (t *Tables) at(table []float64, x, y int) float64 {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return 0
	}
	return table[y*t.width+x]
}

func (t *Tables) left(table []float64, x, y int) float64     { return t.at(table, x-1, y) }
func (t *Tables) top(table []float64, x, y int) float64      { return t.at(table, x, y-1) }
func (t *Tables) topLeft(table []float64, x, y int) float64  { return t.at(table, x-1, y-1) }

// rectSum applies the standard inclusion-exclusion identity over a prefix
// table for the given inclusive rectangle.
func (t *Tables) rectSum(table []float64, r grid.Rectangle) float64 {
	a := t.at(table, r.LRX, r.LRY)
	b := t.at(table, r.ULX-1, r.LRY)
	c := t.at(table, r.LRX, r.ULY-1)
	d := t.at(table, r.ULX-1, r.ULY-1)
	return a - b - c + d
}

// Area returns the pixel count of a rectangle.
func (t *Tables) Area(r grid.Rectangle) int {
	return r.Area()
}

// MeanColor returns the rectangle's representative color: the mean
// luminance and saturation, and the circular (saturation-weighted) mean
// hue, recovered via atan2 so it degenerates gracefully on low-saturation
// regions instead of averaging cyclic hue angles directly.
func (t *Tables) MeanColor(r grid.Rectangle) hsla.HSLA {
	n := float64(t.Area(r))
	if n <= 0 {
		return hsla.HSLA{}
	}

	sumHx := t.rectSum(t.hx, r)
	sumHy := t.rectSum(t.hy, r)
	sumS := t.rectSum(t.s, r)
	sumL := t.rectSum(t.l, r)

	meanHx := sumHx / n
	meanHy := sumHy / n
	meanS := sumS / n
	meanL := sumL / n

	h := math.Atan2(meanHy, meanHx) * 180 / math.Pi
	if h < 0 {
		h += 360
	}

	return hsla.HSLA{H: h, S: meanS, L: meanL, A: 1.0}
}

// HueHistogram returns the per-bin pixel counts within the rectangle.
func (t *Tables) HueHistogram(r grid.Rectangle) [HueBins]float64 {
	var out [HueBins]float64
	for b := 0; b < HueBins; b++ {
		out[b] = t.rectSum(t.hist[b], r)
	}
	return out
}

// Entropy returns the Shannon entropy, in bits, of the rectangle's hue-bin
// distribution. It is 0 for an empty rectangle and lies in [0, log2(36)]
// otherwise.
func (t *Tables) Entropy(r grid.Rectangle) float64 {
	n := t.Area(r)
	if n < entropyMinArea {
		return 0
	}

	hist := t.HueHistogram(r)
	probs := make([]float64, HueBins)
	for i, c := range hist {
		probs[i] = c / float64(n)
	}

	// stat.Entropy computes Shannon entropy in nats, treating zero
	// probabilities as contributing 0; convert to bits.
	return stat.Entropy(probs) / math.Ln2
}
