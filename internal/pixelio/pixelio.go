// Package pixelio is the external pixel decoder/encoder collaborator: it
// converts between on-disk raster files and the core's HSLA grid, and
// between arbitrary image.Image values and RGBA bytes. Decoding and
// encoding themselves are explicitly out of the compression core's scope;
// this package is the boundary spec.md describes at the interface level.
package pixelio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"

	"github.com/KaiTaiTong/content-aware-image-compression/internal/compress"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/grid"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/hsla"
)

func init() {
	// Registers .qoi alongside the PNG decoder that image/png registers,
	// so image.Decode transparently accepts either container.
	image.RegisterFormat("qoi", "qoif", qoi.Decode, qoi.DecodeConfig)
}

// Decode reads a raster file from path and converts it to an HSLA grid.
func Decode(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pixelio: opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("pixelio: decoding %s: %w", path, err)
	}

	return FromImage(img), nil
}

// Encode writes an HSLA grid to path, choosing the container format from
// the file extension. Unrecognized or missing extensions default to PNG.
func Encode(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pixelio: creating %s: %w", path, err)
	}
	defer f.Close()

	img := ToImage(g)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi":
		if err := qoi.Encode(f, img); err != nil {
			return fmt.Errorf("pixelio: encoding %s: %w", path, err)
		}
	default:
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("pixelio: encoding %s: %w", path, err)
		}
	}

	return nil
}

// FromImage converts an arbitrary image.Image into an HSLA grid, per
// spec.md's RGB->HSLA conversion.
func FromImage(img image.Image) *grid.Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	g := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := rgba.RGBAAt(x, y)
			g.Set(x, y, hsla.RGBToHSLA(hsla.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}))
		}
	}
	return g
}

// ToImage converts an HSLA grid back into an *image.RGBA, per spec.md's
// HSLA->RGB conversion.
func ToImage(g *grid.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p, _ := g.At(x, y)
			rgb := p.ToRGB()
			img.SetRGBA(x, y, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: rgb.A})
		}
	}
	return img
}

// CompressFile decodes inPath, runs the compression pipeline at the given
// quality, encodes the result to outPath, and re-decodes what was just
// written to confirm it round-trips within equalityTolerance of the
// rendered grid — the convenience path the original C++ compressor exposed
// directly on top of its PNG boundary. res.ProcessingTimeSeconds is left as
// compress.Compress set it (statistics build through render); it is not
// re-stamped with this function's own decode/encode/verify time.
func CompressFile(inPath, outPath string, quality compress.Quality, equalityTolerance float64) (*compress.Result, error) {
	g, err := Decode(inPath)
	if err != nil {
		return nil, err
	}

	res, err := compress.Compress(g, quality)
	if err != nil {
		return nil, err
	}

	if err := Encode(outPath, res.Grid); err != nil {
		return nil, err
	}

	roundTrip, err := Decode(outPath)
	if err != nil {
		return nil, fmt.Errorf("pixelio: verifying %s: %w", outPath, err)
	}
	if !res.Grid.EqualWithTolerance(roundTrip, equalityTolerance) {
		return nil, fmt.Errorf("pixelio: %s does not round-trip within tolerance %v of the rendered output", outPath, equalityTolerance)
	}

	return res, nil
}
