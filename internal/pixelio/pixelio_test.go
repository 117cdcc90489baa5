package pixelio

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestFromImageToImageRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255},
		{10, 20, 30, 255}, {200, 200, 200, 128}, {0, 0, 0, 255},
	}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetRGBA(x, y, colors[i])
			i++
		}
	}

	g := FromImage(src)
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("got dims %dx%d, want 3x2", g.Width, g.Height)
	}

	out := ToImage(g)
	i = 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got := out.RGBAAt(x, y)
			want := colors[i]
			if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 ||
				absDiff(got.B, want.B) > 1 || absDiff(got.A, want.A) > 1 {
				t.Errorf("pixel (%d,%d) = %+v, want ~%+v", x, y, got, want)
			}
			i++
		}
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

func TestEncodeDecodePNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 100, A: 255})
		}
	}
	g := FromImage(src)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := Encode(path, g); err != nil {
		t.Fatalf("unexpected error encoding: %v", err)
	}

	got, err := Decode(path)
	if err != nil {
		t.Fatalf("unexpected error decoding: %v", err)
	}
	if !g.Equal(got) {
		t.Errorf("decoded grid does not match original after PNG round trip")
	}
}

func TestCompressFile(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 10, G: 200, B: 10, A: 255})
		}
	}
	g := FromImage(src)

	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.png")
	if err := Encode(inPath, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outPath := filepath.Join(dir, "out.png")
	res, err := CompressFile(inPath, outPath, 0.5, 0.007)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CompressedRegions != 1 {
		t.Errorf("expected 1 region for a uniform image, got %d", res.CompressedRegions)
	}

	if _, err := Decode(outPath); err != nil {
		t.Errorf("expected output file to be decodable, got error: %v", err)
	}
}
