package compress

import (
	"math"
	"testing"

	"github.com/KaiTaiTong/content-aware-image-compression/internal/grid"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/hsla"
)

func TestConfigForQualityEndpoints(t *testing.T) {
	c0 := ConfigForQuality(0.0)
	if math.Abs(c0.MinimumSimilarityPercentage-0.85) > 1e-9 || math.Abs(c0.ColorToleranceThreshold-0.30) > 1e-9 {
		t.Errorf("configFor(0.0) = %+v, want (0.85, 0.30)", c0)
	}

	c1 := ConfigForQuality(1.0)
	if math.Abs(c1.MinimumSimilarityPercentage-0.995) > 1e-9 || math.Abs(c1.ColorToleranceThreshold-0.005) > 1e-9 {
		t.Errorf("configFor(1.0) = %+v, want (0.995, 0.005)", c1)
	}
}

func TestConfigForQualityMonotonic(t *testing.T) {
	prevSim, prevTol := -1.0, 2.0
	for i := 0; i <= 10; i++ {
		q := float64(i) / 10
		c := ConfigForQuality(q)
		if c.MinimumSimilarityPercentage < prevSim {
			t.Errorf("similarity not non-decreasing at q=%v: %v < %v", q, c.MinimumSimilarityPercentage, prevSim)
		}
		if c.ColorToleranceThreshold > prevTol {
			t.Errorf("tolerance not non-increasing at q=%v: %v > %v", q, c.ColorToleranceThreshold, prevTol)
		}
		prevSim, prevTol = c.MinimumSimilarityPercentage, c.ColorToleranceThreshold
	}
}

func TestQualityNameBands(t *testing.T) {
	cases := map[float64]string{
		0.0:  "lowest",
		0.15: "low",
		0.35: "medium",
		0.75: "high",
		0.95: "highest",
	}
	for q, want := range cases {
		if got := QualityName(q); got != want {
			t.Errorf("QualityName(%v) = %q, want %q", q, got, want)
		}
	}
}

func TestConfigForLevelKnownAndUnknown(t *testing.T) {
	cfg, err := ConfigForLevel("highest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinimumSimilarityPercentage != 0.99 || cfg.ColorToleranceThreshold != 0.025 {
		t.Errorf("got %+v, want (0.99, 0.025)", cfg)
	}
	if _, err := ConfigForLevel("ultra"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}

func TestCompressUniformImage(t *testing.T) {
	g := grid.New(4, 4)
	c := hsla.RGBToHSLA(hsla.RGBA{R: 200, G: 50, B: 50, A: 255})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, c)
		}
	}

	res, err := Compress(g, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CompressedRegions != 1 {
		t.Errorf("expected a single region for a uniform image, got %d", res.CompressedRegions)
	}
	if res.CompressionRatio != 1.0/16 {
		t.Errorf("got ratio %v, want 1/16", res.CompressionRatio)
	}
	if res.OriginalPixels != 16 {
		t.Errorf("got %d original pixels, want 16", res.OriginalPixels)
	}
}

func TestCompressEmptyImage(t *testing.T) {
	g := grid.New(0, 0)
	res, err := Compress(g, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CompressedRegions != 0 || res.CompressionRatio != 0 {
		t.Errorf("expected zero regions and ratio for an empty image, got %+v", res)
	}
}

func TestCompressAcceptsNamedLevel(t *testing.T) {
	g := grid.New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, hsla.HSLA{H: float64((x + y) * 30 % 360), S: 0.5, L: 0.5, A: 1})
		}
	}
	if _, err := Compress(g, "medium"); err != nil {
		t.Fatalf("unexpected error compressing with a named level: %v", err)
	}
	if _, err := Compress(g, "not-a-level"); err == nil {
		t.Fatalf("expected an error for an unrecognized named level")
	}
}
