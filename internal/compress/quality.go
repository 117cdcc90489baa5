package compress

import (
	"fmt"
	"math"

	"github.com/KaiTaiTong/content-aware-image-compression/internal/tree"
)

// namedLevel is one of the five fixed quality presets.
type namedLevel struct {
	similarity float64
	tolerance  float64
}

var namedLevels = map[string]namedLevel{
	"highest": {0.99, 0.025},
	"high":    {0.99, 0.05},
	"medium":  {0.99, 0.1},
	"low":     {0.95, 0.15},
	"lowest":  {0.90, 0.2},
}

// ConfigForQuality maps a scalar quality in [0, 1] to a pruning
// configuration. The exponents are chosen so similarity rises
// superlinearly near q=1 and tolerance falls sharply near q=0, so small
// changes in q near either end of the range are visible.
func ConfigForQuality(q float64) tree.PruneConfig {
	q = clamp01(q)
	similarity := 0.85 + 0.145*math.Pow(q, 1.5)
	tolerance := math.Max(0.005, 0.30*math.Pow(1-q, 2))
	return tree.PruneConfig{
		MinimumSimilarityPercentage: similarity,
		ColorToleranceThreshold:     tolerance,
	}
}

// ConfigForLevel maps one of {highest, high, medium, low, lowest} to its
// fixed pruning configuration.
func ConfigForLevel(level string) (tree.PruneConfig, error) {
	l, ok := namedLevels[level]
	if !ok {
		return tree.PruneConfig{}, fmt.Errorf("compress: unknown quality level %q", level)
	}
	return tree.PruneConfig{
		MinimumSimilarityPercentage: l.similarity,
		ColorToleranceThreshold:     l.tolerance,
	}, nil
}

// QualityName derives the named band for a scalar quality.
func QualityName(q float64) string {
	switch {
	case q >= 0.9:
		return "highest"
	case q >= 0.7:
		return "high"
	case q >= 0.3:
		return "medium"
	case q >= 0.1:
		return "low"
	default:
		return "lowest"
	}
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
