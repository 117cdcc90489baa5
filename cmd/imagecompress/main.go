// Command imagecompress batch-compresses every raster in a directory using
// the content-aware compression core, writing one output per input named
// after the quality it was produced at.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KaiTaiTong/content-aware-image-compression/internal/archive"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/compress"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/config"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/pixelio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("imagecompress", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML config file with defaults")
	concurrency := fs.Int("concurrency", 0, "max images compressed in parallel (0 = use config/default)")
	archiveFlag := fs.Bool("archive", false, "bundle outputs into <output_dir>/batch.tar.zst when done")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: imagecompress [flags] <input_dir> <output_dir> [quality]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if len(positional) < 2 || len(positional) > 3 {
		fs.Usage()
		return 1
	}
	inputDir, outputDir := positional[0], positional[1]

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("warning: could not load config %s: %v; using defaults", *configPath, err)
		} else {
			cfg = loaded
		}
	}
	if *concurrency > 0 {
		cfg.Concurrency = *concurrency
	}
	if *archiveFlag {
		cfg.Archive = true
	}

	quality := resolveQuality(positional, cfg.DefaultQuality)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Printf("fatal: could not create output directory %s: %v", outputDir, err)
		return 1
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		log.Printf("fatal: could not read input directory %s: %v", inputDir, err)
		return 1
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".png" || ext == ".qoi" {
			inputs = append(inputs, filepath.Join(inputDir, e.Name()))
		}
	}

	outputs := processBatch(inputs, outputDir, quality, cfg.Concurrency, cfg.EqualityTolerance)

	if cfg.Archive && len(outputs) > 0 {
		archivePath := filepath.Join(outputDir, "batch.tar.zst")
		if err := archive.Write(archivePath, outputs); err != nil {
			log.Printf("warning: could not write archive %s: %v", archivePath, err)
		} else {
			log.Printf("wrote archive %s", archivePath)
		}
	}

	return 0
}

// resolveQuality parses the optional third positional argument as a
// decimal in [0, 1] or a named level. An absent value yields
// defaultQuality; an out-of-range or unrecognized value falls back to
// defaultQuality with a warning.
func resolveQuality(positional []string, defaultQuality float64) compress.Quality {
	if len(positional) < 3 {
		return defaultQuality
	}

	raw := positional[2]
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if f >= 0.0 && f <= 1.0 {
			return f
		}
		log.Printf("warning: quality %v out of range [0,1]; using default %v", f, defaultQuality)
		return defaultQuality
	}

	if _, err := compress.ConfigForLevel(raw); err == nil {
		return raw
	}

	log.Printf("warning: unrecognized quality %q; using default %v", raw, defaultQuality)
	return defaultQuality
}

// processBatch compresses each input file, writing to outputDir, bounded
// to at most concurrency images in flight at once. Per-file errors are
// reported and skipped without aborting the rest of the batch.
// equalityTolerance is the round-trip verification tau CompressFile checks
// each written file against.
func processBatch(inputs []string, outputDir string, quality compress.Quality, concurrency int, equalityTolerance float64) []string {
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var outputs []string

	for _, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(inPath string) {
			defer wg.Done()
			defer func() { <-sem }()

			outPath := outputPath(inPath, outputDir, quality)

			start := time.Now()
			res, err := pixelio.CompressFile(inPath, outPath, quality, equalityTolerance)
			if err != nil {
				log.Printf("error: %s: %v", inPath, err)
				return
			}

			log.Printf("%s -> %s (%d regions, ratio %.4f, %s)",
				inPath, outPath, res.CompressedRegions, res.CompressionRatio, time.Since(start))

			mu.Lock()
			outputs = append(outputs, outPath)
			mu.Unlock()
		}(in)
	}

	wg.Wait()
	return outputs
}

// outputPath derives <stem>_q<suffix>.png, where suffix is the scalar
// formatted to two decimals or the named level.
func outputPath(inPath, outputDir string, quality compress.Quality) string {
	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))

	var suffix string
	switch v := quality.(type) {
	case float64:
		suffix = fmt.Sprintf("%.2f", v)
	case string:
		suffix = v
	default:
		suffix = "custom"
	}

	return filepath.Join(outputDir, fmt.Sprintf("%s_q%s.png", stem, suffix))
}
