package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tourweave/panoengine"
	"github.com/tourweave/panoengine/internal/config"
	"github.com/tourweave/panoengine/internal/utils"
	"github.com/tourweave/panoengine/pkg/capability"
	"github.com/tourweave/panoengine/pkg/stitcher"
	"github.com/tourweave/panoengine/pkg/validator"
)

func main() {
	var mode, in, outDir, method, layout, format, cfgPath string
	var overlap float64
	var quality int
	var withThumb, verbose bool

	flag.StringVar(&mode, "mode", "convert", "operation: validate|convert|stitch|thumb|methods")
	flag.StringVar(&in, "in", "", "input image path(s); comma-separated for stitch")
	flag.StringVar(&outDir, "out", "", "output directory")
	flag.StringVar(&method, "method", "", "conversion method: perspective|cylindrical|tile_repeat|ai_depth")
	flag.StringVar(&layout, "layout", "", "stitch layout: horizontal|vertical|panoramic")
	flag.StringVar(&format, "format", "", "output format: jpg|png|webp")
	flag.Float64Var(&overlap, "overlap", -1, "stitch overlap fraction [0,1)")
	flag.IntVar(&quality, "quality", 0, "JPEG output quality (1-100)")
	flag.StringVar(&cfgPath, "config", "", "config file path (JSON)")
	flag.BoolVar(&withThumb, "thumb", false, "also generate a preview thumbnail")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	if mode != "methods" && in == "" {
		log.Fatalf("usage: %s -mode validate|convert|stitch|thumb|methods -in input.jpg[,input2.jpg] [-out outdir] [-method perspective] [-layout horizontal] [-overlap 0.2] [-quality 85] [-format jpg]",
			filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := loaded.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
		cfg = loaded
	}
	if method == "" {
		method = cfg.Conversion.DefaultMethod
	}
	if layout == "" {
		layout = cfg.Stitch.DefaultLayout
	}
	if overlap < 0 {
		overlap = cfg.Stitch.DefaultOverlap
	}
	if outDir == "" {
		outDir = cfg.Output.OutputDir
	}
	if format == "" {
		format = cfg.Output.Format
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer l.Sync()
		logger = l
	}

	engine := panoengine.NewWithLimits(nativeCapability(), validator.Limits{
		MinWidth:       cfg.Validation.MinWidth,
		MinHeight:      cfg.Validation.MinHeight,
		MaxSizeBytes:   cfg.Validation.MaxSizeBytes,
		MinAspectRatio: cfg.Validation.MinAspectRatio,
		MaxAspectRatio: cfg.Validation.MaxAspectRatio,
	})
	engine.SetLogger(logger)
	if quality == 0 {
		quality = cfg.Conversion.Quality
	}
	engine.SetConversionQuality(quality)

	if mode == "methods" {
		js, _ := json.MarshalIndent(engine.Methods(), "", "  ")
		fmt.Println(string(js))
		return
	}

	if err := utils.EnsureDir(outDir); err != nil {
		log.Fatal(err)
	}

	inputs := strings.Split(in, ",")
	for _, path := range inputs {
		if !utils.FileExists(path) {
			log.Fatalf("Input file not found: %s", path)
		}
		if !utils.IsImageFile(path) {
			log.Fatalf("Not an image file: %s", path)
		}
	}

	switch mode {
	case "validate":
		runValidate(engine, inputs[0])
	case "convert":
		runConvert(engine, inputs[0], outDir, method, format, quality, withThumb)
	case "stitch":
		runStitch(engine, inputs, outDir, format, quality, stitcher.Options{
			Layout:  layout,
			Overlap: overlap,
			Quality: cfg.Stitch.DefaultQuality,
		}, withThumb)
	case "thumb":
		runThumb(engine, inputs[0], outDir, format, quality, cfg.Output.ThumbnailWidth, cfg.Output.ThumbnailHeight)
	default:
		log.Fatalf("Unknown mode: %s (use validate, convert, stitch, thumb or methods)", mode)
	}
}

// nativeCapability is the single startup selection point for the host's
// image support. Deployments without working codecs swap in
// capability.NewUnavailable() here.
func nativeCapability() capability.Capability {
	return capability.NewNative()
}

func runValidate(engine *panoengine.Engine, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	report := engine.Validate(data)
	js, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(js))

	for _, rec := range engine.Recommend(report) {
		fmt.Printf("recommended: %s (%s)\n", rec.Method, rec.Reason)
	}

	if !report.IsValid {
		os.Exit(1)
	}
}

func runConvert(engine *panoengine.Engine, path, outDir, method, format string, quality int, withThumb bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	report := engine.Validate(data)
	if !report.IsValid {
		log.Fatalf("photo validation failed: %v", report.Issues)
	}

	result, err := engine.Convert(data, method)
	if err != nil {
		log.Fatal(err)
	}

	outPath := writeOutput(engine, result.Bytes, path, outDir, method, format, quality)
	log.Printf("wrote %s (%dx%d, %s)", outPath, result.Dimensions.Width, result.Dimensions.Height, result.Method)

	if withThumb {
		writeThumbnail(engine, result.Bytes, path, outDir, format, quality)
	}
}

func runStitch(engine *panoengine.Engine, paths []string, outDir, format string, quality int, opts stitcher.Options, withThumb bool) {
	if len(paths) < 2 {
		log.Fatalf("stitch needs at least 2 comma-separated inputs")
	}

	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		images = append(images, data)
	}

	result := engine.Stitch(images, opts)
	if !result.Success {
		log.Fatalf("stitch failed: %s", result.Error)
	}

	outPath := writeOutput(engine, result.Bytes, paths[0], outDir, result.Method, format, quality)
	log.Printf("wrote %s (%dx%d, %s)", outPath, result.Dimensions.Width, result.Dimensions.Height, result.Method)

	if withThumb {
		writeThumbnail(engine, result.Bytes, paths[0], outDir, format, quality)
	}
}

func runThumb(engine *panoengine.Engine, path, outDir, format string, quality, width, height int) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	thumb, err := engine.ThumbnailSized(data, width, height)
	if err != nil {
		log.Fatal(err)
	}

	outPath := writeOutput(engine, thumb, path, outDir, "thumb", format, quality)
	log.Printf("wrote %s (%dx%d)", outPath, width, height)
}

// writeOutput re-encodes an engine buffer to the requested format and
// persists it under the generated output name.
func writeOutput(engine *panoengine.Engine, data []byte, srcPath, outDir, tag, format string, quality int) string {
	encoded, err := engine.Export(data, format, quality)
	if err != nil {
		log.Fatal(err)
	}
	outPath := utils.GenerateOutputFilename(srcPath, outDir, tag, format)
	if err := os.WriteFile(outPath, encoded, 0644); err != nil {
		log.Fatal(err)
	}
	return outPath
}

func writeThumbnail(engine *panoengine.Engine, data []byte, srcPath, outDir, format string, quality int) {
	thumb, err := engine.Thumbnail(data)
	if err != nil {
		log.Printf("thumbnail failed: %v", err)
		return
	}
	encoded, err := engine.Export(thumb, format, quality)
	if err != nil {
		log.Printf("thumbnail export failed: %v", err)
		return
	}
	thumbPath := utils.GenerateOutputFilename(srcPath, outDir, "thumb", format)
	if err := os.WriteFile(thumbPath, encoded, 0644); err != nil {
		log.Printf("thumbnail save failed: %v", err)
		return
	}
	log.Printf("wrote %s", thumbPath)
}
