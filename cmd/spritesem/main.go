package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spritelab/spritesem/internal/config"
	"github.com/spritelab/spritesem/internal/utils"
	"github.com/spritelab/spritesem/pkg/importer"
)

func main() {
	var in, outDir, name, configPath string
	var analyze, hints, shapes, half, structured bool
	var threshold float64
	var preview int

	flag.StringVar(&in, "in", "", "input sprite image path (png/gif/bmp/webp) or directory")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&name, "name", "", "sprite name (defaults to the input file name)")
	flag.StringVar(&configPath, "config", "", "config file path (defaults to "+config.GetConfigPath()+")")

	flag.BoolVar(&analyze, "analyze", true, "infer symmetry, roles, relationships and z-order")
	flag.BoolVar(&hints, "hints", false, "generate token naming hints")
	flag.BoolVar(&shapes, "shapes", false, "extract structured regions (rects, unions) instead of raw points")
	flag.BoolVar(&half, "half", false, "export only the primary half of symmetric sprites")
	flag.BoolVar(&structured, "structured", true, "emit annotated JSONL with roles, relationships and z-order")
	flag.Float64Var(&threshold, "threshold", 0.5, "confidence threshold for inferences (0.0-1.0)")
	flag.IntVar(&preview, "preview", 0, "write an upscaled preview image at this factor (0=off)")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in sprite.png [-out outdir] [-name hero] [-hints] [-shapes] [-half] [-threshold 0.7]", filepath.Base(os.Args[0]))
	}

	cfg := loadConfig(configPath)
	applyFlagOverrides(cfg, analyze, hints, shapes, half, structured, threshold)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := utils.EnsureDir(outDir); err != nil {
		log.Fatal(err)
	}

	inputs := collectInputs(in)
	if len(inputs) == 0 {
		log.Fatalf("no importable sprite files under %s", in)
	}

	for _, path := range inputs {
		spriteName := name
		if spriteName == "" || len(inputs) > 1 {
			spriteName = utils.SanitizeName(path)
		}
		if err := importOne(path, spriteName, outDir, cfg, preview); err != nil {
			log.Printf("import %s failed: %v", path, err)
		}
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		path = config.GetConfigPath()
		if !utils.FileExists(path) {
			return config.Default()
		}
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// applyFlagOverrides folds explicitly set flags over the config file values.
func applyFlagOverrides(cfg *config.Config, analyze, hints, shapes, half, structured bool, threshold float64) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["analyze"] {
		cfg.Import.Analyze = analyze
	}
	if set["hints"] {
		cfg.Import.Hints = hints
	}
	if set["shapes"] {
		cfg.Import.ExtractShapes = shapes
	}
	if set["half"] {
		cfg.Import.HalfSprite = half
	}
	if set["structured"] {
		cfg.Output.StructuredForm = structured
	}
	if set["threshold"] {
		cfg.Import.ConfidenceThreshold = threshold
	}
}

func collectInputs(in string) []string {
	info, err := os.Stat(in)
	if err != nil {
		log.Fatal(err)
	}
	if !info.IsDir() {
		return []string{in}
	}
	files, err := utils.ListSpriteFiles(in)
	if err != nil {
		log.Fatal(err)
	}
	return files
}

func importOne(path, name, outDir string, cfg *config.Config, preview int) error {
	img, err := importer.LoadImage(path)
	if err != nil {
		return err
	}

	opts := importer.Options{
		Analyze:             cfg.Import.Analyze,
		ConfidenceThreshold: cfg.Import.ConfidenceThreshold,
		Hints:               cfg.Import.Hints,
		ExtractShapes:       cfg.Import.ExtractShapes,
		HalfSprite:          cfg.Import.HalfSprite,
	}
	result, err := importer.Import(img, name, opts)
	if err != nil {
		return err
	}

	if a := result.Analysis; a != nil {
		if a.Symmetry != nil {
			log.Printf("%s: symmetry=%s", name, a.Symmetry)
		}
		log.Printf("%s: %d tokens, %d roles, %d relationships", name, len(result.Palette), len(a.Roles), len(a.Relationships))
		for _, w := range a.Warnings {
			log.Printf("%s: %s", name, w.Message)
		}
		for _, h := range a.NamingHints {
			log.Printf("%s: rename %s -> %s (%s)", name, h.Token, h.SuggestedName, h.Reason)
		}
	}

	var jsonl string
	if cfg.Output.StructuredForm {
		jsonl, err = result.ToStructuredJSONL()
	} else {
		jsonl, err = result.ToJSONL()
	}
	if err != nil {
		return err
	}

	outPath := utils.GenerateOutputFilename(path, outDir, cfg.Output.Suffix, "jsonl")
	if err := os.WriteFile(outPath, []byte(jsonl+"\n"), 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s", outPath)

	if preview > 0 {
		previewPath := filepath.Join(outDir, fmt.Sprintf("%s_preview.png", name))
		if err := importer.SavePreview(img, previewPath, preview); err != nil {
			log.Printf("preview save failed: %v", err)
		} else {
			log.Printf("wrote %s", previewPath)
		}
	}

	return nil
}
