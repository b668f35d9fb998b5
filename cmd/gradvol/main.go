package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"volumegradient/pkg/config"
	"volumegradient/pkg/gradient"
	"volumegradient/pkg/loader"
	"volumegradient/pkg/visualization"
)

// probeList collects repeated -probe x,y,z flags
type probeList []r3.Vec

func (p *probeList) String() string {
	parts := make([]string, len(*p))
	for i, v := range *p {
		parts[i] = fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
	}
	return strings.Join(parts, " ")
}

func (p *probeList) Set(value string) error {
	v, err := parseProbe(value)
	if err != nil {
		return err
	}
	*p = append(*p, v)
	return nil
}

// parseProbe parses "x,y,z" into a voxel-space coordinate
func parseProbe(value string) (r3.Vec, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 3 {
		return r3.Vec{}, fmt.Errorf("probe %q must have the form x,y,z", value)
	}
	var c [3]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("probe %q: %w", value, err)
		}
		c[i] = n
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "gradvol.yaml", "YAML configuration file")
	inputDir := flag.String("input", "", "Directory containing 2D JPEG slices (overrides config)")
	sliceGap := flag.Float64("gap", 0, "Inter-slice gap in mm (overrides config when positive)")
	mode := flag.String("mode", "", "Interpolation mode: nearest, linear or cubic (overrides config)")
	extractSlices := flag.Bool("extract-slices", false, "Save gradient magnitude slices along all axes")
	slicesDir := flag.String("slices-dir", "", "Directory to save magnitude slices (overrides config)")
	var probes probeList
	flag.Var(&probes, "probe", "Voxel-space position x,y,z to sample (repeatable)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *sliceGap > 0 {
		cfg.Input.SliceGap = *sliceGap
	}
	if *mode != "" {
		m, err := gradient.ParseInterpolationMode(*mode)
		if err != nil {
			log.Fatalf("Invalid -mode: %v", err)
		}
		cfg.Gradient.InterpolationMode = m
	}
	if *extractSlices {
		cfg.Output.SaveSlices = true
	}
	if *slicesDir != "" {
		cfg.Output.SlicesDir = *slicesDir
	}
	for _, p := range cfg.Probes {
		probes = append(probes, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
	}

	// Validate inputs
	if cfg.Input.Dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("Step 1: Loading input slices...")
	vol, slices, err := loader.LoadSlices(cfg.Input.Dir, cfg.Input.SliceGap)
	if err != nil {
		log.Fatalf("Failed to load slices: %v", err)
	}
	if cfg.Output.Verbose {
		fmt.Printf("Loaded %d slices with dimensions %dx%d\n", len(slices), vol.Width, vol.Height)
		fmt.Printf("Inter-slice gap: %.1f mm\n", cfg.Input.SliceGap)
	}

	fmt.Println("Step 2: Computing gradient volume...")
	startTime := time.Now()
	field, err := gradient.New(vol)
	if err != nil {
		log.Fatalf("Failed to compute gradient volume: %v", err)
	}
	field.SetInterpolationMode(cfg.Gradient.InterpolationMode)

	w, h, d := field.Dims()
	stats := field.MagnitudeStats()
	fmt.Printf("Gradient volume %dx%dx%d computed in %.2f seconds\n", w, h, d, time.Since(startTime).Seconds())
	fmt.Printf("Magnitude min: %.6f  max: %.6f  mean: %.6f  stddev: %.6f\n",
		stats.Min, stats.Max, stats.Mean, stats.StdDev)

	if len(probes) > 0 {
		fmt.Printf("\nSampling %d probes (%s interpolation):\n", len(probes), field.InterpolationMode())
		for _, p := range probes {
			g, err := field.Sample(p)
			if err != nil {
				log.Fatalf("Sampling failed: %v", err)
			}
			n := g.Normal()
			fmt.Printf("(%g, %g, %g): dir=(%.6f, %.6f, %.6f) magnitude=%.6f normalized=%.3f normal=(%.3f, %.3f, %.3f)\n",
				p.X, p.Y, p.Z, g.Dir.X, g.Dir.Y, g.Dir.Z, g.Magnitude,
				field.NormalizedMagnitude(g.Magnitude), n.X, n.Y, n.Z)
		}
	}

	if cfg.Output.SaveSlices {
		fmt.Println("\nStep 3: Saving gradient magnitude slices...")
		viewer := visualization.NewViewer(field)
		for _, axis := range []string{"x", "y", "z"} {
			axisDir := filepath.Join(cfg.Output.SlicesDir, axis)
			if cfg.Output.Verbose {
				fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)
			}
			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}
		fmt.Println("Slice extraction completed!")
	}
}
