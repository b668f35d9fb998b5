package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"volumegradient/pkg/gradient"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Gradient.InterpolationMode != gradient.Linear {
		t.Errorf("Expected default mode linear, got %s", cfg.Gradient.InterpolationMode)
	}
	if cfg.Input.SliceGap != 1.0 {
		t.Errorf("Expected default slice gap 1.0, got %f", cfg.Input.SliceGap)
	}
	if cfg.Output.SlicesDir != "gradient_slices" {
		t.Errorf("Expected default slices dir, got %q", cfg.Output.SlicesDir)
	}
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradvol.yaml")
	content := `
input:
  dir: /data/brain
  sliceGap: 1.5
gradient:
  interpolationMode: Nearest
output:
  saveSlices: true
probes:
  - [1.5, 2, 3.25]
  - [0, 0, 0]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Input.Dir != "/data/brain" || cfg.Input.SliceGap != 1.5 {
		t.Errorf("Unexpected input section: %+v", cfg.Input)
	}
	if cfg.Gradient.InterpolationMode != gradient.NearestNeighbor {
		t.Errorf("Expected nearest mode, got %s", cfg.Gradient.InterpolationMode)
	}
	if !cfg.Output.SaveSlices {
		t.Error("Expected saveSlices to be true")
	}
	// untouched keys keep their defaults
	if !cfg.Output.Verbose || cfg.Output.SlicesDir != "gradient_slices" {
		t.Errorf("Expected default output values to survive, got %+v", cfg.Output)
	}
	if len(cfg.Probes) != 2 || cfg.Probes[0] != [3]float64{1.5, 2, 3.25} {
		t.Errorf("Unexpected probes: %v", cfg.Probes)
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]string{
		"UnknownMode":  "gradient:\n  interpolationMode: spline\n",
		"NegativeGap":  "input:\n  sliceGap: -2\n",
		"MalformedYML": "input: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("Expected error for %s", name)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "mode.yaml")
	if err := os.WriteFile(path, []byte("gradient:\n  interpolationMode: spline\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, gradient.ErrInvalidInterpolationMode) {
		t.Errorf("Expected %v, got %v", gradient.ErrInvalidInterpolationMode, err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gradvol.yaml")

	cfg := DefaultConfig()
	cfg.Input.Dir = "slices"
	cfg.Gradient.InterpolationMode = gradient.Cubic
	cfg.Probes = [][3]float64{{1, 2, 3}}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Input.Dir != "slices" || loaded.Gradient.InterpolationMode != gradient.Cubic {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
	if len(loaded.Probes) != 1 || loaded.Probes[0] != [3]float64{1, 2, 3} {
		t.Errorf("Round trip lost probes: %v", loaded.Probes)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Gradient.InterpolationMode != gradient.Linear {
		t.Errorf("Expected linear mode, got %s", cfg.Gradient.InterpolationMode)
	}
}
