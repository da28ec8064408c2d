package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/sculpt/brush"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLoadPresetEmptyPathKeepsDefaults(t *testing.T) {
	p, err := LoadPreset("")
	if err != nil {
		t.Fatal(err)
	}
	if p != DefaultPreset() {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestLoadPresetLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	const body = `
strength: 0.8
curve: sharp
lock_z: true
iterations: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPreset(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Strength != 0.8 || p.Curve != "sharp" || !p.LockZ || p.Iterations != 5 {
		t.Errorf("file values not applied: %+v", p)
	}
	// Unset keys keep their default values.
	if p.Pressure != 1 || p.ShapePreservation != 0.5 || p.LockX {
		t.Errorf("defaults lost for unset keys: %+v", p)
	}
}

func TestLoadPresetMissingFile(t *testing.T) {
	if _, err := LoadPreset(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing preset file did not error")
	}
}

func TestLoadPresetBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("radius: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPreset(path); err == nil {
		t.Error("malformed preset did not error")
	}
}

func TestPresetBrush(t *testing.T) {
	p := DefaultPreset()
	center := r3.Vec{X: 1, Y: 2, Z: 3}
	b, err := p.Brush(center, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b.Center != center || b.Radius != 4 || b.Curve != brush.CurveSmooth {
		t.Errorf("brush %+v not built from preset", b)
	}
	// A preset radius wins over the caller supplied one.
	p.Radius = 9
	b, err = p.Brush(center, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b.Radius != 9 {
		t.Errorf("radius %v, want preset override 9", b.Radius)
	}
}

func TestPresetBrushUnknownCurve(t *testing.T) {
	p := DefaultPreset()
	p.Curve = "wiggly"
	if _, err := p.Brush(r3.Vec{}, 1); err == nil {
		t.Error("unknown curve name did not error")
	}
}
