package main

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseProbe(t *testing.T) {
	got, err := parseProbe("1.5, 2,-0.25")
	if err != nil {
		t.Fatalf("parseProbe failed: %v", err)
	}
	if want := (r3.Vec{X: 1.5, Y: 2, Z: -0.25}); got != want {
		t.Errorf("parseProbe = %v; want %v", got, want)
	}

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c"} {
		if _, err := parseProbe(bad); err == nil {
			t.Errorf("parseProbe(%q) expected error", bad)
		}
	}
}

func TestProbeList(t *testing.T) {
	var p probeList
	for _, v := range []string{"1,2,3", "4.5,0,1"} {
		if err := p.Set(v); err != nil {
			t.Fatalf("Set(%q) failed: %v", v, err)
		}
	}
	if len(p) != 2 {
		t.Fatalf("Expected 2 probes, got %d", len(p))
	}
	if got := p.String(); got != "1,2,3 4.5,0,1" {
		t.Errorf("String() = %q", got)
	}
	if err := p.Set("oops"); err == nil {
		t.Error("Expected error for malformed probe")
	}
}
