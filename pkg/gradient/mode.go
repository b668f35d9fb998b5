package gradient

import (
	"fmt"
	"strings"
)

// InterpolationMode selects how a GradientVolume is sampled between lattice points
type InterpolationMode int32

const (
	// NearestNeighbor returns the stored voxel closest to the coordinate
	NearestNeighbor InterpolationMode = iota

	// Linear blends the eight voxels of the enclosing cell trilinearly
	Linear

	// Cubic is accepted for symmetry with the scalar sampler but samples
	// exactly like Linear
	Cubic
)

// String returns the configuration name of the mode
func (m InterpolationMode) String() string {
	switch m {
	case NearestNeighbor:
		return "nearest"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("InterpolationMode(%d)", int32(m))
	}
}

// Valid reports whether m is one of the known modes
func (m InterpolationMode) Valid() bool {
	return m >= NearestNeighbor && m <= Cubic
}

// ParseInterpolationMode converts a configuration name into a mode.
// Names are matched case-insensitively.
func ParseInterpolationMode(name string) (InterpolationMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest", "nearestneighbor", "nearest-neighbor", "nn":
		return NearestNeighbor, nil
	case "linear", "trilinear":
		return Linear, nil
	case "cubic", "tricubic":
		return Cubic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterpolationMode, name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m InterpolationMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterpolationMode, int32(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *InterpolationMode) UnmarshalText(text []byte) error {
	parsed, err := ParseInterpolationMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
