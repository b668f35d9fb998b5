package gradient

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// GradientVoxel is the derivative estimate of a single cell
type GradientVoxel struct {
	// Dir is the unnormalized gradient in intensity units per voxel
	Dir r3.Vec

	// Magnitude caches the Euclidean norm of Dir. Interpolated voxels
	// blend it as an independent channel, so it may differ from |Dir|.
	Magnitude float64
}

// newGradientVoxel builds a voxel whose magnitude is the exact norm of dir
func newGradientVoxel(dir r3.Vec) GradientVoxel {
	return GradientVoxel{Dir: dir, Magnitude: r3.Norm(dir)}
}

// IsZero reports whether the voxel carries no gradient at all
func (g GradientVoxel) IsZero() bool {
	return g.Magnitude == 0 && g.Dir == (r3.Vec{})
}

// Normal returns the unit gradient direction, or the zero vector when
// the direction is zero
func (g GradientVoxel) Normal() r3.Vec {
	if g.Dir == (r3.Vec{}) {
		return r3.Vec{}
	}
	return r3.Unit(g.Dir)
}

// lerp blends g0 towards g1 by t, with t clamped to [0, 1].
// Direction and magnitude are blended separately.
func lerp(g0, g1 GradientVoxel, t float64) GradientVoxel {
	switch {
	case t <= 0:
		return g0
	case t >= 1:
		return g1
	}
	s := 1 - t
	return GradientVoxel{
		Dir:       r3.Add(r3.Scale(s, g0.Dir), r3.Scale(t, g1.Dir)),
		Magnitude: s*g0.Magnitude + t*g1.Magnitude,
	}
}
