// Package gradient derives a gradient field from a dense scalar volume and
// samples it at continuous positions for shading and transfer functions.
//
// The field is computed once with central differences. The outermost shell of
// voxels has no defined gradient and is left as zero. Sampling supports
// nearest-neighbor and trilinear interpolation; cubic requests are served by
// the trilinear path.
package gradient

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyVolume indicates a source volume with a non-positive extent
	ErrEmptyVolume = errors.New("gradient: source volume must have positive dimensions")

	// ErrInvalidInterpolationMode indicates a mode outside NearestNeighbor, Linear and Cubic
	ErrInvalidInterpolationMode = errors.New("gradient: invalid interpolation mode")
)

// Volume is the scalar field a GradientVolume is derived from
type Volume interface {
	// Dims returns the extent along x, y and z
	Dims() (int, int, int)

	// Voxel returns the scalar at an in-range lattice point
	Voxel(x, y, z int) float64
}

// Stats summarizes the stored gradient magnitudes
type Stats struct {
	Min, Max     float64
	Mean, StdDev float64
}

// GradientVolume holds the gradient of every voxel of a scalar volume.
// Everything except the interpolation mode is immutable after New.
type GradientVolume struct {
	dim  [3]int
	data []GradientVoxel

	minMagnitude float64
	maxMagnitude float64

	mode atomic.Int32
}

// New computes the gradient field of vol. The source is read only during the
// call and no reference to it is kept. The mode starts as NearestNeighbor.
//
// Volumes with an axis of at most two voxels have no interior and produce an
// all-zero field.
func New(vol Volume) (*GradientVolume, error) {
	dx, dy, dz := vol.Dims()
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("%w: got %dx%dx%d", ErrEmptyVolume, dx, dy, dz)
	}

	gv := &GradientVolume{
		dim:  [3]int{dx, dy, dz},
		data: computeGradients(vol, dx, dy, dz),
	}
	gv.minMagnitude, gv.maxMagnitude = magnitudeRange(gv.data)
	return gv, nil
}

// computeGradients fills the interior with central differences. Boundary
// cells are never written and stay zero.
func computeGradients(vol Volume, dx, dy, dz int) []GradientVoxel {
	out := make([]GradientVoxel, dx*dy*dz)
	for z := 1; z < dz-1; z++ {
		for y := 1; y < dy-1; y++ {
			for x := 1; x < dx-1; x++ {
				g := r3.Vec{
					X: (vol.Voxel(x+1, y, z) - vol.Voxel(x-1, y, z)) / 2,
					Y: (vol.Voxel(x, y+1, z) - vol.Voxel(x, y-1, z)) / 2,
					Z: (vol.Voxel(x, y, z+1) - vol.Voxel(x, y, z-1)) / 2,
				}
				out[x+dx*(y+dy*z)] = newGradientVoxel(g)
			}
		}
	}
	return out
}

func magnitudes(data []GradientVoxel) []float64 {
	m := make([]float64, len(data))
	for i, g := range data {
		m[i] = g.Magnitude
	}
	return m
}

func magnitudeRange(data []GradientVoxel) (float64, float64) {
	m := magnitudes(data)
	return floats.Min(m), floats.Max(m)
}

// Dims returns the extent of the field along x, y and z
func (gv *GradientVolume) Dims() (int, int, int) {
	return gv.dim[0], gv.dim[1], gv.dim[2]
}

// MinMagnitude returns the smallest stored magnitude, boundary shell included
func (gv *GradientVolume) MinMagnitude() float64 {
	return gv.minMagnitude
}

// MaxMagnitude returns the largest stored magnitude
func (gv *GradientVolume) MaxMagnitude() float64 {
	return gv.maxMagnitude
}

// MagnitudeStats returns min, max, mean and standard deviation of the stored
// magnitudes. Mean and deviation are computed on every call.
func (gv *GradientVolume) MagnitudeStats() Stats {
	mean, std := stat.MeanStdDev(magnitudes(gv.data), nil)
	if math.IsNaN(std) {
		// a single voxel has no sample deviation
		std = 0
	}
	return Stats{
		Min:    gv.minMagnitude,
		Max:    gv.maxMagnitude,
		Mean:   mean,
		StdDev: std,
	}
}

// NormalizedMagnitude maps m linearly from [MinMagnitude, MaxMagnitude] to
// [0, 1], clamping values outside the range. A flat field maps to 0.
func (gv *GradientVolume) NormalizedMagnitude(m float64) float64 {
	span := gv.maxMagnitude - gv.minMagnitude
	if span <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (m-gv.minMagnitude)/span))
}

// InterpolationMode returns the mode used by Sample
func (gv *GradientVolume) InterpolationMode() InterpolationMode {
	return InterpolationMode(gv.mode.Load())
}

// SetInterpolationMode changes the mode used by subsequent Sample calls.
// It is safe to call concurrently with sampling.
func (gv *GradientVolume) SetInterpolationMode(m InterpolationMode) {
	gv.mode.Store(int32(m))
}

// Sample returns the gradient at coord, given in voxel index space, using the
// current interpolation mode. Positions outside the sampled region yield the
// zero voxel. An unknown mode yields ErrInvalidInterpolationMode.
func (gv *GradientVolume) Sample(coord r3.Vec) (GradientVoxel, error) {
	switch m := gv.InterpolationMode(); m {
	case NearestNeighbor:
		return gv.SampleNearest(coord), nil
	case Linear:
		return gv.SampleLinear(coord), nil
	case Cubic:
		// linear is good enough for gradients
		return gv.SampleLinear(coord), nil
	default:
		return GradientVoxel{}, fmt.Errorf("%w: %d", ErrInvalidInterpolationMode, int32(m))
	}
}

// SampleNearest returns the stored voxel closest to coord. Any axis below 0
// or at/after the extent gives the zero voxel.
func (gv *GradientVolume) SampleNearest(coord r3.Vec) GradientVoxel {
	if !gv.within(coord, 0) {
		return GradientVoxel{}
	}
	return gv.voxel(
		gv.roundAxis(coord.X, 0),
		gv.roundAxis(coord.Y, 1),
		gv.roundAxis(coord.Z, 2),
	)
}

// SampleLinear trilinearly interpolates the eight voxels around coord. The
// whole unit cell must lie inside the field: any axis below 0 or with
// coord+1 at/after the extent gives the zero voxel.
func (gv *GradientVolume) SampleLinear(coord r3.Vec) GradientVoxel {
	if !gv.within(coord, 1) {
		return GradientVoxel{}
	}

	x0, x1 := int(math.Floor(coord.X)), int(math.Ceil(coord.X))
	y0, y1 := int(math.Floor(coord.Y)), int(math.Ceil(coord.Y))
	z0, z1 := int(math.Floor(coord.Z)), int(math.Ceil(coord.Z))

	fx := coord.X - float64(x0)
	fy := coord.Y - float64(y0)
	fz := coord.Z - float64(z0)

	// along x
	g00 := lerp(gv.voxel(x0, y0, z0), gv.voxel(x1, y0, z0), fx)
	g10 := lerp(gv.voxel(x0, y1, z0), gv.voxel(x1, y1, z0), fx)
	g01 := lerp(gv.voxel(x0, y0, z1), gv.voxel(x1, y0, z1), fx)
	g11 := lerp(gv.voxel(x0, y1, z1), gv.voxel(x1, y1, z1), fx)

	// along y
	g0 := lerp(g00, g10, fy)
	g1 := lerp(g01, g11, fy)

	// along z
	return lerp(g0, g1, fz)
}

// within reports whether coord+pad lies in [0, dim) on every axis. NaN
// components are outside.
func (gv *GradientVolume) within(coord r3.Vec, pad float64) bool {
	c := [3]float64{coord.X, coord.Y, coord.Z}
	for i, v := range c {
		if !(v >= 0 && v+pad < float64(gv.dim[i])) {
			return false
		}
	}
	return true
}

// roundAxis rounds half up. Coordinates in [dim-0.5, dim) would round onto
// dim, so the result is clamped to the last cell.
func (gv *GradientVolume) roundAxis(f float64, axis int) int {
	i := int(math.Floor(f + 0.5))
	if last := gv.dim[axis] - 1; i > last {
		return last
	}
	return i
}

// voxel returns the stored voxel without bounds checks. Callers validate the
// coordinates first.
func (gv *GradientVolume) voxel(x, y, z int) GradientVoxel {
	return gv.data[x+gv.dim[0]*(y+gv.dim[1]*z)]
}
