package models

import (
	"image"
)

// Slice represents a single image slice of a scalar volume with metadata
type Slice struct {
	// Image is the actual slice image data
	Image image.Image

	// Index is the position of this slice in the sequence
	Index int

	// Filename is the original filename of the slice
	Filename string

	// Thickness is the physical thickness of the slice in mm
	Thickness float64

	// Position is the physical position of the slice along the axis
	Position float64
}

// Volume represents a dense 3D scalar volume
type Volume struct {
	// Data is the 3D volume data as a 1D array in row-major order,
	// x varying fastest
	Data []float64

	// Width is the width of the volume in voxels
	Width int

	// Height is the height of the volume in voxels
	Height int

	// Depth is the depth of the volume in voxels
	Depth int

	// VoxelSize is the physical size of each voxel in mm
	VoxelSize struct {
		X, Y, Z float64
	}
}

// NewVolume allocates a zero-filled volume with unit voxel size
func NewVolume(width, height, depth int) *Volume {
	v := &Volume{
		Data:   make([]float64, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
	v.VoxelSize.X, v.VoxelSize.Y, v.VoxelSize.Z = 1, 1, 1
	return v
}

// Dims returns the extent of the volume along x, y and z
func (v *Volume) Dims() (int, int, int) {
	return v.Width, v.Height, v.Depth
}

// Voxel returns the scalar value at (x, y, z). Coordinates are not checked.
func (v *Volume) Voxel(x, y, z int) float64 {
	return v.Data[v.index(x, y, z)]
}

// SetVoxel stores a scalar value at (x, y, z). Coordinates are not checked.
func (v *Volume) SetVoxel(x, y, z int, value float64) {
	v.Data[v.index(x, y, z)] = value
}

func (v *Volume) index(x, y, z int) int {
	return z*v.Width*v.Height + y*v.Width + x
}
