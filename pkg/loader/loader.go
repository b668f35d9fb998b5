// Package loader builds scalar volumes from stacks of 2D image slices.
package loader

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"volumegradient/internal/models"
)

// ErrNoSlices indicates a directory without any JPEG slice
var ErrNoSlices = errors.New("loader: no JPG images found in input directory")

// ErrSliceSize indicates slices of differing dimensions
var ErrSliceSize = errors.New("loader: slice dimensions differ")

// LoadSlices reads every JPEG in dir, orders the files by the number embedded
// in their names and stacks them along z. Intensities come from the red
// channel scaled to [0, 1]. sliceGap becomes the z voxel size.
func LoadSlices(dir string, sliceGap float64) (*models.Volume, []models.Slice, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: reading %s: %w", dir, err)
	}

	var imageFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			imageFiles = append(imageFiles, entry.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, nil, ErrNoSlices
	}

	sort.SliceStable(imageFiles, func(i, j int) bool {
		return extractNumber(imageFiles[i]) < extractNumber(imageFiles[j])
	})

	slices := make([]models.Slice, 0, len(imageFiles))
	var width, height int
	for i, filename := range imageFiles {
		img, err := loadImage(filepath.Join(dir, filename))
		if err != nil {
			return nil, nil, fmt.Errorf("loader: failed to load image %s: %w", filename, err)
		}

		// every slice must match the first one
		bounds := img.Bounds()
		if i == 0 {
			width, height = bounds.Dx(), bounds.Dy()
		} else if bounds.Dx() != width || bounds.Dy() != height {
			return nil, nil, fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
				ErrSliceSize, filename, bounds.Dx(), bounds.Dy(), width, height)
		}

		slices = append(slices, models.Slice{
			Image:     img,
			Index:     i,
			Filename:  filename,
			Thickness: sliceGap,
			Position:  float64(i) * sliceGap,
		})
	}

	return StackSlices(slices, sliceGap), slices, nil
}

// StackSlices copies same-sized slice images into a volume, one z layer per
// slice in the given order
func StackSlices(slices []models.Slice, sliceGap float64) *models.Volume {
	if len(slices) == 0 {
		return models.NewVolume(0, 0, 0)
	}

	bounds := slices[0].Image.Bounds()
	vol := models.NewVolume(bounds.Dx(), bounds.Dy(), len(slices))
	vol.VoxelSize.Z = sliceGap

	for z, s := range slices {
		b := s.Image.Bounds()
		for y := 0; y < vol.Height; y++ {
			for x := 0; x < vol.Width; x++ {
				r, _, _, _ := s.Image.At(b.Min.X+x, b.Min.Y+y).RGBA()
				// 16-bit channel to [0, 1]
				vol.SetVoxel(x, y, z, float64(r)/65535.0)
			}
		}
	}
	return vol
}

// extractNumber extracts the digits of a filename as one number, 0 if none
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}

	if digits.Len() > 0 {
		if num, err := strconv.Atoi(digits.String()); err == nil {
			return num
		}
	}
	return 0
}

// loadImage decodes a JPEG file
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return jpeg.Decode(file)
}
