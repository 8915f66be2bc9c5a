// Package segmentation holds the per-pixel label map produced by the
// segmentation model and reduces it into class-level statistics.
package segmentation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a malformed or empty label map. It is fatal to a
// single-image assessment and is never silently masked.
var ErrInvalidInput = errors.New("segmentation: invalid input")

// LabelMap is a 2-D grid of class ids, one per pixel, in row-major order.
// It is produced by the external classifier and treated as immutable.
type LabelMap struct {
	width  int
	height int
	labels []int
}

// NewLabelMap builds a LabelMap from raw model output. The labels slice must
// hold exactly width*height entries.
func NewLabelMap(width, height int, labels []int) (*LabelMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: label map dimensions %dx%d", ErrInvalidInput, width, height)
	}
	if len(labels) != width*height {
		return nil, fmt.Errorf("%w: %d labels for %dx%d map", ErrInvalidInput, len(labels), width, height)
	}
	return &LabelMap{width: width, height: height, labels: labels}, nil
}

// Width returns the map width in pixels.
func (m *LabelMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *LabelMap) Height() int { return m.height }

// TotalPixels returns width*height.
func (m *LabelMap) TotalPixels() int { return m.width * m.height }

// At returns the class id at pixel (x, y).
func (m *LabelMap) At(x, y int) int {
	return m.labels[y*m.width+x]
}
