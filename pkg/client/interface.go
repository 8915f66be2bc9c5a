// Package client defines the interface to the external segmentation model.
package client

import (
	"context"

	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// Segmenter produces a per-pixel label map for an image. Implementations
// talk to an external inference backend; the decision core only ever sees
// the resulting LabelMap.
type Segmenter interface {
	// Segment classifies a prepared (base64-encoded) image.
	Segment(ctx context.Context, imgB64 string) (*segmentation.LabelMap, error)

	// Healthy reports whether the inference backend is reachable.
	Healthy(ctx context.Context) bool
}
