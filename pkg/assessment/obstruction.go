// Package assessment turns class-level segmentation statistics into a
// human-interpretable verdict on sidewalk presence, quality and obstruction.
package assessment

import (
	"github.com/safestreets/sidewalk-analyzer/pkg/cityscapes"
	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// Obstruction is a pedestrian-path blocker present in the analyzed scene.
type Obstruction struct {
	Class      cityscapes.Class
	Percentage float64
}

// CollectObstructions projects a distribution onto the fixed obstruction
// classes. The output follows the cityscapes.ObstructionClasses enumeration
// order, not the distribution order; issue reporting depends on it.
func CollectObstructions(dist segmentation.Distribution) []Obstruction {
	var out []Obstruction
	for _, c := range cityscapes.ObstructionClasses {
		if stat, ok := dist.Get(c); ok {
			out = append(out, Obstruction{Class: c, Percentage: stat.Percentage})
		}
	}
	return out
}
