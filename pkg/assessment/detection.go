package assessment

import "github.com/safestreets/sidewalk-analyzer/pkg/segmentation"

// ModelConfidence is the static accuracy estimate attached to every
// detection. It reflects the upstream segmentation model's typical accuracy,
// not a per-class computed value.
const ModelConfidence = 0.85

// DetectionFloor is the minimum image coverage, in percent, for a class to be
// included in the detections list.
const DetectionFloor = 1.0

// Detection is one reporting-significant class prediction.
type Detection struct {
	ClassName       string  `json:"class_name"`
	Confidence      float64 `json:"confidence"`
	PixelPercentage float64 `json:"pixel_percentage"`
}

// BuildDetections projects a distribution into the reporting-significant
// subset, preserving the distribution's deterministic order.
func BuildDetections(dist segmentation.Distribution) []Detection {
	var out []Detection
	for _, stat := range dist {
		if stat.Percentage > DetectionFloor {
			out = append(out, Detection{
				ClassName:       stat.Class.String(),
				Confidence:      ModelConfidence,
				PixelPercentage: stat.Percentage,
			})
		}
	}
	return out
}
