package assessment

import (
	"github.com/safestreets/sidewalk-analyzer/pkg/cityscapes"
	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// Assess runs the full single-image pipeline: distribution extraction,
// obstruction collection, quality classification and detection building.
// It fails only on a malformed label map; everything past extraction is pure.
func Assess(imageID string, m *segmentation.LabelMap) (Result, error) {
	dist, err := segmentation.ExtractDistribution(m)
	if err != nil {
		return Result{}, err
	}

	sidewalkPct := dist.Percentage(cityscapes.Sidewalk)
	obstructions := CollectObstructions(dist)
	verdict := ClassifyQuality(sidewalkPct, obstructions)
	detections := BuildDetections(dist)

	issues := verdict.Issues
	if len(issues) == 0 {
		issues = []string{NoIssues}
	}
	if detections == nil {
		detections = []Detection{}
	}

	detected := verdict.Quality != QualityNone
	return Result{
		ImageID:          imageID,
		SidewalkDetected: detected,
		Confidence:       verdict.Confidence,
		Issues:           issues,
		Quality:          verdict.Quality,
		Notes:            notes(detected, sidewalkPct, len(obstructions)),
		Detections:       detections,
	}, nil
}
