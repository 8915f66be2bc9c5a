package assessment

import "fmt"

// NoIssues is the sentinel issue reported when analysis found nothing wrong.
// It is applied at result construction; ClassifyQuality itself may return an
// empty issue list.
const NoIssues = "No issues detected"

// Result is the assessment record for one image. Field names match the wire
// format consumed by the surrounding system and must not change.
type Result struct {
	ImageID          string      `json:"imageId"`
	SidewalkDetected bool        `json:"sidewalkDetected"`
	Confidence       Confidence  `json:"confidence"`
	Issues           []string    `json:"issues"`
	Quality          Quality     `json:"quality"`
	Notes            string      `json:"notes"`
	Detections       []Detection `json:"detections"`
}

// DegradedResult substitutes for a batch item whose processing failed. One
// bad item never sinks a batch; the failure is folded into ordinary result
// fields instead.
func DegradedResult(imageID string, err error) Result {
	return Result{
		ImageID:          imageID,
		SidewalkDetected: false,
		Confidence:       ConfidenceLow,
		Issues:           []string{fmt.Sprintf("Analysis error: %v", err)},
		Quality:          QualityNone,
		Notes:            "Error during automated analysis",
		Detections:       []Detection{},
	}
}

func notes(sidewalkDetected bool, sidewalkPct float64, obstructionCount int) string {
	if sidewalkDetected {
		return fmt.Sprintf("AI detected: sidewalk present (%.1f%% of image), %d obstruction(s)",
			sidewalkPct, obstructionCount)
	}
	return fmt.Sprintf("AI detected: no sidewalk, %d obstruction(s)", obstructionCount)
}
