package assessment

import "fmt"

// Quality is the overall sidewalk quality tier.
type Quality string

// Quality tiers, from best to worst. QualityNone means no sidewalk was found.
const (
	QualityGood Quality = "good"
	QualityFair Quality = "fair"
	QualityPoor Quality = "poor"
	QualityNone Quality = "none"
)

// Confidence is the model-verdict confidence tier.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Coverage and obstruction thresholds, in percent of the image. A sidewalk
// must occupy a meaningful fraction of the frame to count as detected, and
// obstruction severity is judged relative to that coverage.
const (
	detectionFloor   = 5  // below this, no sidewalk
	moderateCoverage = 10 // low band above detectionFloor, moderate band above this
	goodCoverage     = 20 // good band above this

	minorObstruction  = 5  // total obstruction considered minor above this
	partialObstructed = 10 // moderate band mentions obstructions above this
	severeObstruction = 15 // good band degrades to poor above this

	issueReportFloor = 5 // individual obstructions reported above this
)

// Verdict is the output of the quality classification policy.
type Verdict struct {
	Quality    Quality
	Confidence Confidence
	Issues     []string
}

// ClassifyQuality maps sidewalk coverage and the collected obstructions to a
// quality/confidence verdict with explanatory issues. It is a pure, total
// function: the guards below are evaluated in order and the first match wins.
//
// Issues may be empty in the good-coverage, low-obstruction case; callers
// substitute the "No issues detected" sentinel before exposing a result.
func ClassifyQuality(sidewalkPct float64, obstructions []Obstruction) Verdict {
	if sidewalkPct <= detectionFloor {
		return Verdict{
			Quality:    QualityNone,
			Confidence: ConfidenceLow,
			Issues:     []string{"No sidewalk visible in image"},
		}
	}

	totalObstructionPct := 0.0
	for _, obs := range obstructions {
		totalObstructionPct += obs.Percentage
	}

	var v Verdict
	switch {
	case sidewalkPct > goodCoverage:
		switch {
		case totalObstructionPct > severeObstruction:
			v = Verdict{QualityPoor, ConfidenceHigh, []string{
				fmt.Sprintf("%d obstruction(s) detected blocking sidewalk", len(obstructions)),
			}}
		case totalObstructionPct > minorObstruction:
			v = Verdict{QualityFair, ConfidenceMedium, []string{
				"Minor obstructions detected on sidewalk",
			}}
		default:
			v = Verdict{Quality: QualityGood, Confidence: ConfidenceHigh}
		}
	case sidewalkPct > moderateCoverage:
		v = Verdict{Quality: QualityFair, Confidence: ConfidenceMedium}
		if totalObstructionPct > partialObstructed {
			v.Issues = []string{"Sidewalk partially visible with obstructions"}
		} else {
			v.Issues = []string{"Sidewalk partially visible"}
		}
	default: // detectionFloor < sidewalkPct <= moderateCoverage
		v = Verdict{Quality: QualityPoor, Confidence: ConfidenceMedium, Issues: []string{
			"Limited sidewalk visible in image",
		}}
	}

	// Per-obstruction detail, in the fixed obstruction-class order.
	for _, obs := range obstructions {
		if obs.Percentage > issueReportFloor {
			v.Issues = append(v.Issues,
				fmt.Sprintf("%s detected (%.1f%% of image)", obs.Class, obs.Percentage))
		}
	}

	return v
}
