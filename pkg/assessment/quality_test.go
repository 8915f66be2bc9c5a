package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/safestreets/sidewalk-analyzer/pkg/cityscapes"
)

func TestClassifyQuality(t *testing.T) {
	tests := []struct {
		name         string
		sidewalkPct  float64
		obstructions []Obstruction
		wantQuality  Quality
		wantConf     Confidence
		wantIssues   []string
	}{
		{
			name:        "no sidewalk",
			sidewalkPct: 3,
			wantQuality: QualityNone,
			wantConf:    ConfidenceLow,
			wantIssues:  []string{"No sidewalk visible in image"},
		},
		{
			name:        "detection floor is exclusive",
			sidewalkPct: 5,
			wantQuality: QualityNone,
			wantConf:    ConfidenceLow,
			wantIssues:  []string{"No sidewalk visible in image"},
		},
		{
			name:        "good coverage clean",
			sidewalkPct: 25,
			wantQuality: QualityGood,
			wantConf:    ConfidenceHigh,
			wantIssues:  nil,
		},
		{
			name:        "good coverage heavy obstruction",
			sidewalkPct: 25,
			obstructions: []Obstruction{
				{Class: cityscapes.Car, Percentage: 18},
			},
			wantQuality: QualityPoor,
			wantConf:    ConfidenceHigh,
			wantIssues: []string{
				"1 obstruction(s) detected blocking sidewalk",
				"car detected (18.0% of image)",
			},
		},
		{
			name:        "good coverage minor obstruction",
			sidewalkPct: 30,
			obstructions: []Obstruction{
				{Class: cityscapes.Bicycle, Percentage: 4},
				{Class: cityscapes.Person, Percentage: 3},
			},
			wantQuality: QualityFair,
			wantConf:    ConfidenceMedium,
			wantIssues:  []string{"Minor obstructions detected on sidewalk"},
		},
		{
			name:        "moderate coverage small obstruction",
			sidewalkPct: 12,
			obstructions: []Obstruction{
				{Class: cityscapes.Person, Percentage: 3},
			},
			wantQuality: QualityFair,
			wantConf:    ConfidenceMedium,
			wantIssues:  []string{"Sidewalk partially visible"},
		},
		{
			name:        "moderate coverage obstructed",
			sidewalkPct: 15,
			obstructions: []Obstruction{
				{Class: cityscapes.Car, Percentage: 8},
				{Class: cityscapes.Truck, Percentage: 6},
			},
			wantQuality: QualityFair,
			wantConf:    ConfidenceMedium,
			wantIssues: []string{
				"Sidewalk partially visible with obstructions",
				"car detected (8.0% of image)",
				"truck detected (6.0% of image)",
			},
		},
		{
			name:        "low coverage",
			sidewalkPct: 7,
			wantQuality: QualityPoor,
			wantConf:    ConfidenceMedium,
			wantIssues:  []string{"Limited sidewalk visible in image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ClassifyQuality(tt.sidewalkPct, tt.obstructions)
			require.Equal(t, tt.wantQuality, v.Quality)
			require.Equal(t, tt.wantConf, v.Confidence)
			require.Equal(t, tt.wantIssues, v.Issues)
		})
	}
}

func TestClassifyQualityObstructionDetailOrder(t *testing.T) {
	// Per-obstruction issues follow the input order, which the collector
	// fixes to the obstruction-class enumeration order.
	v := ClassifyQuality(25, []Obstruction{
		{Class: cityscapes.Car, Percentage: 10},
		{Class: cityscapes.Bus, Percentage: 7},
		{Class: cityscapes.Person, Percentage: 6},
	})
	require.Equal(t, QualityPoor, v.Quality)
	require.Equal(t, []string{
		"3 obstruction(s) detected blocking sidewalk",
		"car detected (10.0% of image)",
		"bus detected (7.0% of image)",
		"person detected (6.0% of image)",
	}, v.Issues)
}

func TestClassifyQualityReportFloorIsExclusive(t *testing.T) {
	v := ClassifyQuality(12, []Obstruction{
		{Class: cityscapes.Person, Percentage: 5},
	})
	require.Equal(t, []string{"Sidewalk partially visible"}, v.Issues)
}

func TestClassifyQualityConfidenceMonotonicity(t *testing.T) {
	rank := map[Confidence]int{ConfidenceLow: 0, ConfidenceMedium: 1, ConfidenceHigh: 2}

	// With obstructions held fixed, crossing coverage bands upward never
	// lowers the reported confidence.
	for _, obs := range [][]Obstruction{
		nil,
		{{Class: cityscapes.Car, Percentage: 3}},
	} {
		prev := -1
		for _, pct := range []float64{4, 7, 12, 25} {
			v := ClassifyQuality(pct, obs)
			cur := rank[v.Confidence]
			require.GreaterOrEqual(t, cur, prev, "sidewalkPct=%v", pct)
			prev = cur
		}
	}
}
