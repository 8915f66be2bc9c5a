package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/safestreets/sidewalk-analyzer/pkg/cityscapes"
	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// labelMap builds a 100x100 map where each listed class covers the given
// percent of the image; the remainder is sky.
func labelMap(t *testing.T, coverage map[cityscapes.Class]float64) *segmentation.LabelMap {
	t.Helper()
	labels := make([]int, 100*100)
	for i := range labels {
		labels[i] = int(cityscapes.Sky)
	}
	i := 0
	for c := cityscapes.Class(0); c < cityscapes.NumClasses; c++ {
		n := int(coverage[c] * 100)
		for range n {
			labels[i] = int(c)
			i++
		}
	}
	m, err := segmentation.NewLabelMap(100, 100, labels)
	require.NoError(t, err)
	return m
}

func TestAssessCleanSidewalk(t *testing.T) {
	m := labelMap(t, map[cityscapes.Class]float64{
		cityscapes.Road:     30,
		cityscapes.Sidewalk: 25,
	})

	res, err := Assess("img-1", m)
	require.NoError(t, err)

	require.Equal(t, "img-1", res.ImageID)
	require.True(t, res.SidewalkDetected)
	require.Equal(t, QualityGood, res.Quality)
	require.Equal(t, ConfidenceHigh, res.Confidence)
	require.Equal(t, []string{NoIssues}, res.Issues)
	require.Equal(t, "AI detected: sidewalk present (25.0% of image), 0 obstruction(s)", res.Notes)
}

func TestAssessObstructedSidewalk(t *testing.T) {
	m := labelMap(t, map[cityscapes.Class]float64{
		cityscapes.Sidewalk: 25,
		cityscapes.Car:      18,
	})

	res, err := Assess("img-2", m)
	require.NoError(t, err)

	require.True(t, res.SidewalkDetected)
	require.Equal(t, QualityPoor, res.Quality)
	require.Equal(t, ConfidenceHigh, res.Confidence)
	require.Equal(t, []string{
		"1 obstruction(s) detected blocking sidewalk",
		"car detected (18.0% of image)",
	}, res.Issues)
	require.Equal(t, "AI detected: sidewalk present (25.0% of image), 1 obstruction(s)", res.Notes)
}

func TestAssessNoSidewalk(t *testing.T) {
	m := labelMap(t, map[cityscapes.Class]float64{
		cityscapes.Road:     40,
		cityscapes.Building: 30,
	})

	res, err := Assess("img-3", m)
	require.NoError(t, err)

	require.False(t, res.SidewalkDetected)
	require.Equal(t, QualityNone, res.Quality)
	require.Equal(t, ConfidenceLow, res.Confidence)
	require.Equal(t, []string{"No sidewalk visible in image"}, res.Issues)
	require.Equal(t, "AI detected: no sidewalk, 0 obstruction(s)", res.Notes)
}

func TestAssessDetections(t *testing.T) {
	m := labelMap(t, map[cityscapes.Class]float64{
		cityscapes.Sidewalk: 25,
		cityscapes.Pole:     0.8, // significant, but below the detection floor
		cityscapes.Person:   2,
	})

	res, err := Assess("img-4", m)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Detections))
	for _, d := range res.Detections {
		require.Equal(t, ModelConfidence, d.Confidence)
		require.Greater(t, d.PixelPercentage, DetectionFloor)
		names = append(names, d.ClassName)
	}
	require.Equal(t, []string{"sidewalk", "sky", "person"}, names)
}

func TestAssessInvalidInput(t *testing.T) {
	_, err := Assess("img-5", nil)
	require.ErrorIs(t, err, segmentation.ErrInvalidInput)
}

func TestCollectObstructionsOrder(t *testing.T) {
	m := labelMap(t, map[cityscapes.Class]float64{
		cityscapes.Sidewalk: 25,
		cityscapes.Person:   3, // id 11, before car in the distribution
		cityscapes.Car:      6,
		cityscapes.Bicycle:  2, // id 18, after car
	})
	dist, err := segmentation.ExtractDistribution(m)
	require.NoError(t, err)

	obs := CollectObstructions(dist)
	// Fixed enumeration order, regardless of class id order.
	require.Equal(t, []cityscapes.Class{
		cityscapes.Car, cityscapes.Bicycle, cityscapes.Person,
	}, []cityscapes.Class{obs[0].Class, obs[1].Class, obs[2].Class})
}
