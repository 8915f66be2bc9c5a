package segmentation

import (
	"fmt"

	"github.com/safestreets/sidewalk-analyzer/pkg/cityscapes"
)

// SignificanceFloor is the minimum percentage of the image a class must cover
// to appear in a Distribution.
const SignificanceFloor = 0.5

// ClassStat holds the pixel statistics for one class.
type ClassStat struct {
	Class      cityscapes.Class
	Pixels     int
	Percentage float64
}

// Distribution maps the significant classes of a label map to their pixel
// statistics, ordered by ascending class id so iteration is deterministic for
// a given LabelMap.
type Distribution []ClassStat

// ExtractDistribution reduces a label map into per-class pixel counts and
// percentages. Classes at or below the significance floor are dropped, as are
// class ids outside the known vocabulary (newer models may emit extra ids).
func ExtractDistribution(m *LabelMap) (Distribution, error) {
	if m == nil || m.TotalPixels() == 0 {
		return nil, fmt.Errorf("%w: empty label map", ErrInvalidInput)
	}

	var counts [cityscapes.NumClasses]int
	for _, id := range m.labels {
		if id >= 0 && id < cityscapes.NumClasses {
			counts[id]++
		}
	}

	total := float64(m.TotalPixels())
	dist := make(Distribution, 0, cityscapes.NumClasses)
	for id, n := range counts {
		if n == 0 {
			continue
		}
		pct := float64(n) / total * 100
		if pct > SignificanceFloor {
			dist = append(dist, ClassStat{
				Class:      cityscapes.Class(id),
				Pixels:     n,
				Percentage: pct,
			})
		}
	}
	return dist, nil
}

// Get returns the stat for a class and whether the class is present.
func (d Distribution) Get(c cityscapes.Class) (ClassStat, bool) {
	for _, s := range d {
		if s.Class == c {
			return s, true
		}
	}
	return ClassStat{}, false
}

// Percentage returns the image coverage of a class, or 0 if the class is not
// significant in this distribution.
func (d Distribution) Percentage(c cityscapes.Class) float64 {
	s, _ := d.Get(c)
	return s.Percentage
}
