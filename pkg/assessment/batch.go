package assessment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// MaxBatchSize bounds how many items a single batch will process. Longer
// inputs are silently truncated, a resource-bound policy rather than an error.
const MaxBatchSize = 10

// BatchItem is one unit of batch input: a label map, or the upstream failure
// (fetch or classification) that prevented acquiring one.
type BatchItem struct {
	ImageID string
	Labels  *segmentation.LabelMap
	Err     error
}

// AssessBatch assesses up to MaxBatchSize items and returns exactly one
// Result per processed item, in input order. Items are independent and are
// evaluated concurrently; a failed item yields a degraded result in its slot
// and never aborts its siblings.
func AssessBatch(ctx context.Context, items []BatchItem) []Result {
	return AssessBatchLimit(ctx, items, 0)
}

// AssessBatchLimit is AssessBatch with a cap on concurrent workers.
// limit <= 0 means no cap.
func AssessBatchLimit(ctx context.Context, items []BatchItem, limit int) []Result {
	if len(items) > MaxBatchSize {
		items = items[:MaxBatchSize]
	}

	results := make([]Result, len(items))
	eg, _ := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, item := range items {
		eg.Go(func() error {
			results[i] = assessItem(item)
			return nil
		})
	}

	// Workers never return errors; failures live in the result slots.
	_ = eg.Wait()
	return results
}

func assessItem(item BatchItem) Result {
	if item.Err != nil {
		return DegradedResult(item.ImageID, item.Err)
	}
	res, err := Assess(item.ImageID, item.Labels)
	if err != nil {
		return DegradedResult(item.ImageID, err)
	}
	return res
}
