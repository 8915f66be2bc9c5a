// Package sidewalkanalyzer assesses sidewalk presence, quality and
// obstruction in street-level imagery using an external semantic
// segmentation model.
//
// The package composes four stages: image acquisition (pkg/processing),
// classification by a SegFormer inference server (pkg/segformer), reduction
// of the per-pixel label map into class statistics (pkg/segmentation), and
// the decision policy that turns those statistics into a verdict
// (pkg/assessment).
//
// Basic usage:
//
//	segmenter, err := segformer.NewClient("http://localhost:8500")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	analyzer := sidewalkanalyzer.New(segmenter)
//	result, err := analyzer.AnalyzeURL(ctx, "img-001", "https://example.com/street.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("quality=%s confidence=%s\n", result.Quality, result.Confidence)
//
// The decision core is usable without any model or network dependency: build
// a segmentation.LabelMap fixture and call Assess or AssessBatch directly.
package sidewalkanalyzer

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/safestreets/sidewalk-analyzer/pkg/assessment"
	"github.com/safestreets/sidewalk-analyzer/pkg/client"
	"github.com/safestreets/sidewalk-analyzer/pkg/processing"
	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// Version of the sidewalk analyzer library.
const Version = "1.0.0"

// Request identifies one image to analyze. Field names match the wire
// format of the analyze endpoints.
type Request struct {
	ImageURL string `json:"image_url" binding:"required"`
	ImageID  string `json:"image_id" binding:"required"`
}

// Analyzer composes acquisition, classification and assessment.
type Analyzer struct {
	processor   *processing.Processor
	segmenter   client.Segmenter
	sendFormat  string
	sendMaxDim  int
	sendQuality int
	workers     int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProcessor replaces the default image processor.
func WithProcessor(p *processing.Processor) Option {
	return func(a *Analyzer) { a.processor = p }
}

// WithSendOptions controls the payload shipped to the segmentation server:
// encoding format (jpg or png), maximum long side in pixels (0 keeps the
// original size) and JPEG quality.
func WithSendOptions(format string, maxDim, quality int) Option {
	return func(a *Analyzer) {
		a.sendFormat = format
		a.sendMaxDim = maxDim
		a.sendQuality = quality
	}
}

// WithBatchWorkers caps concurrent batch item evaluation.
func WithBatchWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// New creates an Analyzer backed by the given segmenter.
func New(segmenter client.Segmenter, opts ...Option) *Analyzer {
	a := &Analyzer{
		processor:   processing.NewProcessor(),
		segmenter:   segmenter,
		sendFormat:  "jpg",
		sendMaxDim:  1024,
		sendQuality: 85,
		workers:     4,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess runs the decision pipeline on an already-classified label map.
func (a *Analyzer) Assess(imageID string, m *segmentation.LabelMap) (assessment.Result, error) {
	return assessment.Assess(imageID, m)
}

// AssessBatch runs the decision pipeline over pre-acquired batch items.
func (a *Analyzer) AssessBatch(ctx context.Context, items []assessment.BatchItem) []assessment.Result {
	return assessment.AssessBatchLimit(ctx, items, a.workers)
}

// AnalyzeImage classifies a decoded image and assesses the result.
func (a *Analyzer) AnalyzeImage(ctx context.Context, imageID string, img image.Image) (assessment.Result, error) {
	m, err := a.classify(ctx, img)
	if err != nil {
		return assessment.Result{}, err
	}
	return assessment.Assess(imageID, m)
}

// AnalyzeURL fetches an image by URL, classifies it and assesses the result.
func (a *Analyzer) AnalyzeURL(ctx context.Context, imageID, imageURL string) (assessment.Result, error) {
	img, err := a.processor.LoadImageFromURL(ctx, imageURL)
	if err != nil {
		return assessment.Result{}, err
	}
	return a.AnalyzeImage(ctx, imageID, img)
}

// AnalyzeBatch analyzes up to assessment.MaxBatchSize requests. Acquisition
// and classification run concurrently per item; a failed item contributes a
// degraded result in its slot and never aborts its siblings. The output has
// exactly one result per (truncated) input, in input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, requests []Request) []assessment.Result {
	if len(requests) > assessment.MaxBatchSize {
		requests = requests[:assessment.MaxBatchSize]
	}

	items := make([]assessment.BatchItem, len(requests))
	eg, egCtx := errgroup.WithContext(ctx)
	if a.workers > 0 {
		eg.SetLimit(a.workers)
	}

	for i, req := range requests {
		eg.Go(func() error {
			item := assessment.BatchItem{ImageID: req.ImageID}
			img, err := a.processor.LoadImageFromURL(egCtx, req.ImageURL)
			if err == nil {
				item.Labels, err = a.classify(egCtx, img)
			}
			item.Err = err
			items[i] = item
			return nil
		})
	}
	_ = eg.Wait()

	return a.AssessBatch(ctx, items)
}

func (a *Analyzer) classify(ctx context.Context, img image.Image) (*segmentation.LabelMap, error) {
	imgB64, err := a.processor.PrepareImageForModel(img, a.sendFormat, a.sendMaxDim, a.sendQuality)
	if err != nil {
		return nil, err
	}
	return a.segmenter.Segment(ctx, imgB64)
}

// Healthy reports whether the segmentation backend is reachable.
func (a *Analyzer) Healthy(ctx context.Context) bool {
	return a.segmenter.Healthy(ctx)
}

// GetVersion returns the library version.
func GetVersion() string {
	return Version
}
