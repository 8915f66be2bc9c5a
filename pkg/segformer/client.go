// Package segformer talks to a SegFormer semantic-segmentation inference
// server over HTTP and converts its response into a LabelMap.
package segformer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/safestreets/sidewalk-analyzer/pkg/segmentation"
)

// DefaultModel is the Cityscapes-trained checkpoint served by default. It is
// the only widely available SegFormer variant that includes a sidewalk class.
const DefaultModel = "nvidia/segformer-b0-finetuned-cityscapes-1024-1024"

const defaultTimeout = 60 * time.Second

// ErrClassification marks a failure of the upstream segmentation model. The
// batch layer folds it into a degraded result; it is never retried here.
var ErrClassification = errors.New("segformer: classification failed")

// Client is an HTTP client for the segmentation sidecar.
type Client struct {
	http  *resty.Client
	model string
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the model checkpoint requested from the server.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// NewClient creates a client for a segmentation server at the given base URL.
func NewClient(serverURL string, opts ...Option) (*Client, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("segformer: server URL is required")
	}

	r := resty.New().
		SetBaseURL(strings.TrimSuffix(serverURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")

	c := &Client{http: r, model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the checkpoint name this client requests.
func (c *Client) Model() string { return c.model }

type segmentRequest struct {
	Model string `json:"model"`
	Image string `json:"image"` // base64-encoded jpg/png
}

type segmentResponse struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Labels []int  `json:"labels"` // row-major class ids
	Error  string `json:"error,omitempty"`
}

// Segment submits a prepared image and returns the per-pixel label map.
// Any transport or server failure is reported as a classification error.
func (c *Client) Segment(ctx context.Context, imgB64 string) (*segmentation.LabelMap, error) {
	var out segmentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(segmentRequest{Model: c.model, Image: imgB64}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/segment")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	if resp.StatusCode() != http.StatusOK {
		if out.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrClassification, out.Error)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrClassification, resp.StatusCode())
	}

	m, err := segmentation.NewLabelMap(out.Width, out.Height, out.Labels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	return m, nil
}

// Healthy reports whether the inference server answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	return err == nil && resp.StatusCode() == http.StatusOK
}
