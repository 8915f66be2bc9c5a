// Package processing acquires street-level imagery and prepares it for the
// segmentation model: loading from file or URL, decoding (jpg/png/webp) and
// downscaling/encoding to the payload shipped to the inference server.
package processing

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	_ "golang.org/x/image/webp"
)

// ErrFetch marks a failure to acquire an image. The orchestrators treat it as
// a per-item failure, never as a reason to abort sibling batch items.
var ErrFetch = errors.New("processing: image fetch failed")

const (
	defaultFetchTimeout = 10 * time.Second
	defaultFetchRetries = 2
	userAgent           = "sidewalk-analyzer/1.0 (+https://github.com/safestreets/sidewalk-analyzer)"
)

// Processor handles image acquisition and preparation.
type Processor struct {
	http    *resty.Client
	retries uint64
}

// Option configures a Processor.
type Option func(*Processor)

// WithFetchTimeout overrides the per-download timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(p *Processor) { p.http.SetTimeout(d) }
}

// WithFetchRetries sets how many times a failed download is retried.
func WithFetchRetries(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.retries = uint64(n)
		}
	}
}

// NewProcessor creates a new image processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		http: resty.New().
			SetTimeout(defaultFetchTimeout).
			SetHeader("User-Agent", userAgent),
		retries: defaultFetchRetries,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadImageFromURL downloads and decodes an image. Transient download
// failures are retried with Fibonacci backoff; decode failures are not.
func (p *Processor) LoadImageFromURL(ctx context.Context, imageURL string) (image.Image, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL: %v", ErrFetch, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrFetch, parsed.Scheme)
	}

	var data []byte
	b := retry.NewFibonacci(200 * time.Millisecond)
	err = retry.Do(ctx, retry.WithMaxRetries(p.retries, b), func(ctx context.Context) error {
		resp, err := p.http.R().SetContext(ctx).Get(imageURL)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode() != http.StatusOK {
			err := fmt.Errorf("HTTP %d", resp.StatusCode())
			if resp.StatusCode() >= 500 {
				return retry.RetryableError(err)
			}
			return err
		}
		if ct := resp.Header().Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
			return fmt.Errorf("URL does not point to an image (Content-Type: %s)", ct)
		}
		data = resp.Body()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return p.decodeImageFromBytes(data)
}

// LoadImage loads an image from a file path with WebP support.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// imaging handles the registered decoders, including x/image's webp.
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown image format for %s", ErrFetch, path)
}

// LoadImageSmart loads an image from either a file path or URL.
func (p *Processor) LoadImageSmart(ctx context.Context, source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return p.LoadImageFromURL(ctx, source)
	}
	return p.LoadImage(source)
}

func (p *Processor) decodeImageFromBytes(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("%w: unknown or unsupported image format", ErrFetch)
}

// PrepareImageForModel downscales the image so its long side is at most
// maxDim (0 keeps the original size), encodes it as jpg or png and returns
// the base64 payload for the segmentation server.
func (p *Processor) PrepareImageForModel(img image.Image, format string, maxDim, quality int) (string, error) {
	if maxDim > 0 {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		if w > maxDim || h > maxDim {
			if w >= h {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
			}
		}
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return "", err
		}
	default: // jpg
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", err
		}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
