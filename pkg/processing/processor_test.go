package processing

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// createTestImage creates a simple gradient test image.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8((x * 255) / width), uint8((y * 255) / height), 128, 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestLoadImageFromURL(t *testing.T) {
	data := encodeJPEG(t, createTestImage(64, 48))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(data)
	}))
	defer srv.Close()

	p := NewProcessor()
	img, err := p.LoadImageFromURL(context.Background(), srv.URL+"/street.jpg")
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())
}

func TestLoadImageFromURLRetriesServerErrors(t *testing.T) {
	data := encodeJPEG(t, createTestImage(8, 8))
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(data)
	}))
	defer srv.Close()

	p := NewProcessor(WithFetchRetries(2), WithFetchTimeout(5*time.Second))
	_, err := p.LoadImageFromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestLoadImageFromURLClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProcessor(WithFetchRetries(3))
	_, err := p.LoadImageFromURL(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFetch)
	require.Equal(t, int32(1), calls.Load())
}

func TestLoadImageFromURLRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	p := NewProcessor()
	_, err := p.LoadImageFromURL(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFetch)
}

func TestLoadImageFromURLBadScheme(t *testing.T) {
	p := NewProcessor()
	_, err := p.LoadImageFromURL(context.Background(), "ftp://example.com/a.jpg")
	require.ErrorIs(t, err, ErrFetch)
}

func TestLoadImageSmartDispatch(t *testing.T) {
	p := NewProcessor()
	_, err := p.LoadImageSmart(context.Background(), "/nonexistent/path.jpg")
	require.ErrorIs(t, err, ErrFetch)
}

func TestPrepareImageForModel(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(400, 200)

	b64, err := p.PrepareImageForModel(img, "jpg", 100, 85)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	// Long side capped at 100, aspect preserved.
	require.Equal(t, 100, decoded.Bounds().Dx())
	require.Equal(t, 50, decoded.Bounds().Dy())
}

func TestPrepareImageForModelNoResize(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(40, 30)

	b64, err := p.PrepareImageForModel(img, "png", 0, 0)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 40, decoded.Bounds().Dx())
	require.Equal(t, 30, decoded.Bounds().Dy())
}
