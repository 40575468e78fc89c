package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
)

// Device is a live video frame source. Close must halt every underlying
// track; a closed device stops producing frames.
type Device interface {
	Frame() (image.Image, error)
	Close() error
}

// Opener acquires a device at the requested resolution. Implementations are
// expected to be best-effort single acquisitions: no enumeration, no retry
// backoff.
type Opener func(ctx context.Context, width, height int) (Device, error)

var errDeviceClosed = errors.New("device closed")

// SyntheticDevice renders a deterministic test-card frame. It stands in for
// a real camera so the capture flow never blocks a demo on missing hardware,
// the same policy the dataset fallback follows.
type SyntheticDevice struct {
	mu     sync.Mutex
	width  int
	height int
	closed bool
}

// OpenSynthetic is an Opener returning a SyntheticDevice.
func OpenSynthetic(_ context.Context, width, height int) (Device, error) {
	return &SyntheticDevice{width: width, height: height}, nil
}

func (d *SyntheticDevice) Frame() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errDeviceClosed
	}

	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / d.width),
				G: uint8(y * 255 / d.height),
				B: uint8((x + y) * 255 / (d.width + d.height)),
				A: 255,
			})
		}
	}
	return img, nil
}

func (d *SyntheticDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
