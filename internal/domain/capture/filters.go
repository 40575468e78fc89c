package capture

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"time"
)

// Cosmetic filter names, in display order.
const (
	FilterNone      = "none"
	FilterGrayscale = "grayscale"
	FilterSepia     = "sepia"
	FilterVivid     = "vivid"
	FilterNoir      = "noir"
)

var FilterNames = []string{FilterNone, FilterGrayscale, FilterSepia, FilterVivid, FilterNoir}

var ErrUnknownFilter = errors.New("unknown filter")

func ValidFilter(name string) bool {
	for _, f := range FilterNames {
		if f == name {
			return true
		}
	}
	return false
}

// Photo is a captured still plus the employee it was taken for and the
// currently selected cosmetic filter. It lives only between capture and
// retake or back-navigation.
type Photo struct {
	EmployeeID string
	FirstName  string
	LastName   string
	Filter     string
	Taken      time.Time
	img        *image.RGBA
}

// Filename is the export name, derived from the subject.
func (p *Photo) Filename() string {
	return p.FirstName + "_" + p.LastName + "_photo.png"
}

func (p *Photo) SetFilter(name string) error {
	if !ValidFilter(name) {
		return ErrUnknownFilter
	}
	p.Filter = name
	return nil
}

// PNG encodes the photo with the given filter baked in; an empty name uses
// the photo's selected filter.
func (p *Photo) PNG(filter string) ([]byte, error) {
	if filter == "" {
		filter = p.Filter
	}
	if !ValidFilter(filter) {
		return nil, ErrUnknownFilter
	}
	filtered := applyFilter(p.img, filter)
	var buf bytes.Buffer
	if err := png.Encode(&buf, filtered); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Photo) Bounds() image.Rectangle {
	return p.img.Bounds()
}

// applyFilter runs the per-pixel color pipeline for one of the fixed looks.
// The source image is never mutated.
func applyFilter(src *image.RGBA, filter string) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	switch filter {
	case FilterGrayscale:
		eachPixel(out, func(r, g, b float64) (float64, float64, float64) {
			return grayscale(r, g, b, 1)
		})
	case FilterSepia:
		eachPixel(out, func(r, g, b float64) (float64, float64, float64) {
			return sepia(r, g, b, 0.8)
		})
	case FilterVivid:
		eachPixel(out, func(r, g, b float64) (float64, float64, float64) {
			r, g, b = saturate(r, g, b, 1.8)
			return contrast(r, g, b, 1.1)
		})
	case FilterNoir:
		eachPixel(out, func(r, g, b float64) (float64, float64, float64) {
			r, g, b = contrast(r, g, b, 1.5)
			r, g, b = brightness(r, g, b, 0.7)
			return grayscale(r, g, b, 0.5)
		})
	}
	return out
}

func eachPixel(img *image.RGBA, fn func(r, g, b float64) (float64, float64, float64)) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := fn(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
		pix[i] = clamp8(r)
		pix[i+1] = clamp8(g)
		pix[i+2] = clamp8(b)
	}
}

func luma(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func grayscale(r, g, b, amount float64) (float64, float64, float64) {
	l := luma(r, g, b)
	return mix(r, l, amount), mix(g, l, amount), mix(b, l, amount)
}

func sepia(r, g, b, amount float64) (float64, float64, float64) {
	sr := 0.393*r + 0.769*g + 0.189*b
	sg := 0.349*r + 0.686*g + 0.168*b
	sb := 0.272*r + 0.534*g + 0.131*b
	return mix(r, sr, amount), mix(g, sg, amount), mix(b, sb, amount)
}

func saturate(r, g, b, amount float64) (float64, float64, float64) {
	l := luma(r, g, b)
	return mix(l, r, amount), mix(l, g, amount), mix(l, b, amount)
}

func contrast(r, g, b, amount float64) (float64, float64, float64) {
	adjust := func(v float64) float64 { return (v-128)*amount + 128 }
	return adjust(r), adjust(g), adjust(b)
}

func brightness(r, g, b, amount float64) (float64, float64, float64) {
	return r * amount, g * amount, b * amount
}

func mix(from, to, amount float64) float64 {
	return from + (to-from)*amount
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
