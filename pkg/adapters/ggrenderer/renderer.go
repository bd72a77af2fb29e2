// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/audioexport/pkg/ports"
)

// Waveforms are drawn at this multiple of the target size and scaled down.
const supersample = 2

var (
	defaultBackground = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	defaultForeground = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderWaveform draws one mirrored bar per peak around the horizontal
// center line. Zero-valued style fields fall back to 800x160 and a dark
// theme.
func (r *Renderer) RenderWaveform(peaks []float64, style ports.WaveformStyle) image.Image {
	width, height := style.Width, style.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 160
	}
	bg, fg := style.Background, style.Foreground
	if bg == nil {
		bg = defaultBackground
	}
	if fg == nil {
		fg = defaultForeground
	}

	w, h := float64(width*supersample), float64(height*supersample)
	dc := gg.NewContext(int(w), int(h))
	dc.SetColor(bg)
	dc.Clear()

	mid := h / 2
	dc.SetColor(fg)
	dc.SetLineWidth(supersample)
	dc.DrawLine(0, mid, w, mid)
	dc.Stroke()

	if len(peaks) > 0 {
		slot := w / float64(len(peaks))
		bar := max(slot*0.8, 1)
		for i, p := range peaks {
			p = max(0, min(1, p))
			half := p * (mid - supersample)
			if half < 0.5 {
				continue
			}
			x := float64(i)*slot + (slot-bar)/2
			dc.DrawRoundedRectangle(x, mid-half, bar, 2*half, min(bar/2, supersample*2))
		}
		dc.Fill()
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := dc.Image()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
