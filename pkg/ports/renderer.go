package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// RenderWaveform draws per-chunk peak levels (0..1) as a mirrored bar chart.
	RenderWaveform(peaks []float64, style WaveformStyle) image.Image

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// WaveformStyle defines waveform rendering properties.
type WaveformStyle struct {
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
