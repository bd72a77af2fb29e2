package mocks

import (
	"image"

	"github.com/user/audioexport/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	RenderWaveformFunc func(peaks []float64, style ports.WaveformStyle) image.Image
	EncodeImageFunc    func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	// Recorded calls for verification
	WaveformPeaks [][]float64
}

func (m *Renderer) RenderWaveform(peaks []float64, style ports.WaveformStyle) image.Image {
	m.WaveformPeaks = append(m.WaveformPeaks, peaks)
	if m.RenderWaveformFunc != nil {
		return m.RenderWaveformFunc(peaks, style)
	}
	return image.NewRGBA(image.Rect(0, 0, style.Width, style.Height))
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

var _ ports.Renderer = (*Renderer)(nil)
