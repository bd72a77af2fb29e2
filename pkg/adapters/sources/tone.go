package sources

import (
	"fmt"
	"io"
	"iter"
	"math"
	"time"

	"github.com/user/audioexport/pkg/ports"
)

// ToneSource generates a sine tone, the same on every channel.
type ToneSource struct {
	Frequency   float64       // Hz
	Duration    time.Duration // Length of the tone
	Amplitude   float64       // Peak level, 0 to 1
	NumChannels int
}

// NewToneSource returns a tone at half amplitude.
func NewToneSource(frequency float64, duration time.Duration, channels int) *ToneSource {
	return &ToneSource{
		Frequency:   frequency,
		Duration:    duration,
		Amplitude:   0.5,
		NumChannels: channels,
	}
}

// Channels implements ports.FrameSource.
func (s *ToneSource) Channels() int { return s.NumChannels }

// Chunks implements ports.FrameSource. The tone is generated directly at
// opts.SampleRate.
func (s *ToneSource) Chunks(opts ports.ChunkOptions) iter.Seq2[[]byte, error] {
	return chunks(func(opts ports.ChunkOptions) (pcmReader, error) {
		if opts.SampleRate <= 0 {
			return nil, fmt.Errorf("tone needs a sample rate, got %d", opts.SampleRate)
		}
		if s.NumChannels <= 0 {
			return nil, fmt.Errorf("tone needs at least one channel, got %d", s.NumChannels)
		}
		return &toneReader{
			src:   s,
			rate:  opts.SampleRate,
			total: int64(s.Duration.Seconds() * float64(opts.SampleRate)),
		}, nil
	}, opts)
}

type toneReader struct {
	src   *ToneSource
	rate  int
	total int64
	pos   int64
}

func (r *toneReader) sampleRate() int { return r.rate }
func (r *toneReader) channels() int   { return r.src.NumChannels }
func (r *toneReader) frames() int64   { return r.total }
func (r *toneReader) close() error    { return nil }

func (r *toneReader) read(buf []float64) (int, error) {
	if r.pos >= r.total {
		return 0, io.EOF
	}
	ch := r.src.NumChannels
	n := int(min(int64(len(buf)/ch), r.total-r.pos))
	step := 2 * math.Pi * r.src.Frequency / float64(r.rate)
	for i := 0; i < n; i++ {
		v := r.src.Amplitude * math.Sin(step*float64(r.pos+int64(i)))
		for c := 0; c < ch; c++ {
			buf[i*ch+c] = v
		}
	}
	r.pos += int64(n)
	return n, nil
}

// Ensure ToneSource implements ports.FrameSource
var _ ports.FrameSource = (*ToneSource)(nil)
