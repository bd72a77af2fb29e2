package sources

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/mewkiz/flac"
	"github.com/user/audioexport/pkg/ports"
)

// FLACSource decodes a FLAC file frame by frame.
type FLACSource struct {
	path     string
	rate     int
	channels int
	bitDepth int
	samples  int64 // -1 when the stream info doesn't say
}

// NewFLACSource reads the stream info of path.
func NewFLACSource(path string) (*FLACSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	s := &FLACSource{
		path:     path,
		rate:     int(info.SampleRate),
		channels: int(info.NChannels),
		bitDepth: int(info.BitsPerSample),
		samples:  int64(info.NSamples),
	}
	if info.NSamples == 0 {
		s.samples = -1
	}
	return s, nil
}

// Channels implements ports.FrameSource.
func (s *FLACSource) Channels() int { return s.channels }

// SampleRate returns the native sample rate of the file.
func (s *FLACSource) SampleRate() int { return s.rate }

// BitDepth returns the bits per sample of the file.
func (s *FLACSource) BitDepth() int { return s.bitDepth }

// Chunks implements ports.FrameSource. Each pass reopens the file.
func (s *FLACSource) Chunks(opts ports.ChunkOptions) iter.Seq2[[]byte, error] {
	return chunks(func(ports.ChunkOptions) (pcmReader, error) {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open FLAC file: %w", err)
		}
		stream, err := flac.New(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to decode FLAC: %w", err)
		}
		return &flacReader{
			src:    s,
			file:   f,
			stream: stream,
			scale:  float64(int64(1) << (s.bitDepth - 1)),
		}, nil
	}, opts)
}

type flacReader struct {
	src    *FLACSource
	file   *os.File
	stream *flac.Stream
	scale  float64

	// decoded samples of the current FLAC frame, interleaved
	pending []float64
}

func (r *flacReader) sampleRate() int { return r.src.rate }
func (r *flacReader) channels() int   { return r.src.channels }
func (r *flacReader) frames() int64   { return r.src.samples }
func (r *flacReader) close() error    { return r.file.Close() }

func (r *flacReader) read(buf []float64) (int, error) {
	ch := r.src.channels
	if len(r.pending) == 0 {
		frame, err := r.stream.ParseNext()
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		block := int(frame.BlockSize)
		r.pending = r.pending[:0]
		for i := 0; i < block; i++ {
			for c := 0; c < ch; c++ {
				r.pending = append(r.pending, float64(frame.Subframes[c].Samples[i])/r.scale)
			}
		}
	}

	n := min(len(buf)/ch, len(r.pending)/ch)
	copy(buf, r.pending[:n*ch])
	r.pending = r.pending[n*ch:]
	return n, nil
}

// Ensure FLACSource implements ports.FrameSource
var _ ports.FrameSource = (*FLACSource)(nil)
