package sources

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/user/audioexport/pkg/ports"
)

// RawSource passes through PCM that is already quantized, such as a
// stream piped on stdin. Sample rate and width are taken as given; the
// reader can be consumed only once.
type RawSource struct {
	r        io.Reader
	channels int
}

// NewRawSource wraps r, which holds interleaved little-endian samples.
func NewRawSource(r io.Reader, channels int) *RawSource {
	return &RawSource{r: r, channels: channels}
}

// Channels implements ports.FrameSource.
func (s *RawSource) Channels() int { return s.channels }

// Chunks implements ports.FrameSource. Progress totals are reported as 0
// because the stream length is unknown.
func (s *RawSource) Chunks(opts ports.ChunkOptions) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if err := validateChunkOptions(opts); err != nil {
			yield(nil, err)
			return
		}
		if s.channels <= 0 {
			yield(nil, fmt.Errorf("raw source needs at least one channel, got %d", s.channels))
			return
		}

		size := opts.ChunkSize * s.channels * opts.SampleWidth
		for i := 1; ; i++ {
			buf := make([]byte, size)
			n, err := io.ReadFull(s.r, buf)
			last := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
			if err != nil && !last {
				yield(nil, fmt.Errorf("failed to read raw samples: %w", err))
				return
			}
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
				if opts.Progress != nil {
					opts.Progress(i, 0)
				}
			}
			if last {
				return
			}
		}
	}
}

// Ensure RawSource implements ports.FrameSource
var _ ports.FrameSource = (*RawSource)(nil)
