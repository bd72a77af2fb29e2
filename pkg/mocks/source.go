package mocks

import (
	"iter"

	"github.com/user/audioexport/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that replays
// fixed chunks, optionally failing at a given index.
type FrameSource struct {
	NumChannels int
	Data        [][]byte

	// FailAt makes the sequence yield Err instead of Data[FailAt].
	// Negative disables failure.
	FailAt int
	Err    error

	// Recorded calls for verification
	Options  []ports.ChunkOptions
	Consumed int
}

// NewFrameSource creates a stereo source replaying chunks.
func NewFrameSource(chunks ...[]byte) *FrameSource {
	return &FrameSource{NumChannels: 2, Data: chunks, FailAt: -1}
}

func (m *FrameSource) Channels() int { return m.NumChannels }

func (m *FrameSource) Chunks(opts ports.ChunkOptions) iter.Seq2[[]byte, error] {
	m.Options = append(m.Options, opts)
	return func(yield func([]byte, error) bool) {
		for i, chunk := range m.Data {
			if i == m.FailAt {
				yield(nil, m.Err)
				return
			}
			m.Consumed++
			if !yield(chunk, nil) {
				return
			}
			if opts.Progress != nil {
				opts.Progress(i+1, len(m.Data))
			}
		}
	}
}

var _ ports.FrameSource = (*FrameSource)(nil)
