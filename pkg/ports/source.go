package ports

import "iter"

// FrameSource produces consecutive PCM chunks of an audio track.
type FrameSource interface {
	// Channels returns the number of interleaved channels in each chunk.
	Channels() int

	// Chunks returns a lazy, finite sequence of quantized PCM chunks.
	// Each chunk holds at most opts.ChunkSize frames. A non-nil error ends
	// the sequence.
	Chunks(opts ChunkOptions) iter.Seq2[[]byte, error]
}

// ChunkOptions controls how a FrameSource slices and quantizes audio.
type ChunkOptions struct {
	ChunkSize   int // Frames per chunk
	SampleWidth int // Bytes per quantized sample
	SampleRate  int // Target rate in Hz

	// Progress is called after each chunk with the 1-based chunk index and
	// the expected chunk count (0 when unknown). May be nil.
	Progress func(done, total int)
}
