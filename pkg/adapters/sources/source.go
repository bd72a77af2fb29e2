// Package sources provides frame sources that produce quantized PCM chunks
// for an export: generated tones, decoded MP3 and FLAC files, and raw PCM
// streams.
package sources

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/user/audioexport/pkg/ports"
)

// ErrUnsupportedFormat is returned by Open for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// pcmReader yields interleaved float samples in [-1, 1].
type pcmReader interface {
	// read fills buf with whole frames and returns the number of frames
	// read. It returns io.EOF once no frames are left.
	read(buf []float64) (int, error)
	sampleRate() int
	channels() int
	// frames returns the total frame count, or -1 when unknown.
	frames() int64
	close() error
}

// opener creates a fresh reader for one pass over the source.
type opener func(opts ports.ChunkOptions) (pcmReader, error)

// Open picks a decoding source for path by its extension.
func Open(path string) (ports.FrameSource, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return NewMP3Source(path)
	case ".flac":
		return NewFLACSource(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: .mp3, .flac)", ErrUnsupportedFormat, ext)
	}
}

func validateChunkOptions(opts ports.ChunkOptions) error {
	if opts.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.SampleWidth < 1 || opts.SampleWidth > 4 {
		return fmt.Errorf("sample width must be between 1 and 4, got %d", opts.SampleWidth)
	}
	return nil
}

// chunkBounds splits total frames into total/size+1 evenly spaced chunks.
// bounds[i] and bounds[i+1] delimit chunk i; no chunk is longer than size.
func chunkBounds(total int64, size int) []int64 {
	n := total/int64(size) + 1
	bounds := make([]int64, n+1)
	for i := int64(0); i <= n; i++ {
		bounds[i] = i * total / n
	}
	return bounds
}

// readFrames reads until buf is full or the reader is exhausted.
func readFrames(r pcmReader, buf []float64) (int, error) {
	ch := r.channels()
	want := len(buf) / ch
	got := 0
	for got < want {
		n, err := r.read(buf[got*ch : want*ch])
		got += n
		if errors.Is(err, io.EOF) {
			return got, io.EOF
		}
		if err != nil {
			return got, err
		}
	}
	return got, nil
}

// chunks runs one pass over the reader opened by open, resampling to
// opts.SampleRate and quantizing to opts.SampleWidth.
func chunks(open opener, opts ports.ChunkOptions) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if err := validateChunkOptions(opts); err != nil {
			yield(nil, err)
			return
		}

		r, err := open(opts)
		if err != nil {
			yield(nil, err)
			return
		}
		defer r.close()

		if opts.SampleRate > 0 && opts.SampleRate != r.sampleRate() {
			r = newResampler(r, opts.SampleRate)
		}

		ch := r.channels()
		buf := make([]float64, opts.ChunkSize*ch)

		emit := func(size int) (more bool, ok bool) {
			n, err := readFrames(r, buf[:size*ch])
			if err != nil && !errors.Is(err, io.EOF) {
				yield(nil, fmt.Errorf("failed to read samples: %w", err))
				return false, false
			}
			if n > 0 && !yield(quantize(buf[:n*ch], opts.SampleWidth), nil) {
				return false, false
			}
			return err == nil, true
		}

		total := r.frames()
		if total < 0 {
			for i := 1; ; i++ {
				more, ok := emit(opts.ChunkSize)
				if !ok {
					return
				}
				if opts.Progress != nil {
					opts.Progress(i, 0)
				}
				if !more {
					return
				}
			}
		}

		bounds := chunkBounds(total, opts.ChunkSize)
		nchunks := len(bounds) - 1
		for i := 0; i < nchunks; i++ {
			more, ok := emit(int(bounds[i+1] - bounds[i]))
			if !ok {
				return
			}
			if opts.Progress != nil {
				opts.Progress(i+1, nchunks)
			}
			if !more {
				return
			}
		}

		// The frame count of a resampled stream is an estimate; flush the rest.
		for {
			more, ok := emit(opts.ChunkSize)
			if !ok || !more {
				return
			}
		}
	}
}
