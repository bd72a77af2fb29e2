package sources

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/user/audioexport/pkg/ports"
)

// MP3Source decodes an MP3 file. The decoder always produces 16-bit stereo.
type MP3Source struct {
	path string
	rate int
}

// NewMP3Source checks that path decodes as MP3.
func NewMP3Source(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	return &MP3Source{path: path, rate: decoder.SampleRate()}, nil
}

// Channels implements ports.FrameSource.
func (s *MP3Source) Channels() int { return 2 }

// SampleRate returns the native sample rate of the file.
func (s *MP3Source) SampleRate() int { return s.rate }

// Chunks implements ports.FrameSource. Each pass reopens the file.
func (s *MP3Source) Chunks(opts ports.ChunkOptions) iter.Seq2[[]byte, error] {
	return chunks(func(ports.ChunkOptions) (pcmReader, error) {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open MP3 file: %w", err)
		}
		decoder, err := mp3.NewDecoder(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to decode MP3: %w", err)
		}
		return &mp3Reader{file: f, dec: decoder}, nil
	}, opts)
}

type mp3Reader struct {
	file *os.File
	dec  *mp3.Decoder
	raw  []byte
}

// 2 channels of 2 bytes each
const mp3FrameBytes = 4

func (r *mp3Reader) sampleRate() int { return r.dec.SampleRate() }
func (r *mp3Reader) channels() int   { return 2 }
func (r *mp3Reader) close() error    { return r.file.Close() }

func (r *mp3Reader) frames() int64 {
	n := r.dec.Length()
	if n < 0 {
		return -1
	}
	return n / mp3FrameBytes
}

func (r *mp3Reader) read(buf []float64) (int, error) {
	want := len(buf) / 2 * mp3FrameBytes
	if cap(r.raw) < want {
		r.raw = make([]byte, want)
	}
	raw := r.raw[:want]

	n, err := io.ReadFull(r.dec, raw)
	frames := n / mp3FrameBytes
	for i := 0; i < frames*2; i++ {
		buf[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768
	}

	switch {
	case err == nil:
		return frames, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if frames == 0 {
			return 0, io.EOF
		}
		return frames, nil
	default:
		return frames, err
	}
}

// Ensure MP3Source implements ports.FrameSource
var _ ports.FrameSource = (*MP3Source)(nil)
