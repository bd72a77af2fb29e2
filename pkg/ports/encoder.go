// Package ports defines interfaces for external dependencies of an export.
package ports

import (
	"errors"
	"path/filepath"
	"strings"
)

// AudioWriter abstracts a sink that accepts raw PCM chunks and finalizes an
// encoded file when closed.
type AudioWriter interface {
	// Write pushes one chunk of interleaved little-endian PCM samples.
	// It may block until the encoder drains its input.
	Write(chunk []byte) error

	// Close finalizes the output and releases the encoder.
	// Calling Close more than once is a no-op.
	Close() error
}

// EncoderConfig describes one audio export. It is built once and never
// mutated afterwards.
type EncoderConfig struct {
	Filename    string   // Target file path
	SampleRate  int      // Input sample rate in Hz
	SampleWidth int      // Bytes per sample (1-4)
	Channels    int      // Interleaved channel count
	Codec       string   // ffmpeg encoder name, e.g. "libmp3lame"
	Bitrate     string   // Optional, e.g. "192k"
	InputVideo  string   // Optional video file to mux the audio against
	Params      []string // Extra encoder arguments, passed through in order
}

// ErrInvalidConfig is returned by EncoderConfig.Validate.
var ErrInvalidConfig = errors.New("invalid encoder config")

// Validate checks the invariants of the configuration.
func (c EncoderConfig) Validate() error {
	switch {
	case c.Filename == "":
		return errors.Join(ErrInvalidConfig, errors.New("filename is empty"))
	case c.SampleRate <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("sample rate must be positive"))
	case c.SampleWidth <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("sample width must be positive"))
	case c.Channels <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("channel count must be positive"))
	case c.Codec == "":
		return errors.Join(ErrInvalidConfig, errors.New("codec is empty"))
	}
	return nil
}

// Extension returns the target file extension without the leading dot.
func (c EncoderConfig) Extension() string {
	return strings.TrimPrefix(filepath.Ext(c.Filename), ".")
}

// DiagnosticError is implemented by write errors that carry the encoder's
// own diagnostic output.
type DiagnosticError interface {
	error
	DiagnosticText() string
}
