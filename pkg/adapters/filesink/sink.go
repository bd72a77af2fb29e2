// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/audioexport/pkg/ports"
)

// Sink saves debug output of one export session into a directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveInvocation saves the encoder command line, one argument per line.
func (s *Sink) SaveInvocation(args []string) error {
	path := filepath.Join(s.baseDir, "command.txt")
	return s.fs.WriteFile(path, []byte(strings.Join(args, "\n")+"\n"))
}

// SaveSessionJSON saves the session result as JSON.
func (s *Sink) SaveSessionJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "session.json")
	return s.fs.WriteFile(path, data)
}

// SaveWaveform saves the peak waveform as PNG.
func (s *Sink) SaveWaveform(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode waveform: %w", err)
	}
	path := filepath.Join(s.baseDir, "waveform.png")
	return s.fs.WriteFile(path, data)
}

// SaveDiagnostics saves the encoder diagnostics of a failed export.
func (s *Sink) SaveDiagnostics(text string) error {
	path := filepath.Join(s.baseDir, "diagnostics.txt")
	return s.fs.WriteFile(path, []byte(text))
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
