package ffmpegwriter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/user/audioexport/pkg/ports"
)

// diagnostics is where ffmpeg's stderr goes. It is one of
// capturedDiagnostics or fileDiagnostics, chosen at construction.
type diagnostics interface {
	// writer is handed to exec.Cmd.Stderr.
	writer() io.Writer
	// captured reports whether the writer owns the stream.
	captured() bool
	// collect returns everything ffmpeg wrote. Only valid after Wait.
	collect() (string, error)
}

// capturedDiagnostics buffers stderr in memory.
type capturedDiagnostics struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (d *capturedDiagnostics) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

func (d *capturedDiagnostics) writer() io.Writer { return d }
func (d *capturedDiagnostics) captured() bool    { return true }

func (d *capturedDiagnostics) collect() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.String(), nil
}

// fileDiagnostics redirects stderr into a caller-owned file.
type fileDiagnostics struct {
	file io.ReadWriteSeeker
}

func (d *fileDiagnostics) writer() io.Writer { return d.file }
func (d *fileDiagnostics) captured() bool    { return false }

func (d *fileDiagnostics) collect() (string, error) {
	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek log file: %w", err)
	}
	data, err := io.ReadAll(d.file)
	if err != nil {
		return "", fmt.Errorf("read log file: %w", err)
	}
	return string(data), nil
}

func newDiagnostics(logFile io.ReadWriteSeeker) diagnostics {
	if logFile == nil {
		return &capturedDiagnostics{}
	}
	return &fileDiagnostics{file: logFile}
}

// HintKind identifies a recognized ffmpeg failure.
type HintKind int

const (
	HintNone HintKind = iota
	HintUnknownEncoder
	HintIncompatibleExtension
	HintBitrate
	HintNotAudio
)

func (k HintKind) String() string {
	switch k {
	case HintUnknownEncoder:
		return "unknown-encoder"
	case HintIncompatibleExtension:
		return "incompatible-extension"
	case HintBitrate:
		return "bitrate"
	case HintNotAudio:
		return "not-audio"
	default:
		return "none"
	}
}

// Hint is a remediation message matched from ffmpeg diagnostics.
type Hint struct {
	Kind HintKind
	Text string
}

// hintRules is evaluated top to bottom; the first marker found wins.
var hintRules = []struct {
	marker string
	kind   HintKind
	text   func(cfg ports.EncoderConfig) string
}{
	{
		marker: "Unknown encoder",
		kind:   HintUnknownEncoder,
		text: func(cfg ports.EncoderConfig) string {
			return fmt.Sprintf("The audio export failed because ffmpeg didn't find the specified codec "+
				"for audio encoding %s. Install this codec or pick another one, "+
				"for instance libmp3lame for mp3 files.", cfg.Codec)
		},
	},
	{
		marker: "incorrect codec parameters ?",
		kind:   HintIncompatibleExtension,
		text: func(cfg ports.EncoderConfig) string {
			return fmt.Sprintf("The audio export failed, possibly because the codec %s is not "+
				"compatible with the extension %s. Pick a codec that matches the extension: "+
				"libmp3lame for mp3, libvorbis for ogg...", cfg.Codec, cfg.Extension())
		},
	},
	{
		marker: "bitrate not specified",
		kind:   HintBitrate,
		text: func(ports.EncoderConfig) string {
			return "The audio export failed, possibly because the bitrate you specified " +
				"was too high or too low for the audio codec."
		},
	},
	{
		marker: "Invalid encoder type",
		kind:   HintNotAudio,
		text: func(ports.EncoderConfig) string {
			return "The audio export failed because the codec or file extension you " +
				"provided is not suitable for audio."
		},
	},
}

// Classify matches ffmpeg diagnostic text against the known failure markers.
func Classify(text string, cfg ports.EncoderConfig) Hint {
	for _, rule := range hintRules {
		if strings.Contains(text, rule.marker) {
			return Hint{Kind: rule.kind, Text: rule.text(cfg)}
		}
	}
	return Hint{}
}
