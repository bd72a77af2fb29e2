package ffmpegwriter

import (
	"errors"
	"fmt"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegwriter: ffmpeg not found")

	// ErrClosed is returned when Write is called after the writer released
	// its process. It signals a caller bug, not an encoder failure.
	ErrClosed = errors.New("ffmpegwriter: write on closed writer")
)

// WriteError is returned by Write when ffmpeg stopped accepting input.
// By the time it is returned the process has been reaped.
type WriteError struct {
	Err         error  // The failed pipe write
	Path        string // Target file
	Diagnostics string // ffmpeg's diagnostic output
	Hint        Hint   // Remediation matched from Diagnostics
	ExitCode    int    // ffmpeg exit status, -1 if unknown
}

func (e *WriteError) Error() string {
	msg := fmt.Sprintf("%v\n\nffmpeg encountered the following error while writing file %s:\n\n %s",
		e.Err, e.Path, e.Diagnostics)
	if e.Hint.Text != "" {
		msg += "\n\n" + e.Hint.Text
	}
	return msg
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// DiagnosticText returns ffmpeg's diagnostic output.
func (e *WriteError) DiagnosticText() string {
	return e.Diagnostics
}
