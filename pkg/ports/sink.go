package ports

import (
	"image"
)

// DebugSink abstracts debug output for an export session.
// It allows saving intermediate results for troubleshooting.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveInvocation saves the encoder command line.
	SaveInvocation(args []string) error

	// SaveSessionJSON saves the session result as JSON.
	SaveSessionJSON(data []byte) error

	// SaveWaveform saves a rendered peak waveform of the exported audio.
	SaveWaveform(img image.Image) error

	// SaveDiagnostics saves the encoder diagnostic text of a failed export.
	SaveDiagnostics(text string) error
}
