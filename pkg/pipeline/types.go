package pipeline

import (
	"github.com/user/audioexport/pkg/ports"
)

// DefaultChunkSize is the number of frames pushed to the encoder per write.
const DefaultChunkSize = 2000

// =============================================================================
// Export Stage Types
// =============================================================================

// ExportInput describes one streaming export.
type ExportInput struct {
	// Encoder is the encoder configuration. A zero Channels is taken from
	// Source.
	Encoder ports.EncoderConfig

	// Source produces the PCM chunks.
	Source ports.FrameSource

	// ChunkSize is the number of frames per chunk (default: 2000).
	ChunkSize int

	// WriteLogFile redirects encoder diagnostics to <Filename>.log.
	WriteLogFile bool
}

// ExportResult contains the outcome of an export.
type ExportResult struct {
	Filename string   `json:"filename"`
	Args     []string `json:"args,omitempty"` // Encoder invocation, when the writer exposes it
	LogPath  string   `json:"log_path,omitempty"`
	Chunks   int      `json:"chunks"`
	Bytes    int64    `json:"bytes"` // PCM bytes written

	// Peaks holds the peak level (0..1) of each chunk.
	Peaks []float64 `json:"-"`
}

// =============================================================================
// Verify Stage Types
// =============================================================================

// VerifyInput names the file to verify.
type VerifyInput struct {
	Path string
}

// VerifyResult contains what is known about the written file.
type VerifyResult struct {
	Size   int64            `json:"size"`
	Probed bool             `json:"probed"`
	Media  *ports.MediaInfo `json:"media,omitempty"`
}
