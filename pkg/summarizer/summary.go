// Package summarizer provides summary generation for export results.
package summarizer

import "time"

// Summary contains all data collected during an export session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	SessionID   string

	// Input description, e.g. the source file or "tone 440 Hz"
	Input string

	// Export settings
	Settings Settings

	// Output details
	Output OutputInfo
}

// Settings contains the export configuration.
type Settings struct {
	Preset      string
	Quality     string
	Codec       string
	Bitrate     string
	SampleRate  int
	SampleWidth int // bytes
	Channels    int
}

// OutputInfo contains information about the written file.
type OutputInfo struct {
	Path     string
	FileSize int64
	Chunks   int
	PCMBytes int64

	// Set when the container was probed
	Container  string
	AudioCodec string
	VideoCodec string
}

// DurationMs derives the audio duration from the PCM byte count. It is 0
// when the sample format is incomplete.
func (s *Summary) DurationMs() int64 {
	frameBytes := int64(s.Settings.SampleWidth * s.Settings.Channels)
	if frameBytes <= 0 || s.Settings.SampleRate <= 0 {
		return 0
	}
	frames := s.Output.PCMBytes / frameBytes
	return frames * 1000 / int64(s.Settings.SampleRate)
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets the session id.
func (b *Builder) WithSession(id string) *Builder {
	b.summary.SessionID = id
	return b
}

// WithInput sets the input description.
func (b *Builder) WithInput(input string) *Builder {
	b.summary.Input = input
	return b
}

// WithSettings sets export settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
