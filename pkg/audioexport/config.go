// Package audioexport provides a high-level API for exporting audio through
// ffmpeg.
package audioexport

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/user/audioexport/pkg/adapters/ffmpegwriter"
	"github.com/user/audioexport/pkg/orchestrator"
	"github.com/user/audioexport/pkg/pipeline"
)

// ErrNoCodec is returned when no codec was set and none is known for the
// output's extension.
var ErrNoCodec = errors.New("no codec for output")

// QualityPreset represents an audio quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// QualitySettings contains quality parameters for audio encoding.
type QualitySettings struct {
	Bitrate    string // Encoder bitrate, e.g. "192k"
	SampleRate int    // Output sample rate in Hz
}

// GetQualitySettings returns quality settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityLow:
		return QualitySettings{
			Bitrate:    "96k",
			SampleRate: 22050,
		}
	case QualityHigh:
		return QualitySettings{
			Bitrate:    "320k",
			SampleRate: 48000,
		}
	default: // medium
		return QualitySettings{
			Bitrate:    "192k",
			SampleRate: 44100,
		}
	}
}

// Config represents the configuration for an audio export.
type Config struct {
	// Sample format
	SampleRate  int // Sample rate in Hz (default: 44100)
	SampleWidth int // Bytes per sample, 1-4 (default: 2)
	Channels    int // Channel count; 0 follows the source

	// Encoding
	Codec      string   // ffmpeg encoder; empty picks one from the extension
	Bitrate    string   // e.g. "192k"; empty leaves the encoder default
	Params     []string // Extra ffmpeg arguments
	InputVideo string   // Optional video to mux the audio against

	// Streaming
	ChunkSize    int  // Frames per chunk (default: 2000)
	WriteLogFile bool // Write ffmpeg diagnostics to <output>.log

	// Verify probes the written file
	Verify bool

	// Waveform debug image
	WaveformWidth      int
	WaveformHeight     int
	WaveformBackground color.Color
	WaveformForeground color.Color
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with music preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: musicDefaults(),
	}
}

// NewVoiceConfigBuilder creates a new ConfigBuilder with voice preset
// defaults: mono, low rate, low bitrate.
func NewVoiceConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: voiceDefaults(),
	}
}

// musicDefaults returns the music preset configuration.
func musicDefaults() Config {
	return Config{
		// Sample format
		SampleRate:  44100,
		SampleWidth: 2,

		// Encoding (medium quality preset)
		Bitrate: "192k",

		// Streaming
		ChunkSize: pipeline.DefaultChunkSize,

		Verify: true,

		WaveformWidth:  800,
		WaveformHeight: 160,
	}
}

// voiceDefaults returns the voice preset configuration.
func voiceDefaults() Config {
	return Config{
		// Sample format
		SampleRate:  22050,
		SampleWidth: 2,
		Channels:    1,

		// Encoding (low quality preset)
		Bitrate: "96k",

		// Streaming
		ChunkSize: pipeline.DefaultChunkSize,

		Verify: true,

		WaveformWidth:  800,
		WaveformHeight: 160,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Sample width outside 1-4 falls back to 16-bit
	if cfg.SampleWidth < 1 || cfg.SampleWidth > 4 {
		cfg.SampleWidth = 2
	}

	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = pipeline.DefaultChunkSize
	}

	if cfg.Channels < 0 {
		cfg.Channels = 0
	}

	return cfg
}

// WithSampleRate sets the sample rate in Hz.
func (b *ConfigBuilder) WithSampleRate(rate int) *ConfigBuilder {
	b.config.SampleRate = rate
	return b
}

// WithSampleWidth sets the bytes per sample.
// Values outside 1-4 will be forced to 2.
func (b *ConfigBuilder) WithSampleWidth(width int) *ConfigBuilder {
	b.config.SampleWidth = width
	return b
}

// WithChannels sets the channel count. 0 follows the source.
func (b *ConfigBuilder) WithChannels(channels int) *ConfigBuilder {
	b.config.Channels = channels
	return b
}

// WithCodec sets the ffmpeg encoder.
func (b *ConfigBuilder) WithCodec(codec string) *ConfigBuilder {
	b.config.Codec = codec
	return b
}

// WithBitrate sets the encoder bitrate, e.g. "192k".
func (b *ConfigBuilder) WithBitrate(bitrate string) *ConfigBuilder {
	b.config.Bitrate = bitrate
	return b
}

// WithQualityPreset applies a quality preset (low, medium, high).
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	settings := GetQualitySettings(preset)
	b.config.Bitrate = settings.Bitrate
	b.config.SampleRate = settings.SampleRate
	return b
}

// WithParams sets extra ffmpeg arguments, passed through in order.
func (b *ConfigBuilder) WithParams(params ...string) *ConfigBuilder {
	b.config.Params = append([]string(nil), params...)
	return b
}

// WithInputVideo sets a video file to mux the audio against.
func (b *ConfigBuilder) WithInputVideo(path string) *ConfigBuilder {
	b.config.InputVideo = path
	return b
}

// WithChunkSize sets the number of frames per chunk.
// Values below 1 will be forced to the default.
func (b *ConfigBuilder) WithChunkSize(frames int) *ConfigBuilder {
	b.config.ChunkSize = frames
	return b
}

// WithLogFile enables writing ffmpeg diagnostics next to the output.
func (b *ConfigBuilder) WithLogFile(enabled bool) *ConfigBuilder {
	b.config.WriteLogFile = enabled
	return b
}

// WithVerify enables probing the written file.
func (b *ConfigBuilder) WithVerify(enabled bool) *ConfigBuilder {
	b.config.Verify = enabled
	return b
}

// WithWaveformSize sets the debug waveform dimensions.
func (b *ConfigBuilder) WithWaveformSize(width, height int) *ConfigBuilder {
	b.config.WaveformWidth = width
	b.config.WaveformHeight = height
	return b
}

// WithWaveformColors sets the debug waveform colors.
func (b *ConfigBuilder) WithWaveformColors(background, foreground color.Color) *ConfigBuilder {
	b.config.WaveformBackground = background
	b.config.WaveformForeground = foreground
	return b
}

// ResolveCodec returns the configured codec, or the default one for
// outputPath's extension.
func (c Config) ResolveCodec(outputPath string) (string, error) {
	if c.Codec != "" {
		return c.Codec, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(outputPath), ".")
	codec, ok := ffmpegwriter.CodecForExtension(ext, c.SampleWidth)
	if !ok {
		return "", fmt.Errorf("%w: unknown extension %q, set a codec", ErrNoCodec, ext)
	}
	return codec, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(outputPath, sessionID string) (orchestrator.Config, error) {
	codec, err := c.ResolveCodec(outputPath)
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		SessionID:  sessionID,
		OutputPath: outputPath,
		Codec:      codec,
		Bitrate:    c.Bitrate,
		Params:     c.Params,
		InputVideo: c.InputVideo,

		SampleRate:  c.SampleRate,
		SampleWidth: c.SampleWidth,
		Channels:    c.Channels,

		ChunkSize:    c.ChunkSize,
		WriteLogFile: c.WriteLogFile,
		Verify:       c.Verify,

		WaveformWidth:      c.WaveformWidth,
		WaveformHeight:     c.WaveformHeight,
		WaveformBackground: colorToArray(c.WaveformBackground),
		WaveformForeground: colorToArray(c.WaveformForeground),
	}, nil
}

// colorToArray converts color.Color to [4]uint8 array. nil maps to zero.
func colorToArray(c color.Color) [4]uint8 {
	if c == nil {
		return [4]uint8{}
	}
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
