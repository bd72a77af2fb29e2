// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/audioexport/pkg/audioexport"
)

// Config represents the full configuration file for audioexport.
type Config struct {
	// ffmpeg binary; empty searches FFMPEG_PATH, FFMPEG_BINARY and PATH
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error, quiet
	LogFormat string `yaml:"log_format"` // console or json

	Export   ExportConfig   `yaml:"export"`
	Waveform WaveformConfig `yaml:"waveform"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ExportConfig represents encoding settings. Zero values keep the builder's
// preset.
type ExportConfig struct {
	Preset      string   `yaml:"preset"` // music or voice
	Quality     string   `yaml:"quality"`
	SampleRate  int      `yaml:"sample_rate"`
	SampleWidth int      `yaml:"sample_width"`
	Channels    int      `yaml:"channels"`
	Codec       string   `yaml:"codec"`
	Bitrate     string   `yaml:"bitrate"`
	Params      []string `yaml:"params"`
	ChunkSize   int      `yaml:"chunk_size"`
	LogFile     bool     `yaml:"log_file"`
	Verify      *bool    `yaml:"verify"`
}

// WaveformConfig represents the debug waveform image.
type WaveformConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",

		Export: ExportConfig{
			Preset: "music",
		},

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Builder returns a ConfigBuilder for the configured preset with every
// non-zero export setting applied.
func (c Config) Builder() (*audioexport.ConfigBuilder, error) {
	var b *audioexport.ConfigBuilder
	switch c.Export.Preset {
	case "", "music":
		b = audioexport.NewConfigBuilder()
	case "voice":
		b = audioexport.NewVoiceConfigBuilder()
	default:
		return nil, fmt.Errorf("unknown preset %q", c.Export.Preset)
	}
	return b, c.ApplyTo(b)
}

// ApplyTo applies the non-zero settings of c to b.
func (c Config) ApplyTo(b *audioexport.ConfigBuilder) error {
	e := c.Export
	if e.Quality != "" {
		b.WithQualityPreset(audioexport.QualityPreset(e.Quality))
	}
	if e.SampleRate > 0 {
		b.WithSampleRate(e.SampleRate)
	}
	if e.SampleWidth > 0 {
		b.WithSampleWidth(e.SampleWidth)
	}
	if e.Channels > 0 {
		b.WithChannels(e.Channels)
	}
	if e.Codec != "" {
		b.WithCodec(e.Codec)
	}
	if e.Bitrate != "" {
		b.WithBitrate(e.Bitrate)
	}
	if len(e.Params) > 0 {
		b.WithParams(e.Params...)
	}
	if e.ChunkSize > 0 {
		b.WithChunkSize(e.ChunkSize)
	}
	if e.LogFile {
		b.WithLogFile(true)
	}
	if e.Verify != nil {
		b.WithVerify(*e.Verify)
	}

	w := c.Waveform
	if w.Width > 0 && w.Height > 0 {
		b.WithWaveformSize(w.Width, w.Height)
	}
	if w.Background != "" || w.Foreground != "" {
		var bg, fg color.Color
		var err error
		if w.Background != "" {
			if bg, err = ParseColor(w.Background); err != nil {
				return fmt.Errorf("waveform background: %w", err)
			}
		}
		if w.Foreground != "" {
			if fg, err = ParseColor(w.Foreground); err != nil {
				return fmt.Errorf("waveform foreground: %w", err)
			}
		}
		b.WithWaveformColors(bg, fg)
	}
	return nil
}

// ParseColor parses a hex color string ("#rrggbb" or "rrggbb") to color.Color.
func ParseColor(hex string) (color.Color, error) {
	s := hex
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid color %q", hex)
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(s[2*i])
		lo, ok2 := hexValue(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid color %q", hex)
		}
		rgb[i] = hi<<4 | lo
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
