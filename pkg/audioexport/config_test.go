package audioexport

import (
	"errors"
	"image/color"
	"slices"
	"testing"

	"github.com/user/audioexport/pkg/pipeline"
)

func TestNewConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	if cfg.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", cfg.SampleRate)
	}
	if cfg.SampleWidth != 2 {
		t.Errorf("expected sample width 2, got %d", cfg.SampleWidth)
	}
	if cfg.Channels != 0 {
		t.Errorf("expected channels to follow the source, got %d", cfg.Channels)
	}
	if cfg.Bitrate != "192k" {
		t.Errorf("expected bitrate 192k, got %s", cfg.Bitrate)
	}
	if cfg.ChunkSize != pipeline.DefaultChunkSize {
		t.Errorf("expected chunk size %d, got %d", pipeline.DefaultChunkSize, cfg.ChunkSize)
	}
	if !cfg.Verify {
		t.Error("expected verify enabled")
	}
}

func TestNewVoiceConfigBuilder_Defaults(t *testing.T) {
	cfg := NewVoiceConfigBuilder().Build()

	if cfg.SampleRate != 22050 || cfg.Channels != 1 || cfg.Bitrate != "96k" {
		t.Errorf("unexpected voice defaults: %+v", cfg)
	}
}

func TestConfigBuilder_Constraints(t *testing.T) {
	tests := []struct {
		name  string
		build func() Config
		check func(t *testing.T, cfg Config)
	}{
		{
			name:  "sample width too large",
			build: func() Config { return NewConfigBuilder().WithSampleWidth(8).Build() },
			check: func(t *testing.T, cfg Config) {
				if cfg.SampleWidth != 2 {
					t.Errorf("expected sample width 2, got %d", cfg.SampleWidth)
				}
			},
		},
		{
			name:  "sample width 3 kept",
			build: func() Config { return NewConfigBuilder().WithSampleWidth(3).Build() },
			check: func(t *testing.T, cfg Config) {
				if cfg.SampleWidth != 3 {
					t.Errorf("expected sample width 3, got %d", cfg.SampleWidth)
				}
			},
		},
		{
			name:  "chunk size zero",
			build: func() Config { return NewConfigBuilder().WithChunkSize(0).Build() },
			check: func(t *testing.T, cfg Config) {
				if cfg.ChunkSize != pipeline.DefaultChunkSize {
					t.Errorf("expected default chunk size, got %d", cfg.ChunkSize)
				}
			},
		},
		{
			name:  "negative channels",
			build: func() Config { return NewConfigBuilder().WithChannels(-1).Build() },
			check: func(t *testing.T, cfg Config) {
				if cfg.Channels != 0 {
					t.Errorf("expected channels 0, got %d", cfg.Channels)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.build())
		})
	}
}

func TestConfigBuilder_Chaining(t *testing.T) {
	cfg := NewConfigBuilder().
		WithSampleRate(48000).
		WithChannels(2).
		WithCodec("libvorbis").
		WithBitrate("128k").
		WithParams("-metadata", "title=demo").
		WithInputVideo("clip.mp4").
		WithChunkSize(1024).
		WithLogFile(true).
		WithVerify(false).
		WithWaveformSize(400, 80).
		Build()

	if cfg.SampleRate != 48000 || cfg.Channels != 2 {
		t.Errorf("unexpected sample format: %+v", cfg)
	}
	if cfg.Codec != "libvorbis" || cfg.Bitrate != "128k" {
		t.Errorf("unexpected encoding: %s %s", cfg.Codec, cfg.Bitrate)
	}
	if !slices.Equal(cfg.Params, []string{"-metadata", "title=demo"}) {
		t.Errorf("unexpected params %q", cfg.Params)
	}
	if cfg.InputVideo != "clip.mp4" || cfg.ChunkSize != 1024 {
		t.Errorf("unexpected input video or chunk size: %+v", cfg)
	}
	if !cfg.WriteLogFile || cfg.Verify {
		t.Errorf("unexpected flags: log %v verify %v", cfg.WriteLogFile, cfg.Verify)
	}
	if cfg.WaveformWidth != 400 || cfg.WaveformHeight != 80 {
		t.Errorf("unexpected waveform size %dx%d", cfg.WaveformWidth, cfg.WaveformHeight)
	}
}

func TestConfigBuilder_WithParamsCopies(t *testing.T) {
	params := []string{"-shortest"}
	cfg := NewConfigBuilder().WithParams(params...).Build()
	params[0] = "-changed"

	if cfg.Params[0] != "-shortest" {
		t.Errorf("params must be copied, got %q", cfg.Params)
	}
}

func TestQualityPresets(t *testing.T) {
	tests := []struct {
		preset  QualityPreset
		bitrate string
		rate    int
	}{
		{QualityLow, "96k", 22050},
		{QualityMedium, "192k", 44100},
		{QualityHigh, "320k", 48000},
		{"unknown", "192k", 44100},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := NewConfigBuilder().WithQualityPreset(tt.preset).Build()
			if cfg.Bitrate != tt.bitrate || cfg.SampleRate != tt.rate {
				t.Errorf("preset %s: got %s %d, want %s %d", tt.preset, cfg.Bitrate, cfg.SampleRate, tt.bitrate, tt.rate)
			}
		})
	}
}

func TestConfig_ToOrchestratorConfig(t *testing.T) {
	cfg := NewConfigBuilder().
		WithLogFile(true).
		WithWaveformColors(color.RGBA{R: 1, G: 2, B: 3, A: 255}, nil).
		Build()

	oc, err := cfg.ToOrchestratorConfig("/tmp/song.mp3", "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if oc.SessionID != "session-1" || oc.OutputPath != "/tmp/song.mp3" {
		t.Errorf("unexpected identity: %+v", oc)
	}
	if oc.Codec != "libmp3lame" {
		t.Errorf("expected codec from extension, got %s", oc.Codec)
	}
	if oc.SampleRate != 44100 || oc.SampleWidth != 2 || oc.Bitrate != "192k" {
		t.Errorf("unexpected encoding: %+v", oc)
	}
	if !oc.WriteLogFile || !oc.Verify {
		t.Errorf("unexpected flags: %+v", oc)
	}
	if oc.WaveformBackground != [4]uint8{1, 2, 3, 255} {
		t.Errorf("unexpected background %v", oc.WaveformBackground)
	}
	if oc.WaveformForeground != [4]uint8{} {
		t.Errorf("nil colors must map to zero, got %v", oc.WaveformForeground)
	}
}

func TestConfig_ResolveCodec(t *testing.T) {
	tests := []struct {
		name   string
		codec  string
		width  int
		output string
		want   string
		err    bool
	}{
		{"explicit wins", "libopus", 2, "a.mp3", "libopus", false},
		{"from extension", "", 2, "a.ogg", "libvorbis", false},
		{"upper case", "", 2, "dir.v2/A.FLAC", "flac", false},
		{"wav follows width", "", 3, "a.wav", "pcm_s24le", false},
		{"unknown extension", "", 2, "a.xyz", "", true},
		{"no extension", "", 2, "dir.d/out", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfigBuilder().WithCodec(tt.codec).WithSampleWidth(tt.width).Build()
			got, err := cfg.ResolveCodec(tt.output)
			if tt.err {
				if !errors.Is(err, ErrNoCodec) {
					t.Errorf("expected ErrNoCodec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
