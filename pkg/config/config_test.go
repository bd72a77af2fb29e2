package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audioexport.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("unexpected log settings %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Export.Preset != "music" {
		t.Errorf("expected music preset, got %s", cfg.Export.Preset)
	}
	if cfg.DebugDir != "./debug" {
		t.Errorf("expected ./debug, got %s", cfg.DebugDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
log_format: json
export:
  preset: voice
  codec: libopus
  bitrate: 64k
  params: ["-application", "voip"]
  verify: false
waveform:
  width: 400
  height: 100
  foreground: "#ff8800"
debug: true
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("unexpected ffmpeg path %s", cfg.FFmpegPath)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %s", cfg.LogFormat)
	}
	// Unset keys keep their defaults
	if cfg.LogLevel != "info" || cfg.DebugDir != "./debug" {
		t.Errorf("defaults were not kept: %+v", cfg)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}

	b, err := cfg.Builder()
	if err != nil {
		t.Fatalf("unexpected builder error: %v", err)
	}
	built := b.Build()

	if built.Channels != 1 || built.SampleRate != 22050 {
		t.Errorf("expected voice preset, got %+v", built)
	}
	if built.Codec != "libopus" || built.Bitrate != "64k" {
		t.Errorf("unexpected encoding %s %s", built.Codec, built.Bitrate)
	}
	if len(built.Params) != 2 || built.Params[1] != "voip" {
		t.Errorf("unexpected params %q", built.Params)
	}
	if built.Verify {
		t.Error("expected verify disabled")
	}
	if built.WaveformWidth != 400 || built.WaveformHeight != 100 {
		t.Errorf("unexpected waveform size %dx%d", built.WaveformWidth, built.WaveformHeight)
	}
	if built.WaveformForeground != (color.RGBA{R: 0xff, G: 0x88, A: 0xff}) {
		t.Errorf("unexpected foreground %v", built.WaveformForeground)
	}
	if built.WaveformBackground != nil {
		t.Errorf("expected default background, got %v", built.WaveformBackground)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := writeConfig(t, "export: [not, a, map]\n")
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestBuilder_Errors(t *testing.T) {
	cfg := Defaults()
	cfg.Export.Preset = "podcast"
	if _, err := cfg.Builder(); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg = Defaults()
	cfg.Waveform.Background = "#zzzzzz"
	if _, err := cfg.Builder(); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestApplyTo_ZeroValuesKeepPreset(t *testing.T) {
	b, err := Defaults().Builder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	built := b.Build()

	if built.SampleRate != 44100 || built.Bitrate != "192k" || !built.Verify {
		t.Errorf("expected music preset untouched, got %+v", built)
	}
}

func TestApplyTo_Quality(t *testing.T) {
	cfg := Defaults()
	cfg.Export.Quality = "high"
	cfg.Export.Bitrate = "256k"

	b, err := cfg.Builder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	built := b.Build()

	// Explicit bitrate overrides the preset's
	if built.Bitrate != "256k" || built.SampleRate != 48000 {
		t.Errorf("unexpected result %s %d", built.Bitrate, built.SampleRate)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.RGBA
		err   bool
	}{
		{"#1a1a2e", color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}, false},
		{"FFFFFF", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#4ADE80", color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 255}, false},
		{"", color.RGBA{}, true},
		{"#fff", color.RGBA{}, true},
		{"#12345g", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.err {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
