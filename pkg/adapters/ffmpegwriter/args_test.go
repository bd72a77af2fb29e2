package ffmpegwriter

import (
	"slices"
	"testing"

	"github.com/user/audioexport/pkg/ports"
)

func indexOfPair(args []string, a, b string) int {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return i
		}
	}
	return -1
}

func TestBuildArgs_AudioOnly(t *testing.T) {
	cfg := ports.EncoderConfig{
		Filename:    "out.mp3",
		SampleRate:  44100,
		SampleWidth: 2,
		Channels:    2,
		Codec:       "libmp3lame",
	}

	args := BuildArgs(cfg, true)

	want := []string{
		"-y", "-loglevel", "error",
		"-f", "s16le", "-acodec", "pcm_s16le", "-ar", "44100", "-ac", "2", "-i", "-",
		"-vn",
		"-acodec", "libmp3lame", "-ar", "44100", "-strict", "-2",
		"out.mp3",
	}
	if !slices.Equal(args, want) {
		t.Errorf("unexpected args:\n got %q\nwant %q", args, want)
	}
}

func TestBuildArgs_WithVideoBitrateAndParams(t *testing.T) {
	cfg := ports.EncoderConfig{
		Filename:    "out.mp4",
		SampleRate:  48000,
		SampleWidth: 4,
		Channels:    1,
		Codec:       "aac",
		Bitrate:     "192k",
		InputVideo:  "video.mp4",
		Params:      []string{"-shortest", "-metadata", "title=x"},
	}

	args := BuildArgs(cfg, false)

	if args[2] != "info" {
		t.Errorf("expected info log level for file-backed diagnostics, got %s", args[2])
	}

	stdinInput := indexOfPair(args, "-i", "-")
	format := indexOfPair(args, "-f", "s32le")
	videoInput := indexOfPair(args, "-i", "video.mp4")
	videoCopy := indexOfPair(args, "-vcodec", "copy")
	codec := indexOfPair(args, "-acodec", "aac")
	bitrate := indexOfPair(args, "-ab", "192k")
	strict := indexOfPair(args, "-strict", "-2")

	if format < 0 || stdinInput < 0 || format > stdinInput {
		t.Errorf("input format must precede stdin input: %q", args)
	}
	if videoInput < stdinInput || videoCopy != videoInput+2 {
		t.Errorf("video copy must follow the video input: %q", args)
	}
	if codec < videoCopy {
		t.Errorf("codec must follow video copy flags: %q", args)
	}
	if strict < codec || bitrate < strict {
		t.Errorf("output flags must follow the codec: %q", args)
	}
	if slices.Contains(args, "-vn") {
		t.Errorf("-vn must not be set when a video is muxed: %q", args)
	}

	tail := args[len(args)-4:]
	wantTail := []string{"-shortest", "-metadata", "title=x", "out.mp4"}
	if !slices.Equal(tail, wantTail) {
		t.Errorf("expected params in order before filename, got %q", tail)
	}
}

func TestBuildArgs_SampleWidths(t *testing.T) {
	tests := []struct {
		width      int
		format     string
		inputCodec string
	}{
		{1, "s8", "pcm_s8"},
		{2, "s16le", "pcm_s16le"},
		{3, "s24le", "pcm_s24le"},
		{4, "s32le", "pcm_s32le"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := ports.EncoderConfig{Filename: "a.wav", SampleRate: 8000, SampleWidth: tt.width, Channels: 1, Codec: "pcm_s16le"}
			args := BuildArgs(cfg, true)
			if indexOfPair(args, "-f", tt.format) < 0 {
				t.Errorf("expected -f %s in %q", tt.format, args)
			}
			if indexOfPair(args, "-acodec", tt.inputCodec) < 0 {
				t.Errorf("expected -acodec %s in %q", tt.inputCodec, args)
			}
		})
	}
}

func TestCodecForExtension(t *testing.T) {
	tests := []struct {
		ext   string
		width int
		codec string
		ok    bool
	}{
		{"mp3", 2, "libmp3lame", true},
		{".ogg", 2, "libvorbis", true},
		{"M4A", 2, "aac", true},
		{"flac", 2, "flac", true},
		{"opus", 2, "libopus", true},
		{"wav", 2, "pcm_s16le", true},
		{"wav", 4, "pcm_s32le", true},
		{"xyz", 2, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			codec, ok := CodecForExtension(tt.ext, tt.width)
			if codec != tt.codec || ok != tt.ok {
				t.Errorf("CodecForExtension(%q, %d) = %q, %v; want %q, %v", tt.ext, tt.width, codec, ok, tt.codec, tt.ok)
			}
		})
	}
}
