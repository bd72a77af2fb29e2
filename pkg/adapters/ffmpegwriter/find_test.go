package ffmpegwriter

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFindFFmpeg_CustomPath(t *testing.T) {
	bin := fakeFFmpeg(t, copyToOutput)
	SetFFmpegPath(bin)
	t.Cleanup(func() { SetFFmpegPath("") })

	got, err := FindFFmpeg()
	if err != nil {
		t.Fatalf("FindFFmpeg failed: %v", err)
	}
	if got != bin {
		t.Errorf("expected %s, got %s", bin, got)
	}
}

func TestFindFFmpeg_CustomPathMissing(t *testing.T) {
	SetFFmpegPath(filepath.Join(t.TempDir(), "missing"))
	t.Cleanup(func() { SetFFmpegPath("") })

	if _, err := FindFFmpeg(); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFmpeg_Env(t *testing.T) {
	bin := fakeFFmpeg(t, copyToOutput)

	tests := []struct {
		name    string
		path    string
		binary  string
		want    string
		wantErr bool
	}{
		{"FFMPEG_PATH", bin, "", bin, false},
		{"FFMPEG_BINARY", "", bin, bin, false},
		{"FFMPEG_PATH wins", bin, "/nonexistent/ffmpeg", bin, false},
		{"FFMPEG_PATH missing", "/nonexistent/ffmpeg", bin, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FFMPEG_PATH", tt.path)
			t.Setenv("FFMPEG_BINARY", tt.binary)

			got, err := FindFFmpeg()
			if tt.wantErr {
				if !errors.Is(err, ErrFFmpegNotFound) {
					t.Errorf("expected ErrFFmpegNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindFFmpeg failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveBinary_Explicit(t *testing.T) {
	bin := fakeFFmpeg(t, copyToOutput)

	got, err := resolveBinary(bin)
	if err != nil {
		t.Fatalf("resolveBinary failed: %v", err)
	}
	if got != bin {
		t.Errorf("expected %s, got %s", bin, got)
	}

	if _, err := resolveBinary(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}
