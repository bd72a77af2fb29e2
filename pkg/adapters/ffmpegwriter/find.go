package ffmpegwriter

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

var (
	customMu         sync.RWMutex
	customFFmpegPath string
)

// SetFFmpegPath overrides ffmpeg discovery for the whole process.
// An empty path restores the default search.
func SetFFmpegPath(path string) {
	customMu.Lock()
	defer customMu.Unlock()
	customFFmpegPath = path
}

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) FFMPEG_BINARY env, 4) PATH, 5) common locations
func FindFFmpeg() (string, error) {
	customMu.RLock()
	custom := customFFmpegPath
	customMu.RUnlock()

	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	for _, env := range []string{"FFMPEG_PATH", "FFMPEG_BINARY"} {
		envPath := os.Getenv(env)
		if envPath == "" {
			continue
		}
		// FFMPEG_BINARY may name a command on PATH rather than a file
		if path, err := exec.LookPath(envPath); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", ErrFFmpegNotFound, env, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// resolveBinary returns explicit when set, otherwise runs discovery.
func resolveBinary(explicit string) (string, error) {
	if explicit == "" {
		return FindFFmpeg()
	}
	path, err := exec.LookPath(explicit)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFFmpegNotFound, explicit, err)
	}
	return path, nil
}
