// Package ffmpegwriter streams raw PCM audio into an ffmpeg process that
// encodes it into a file.
//
// A Writer owns exactly one process. Its stdin receives the samples, its
// stderr goes either to an in-memory buffer or to a caller-owned log file.
// The process is reaped exactly once, whether the writer is closed
// explicitly, through With, after a failed Write, or by the runtime once the
// writer becomes unreachable.
package ffmpegwriter

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/user/audioexport/pkg/adapters/logger"
	"github.com/user/audioexport/pkg/ports"
)

// Options configures how the ffmpeg process is started.
type Options struct {
	// FFmpegPath is an explicit ffmpeg binary. Empty runs FindFFmpeg.
	FFmpegPath string

	// LogFile receives ffmpeg's diagnostics when set. It stays owned by the
	// caller and must outlive the writer. When nil the diagnostics are
	// captured in memory.
	LogFile io.ReadWriteSeeker

	// Logger receives debug output. Defaults to a no-op logger.
	Logger ports.Logger
}

// Writer feeds PCM chunks to ffmpeg. It is not safe for concurrent use.
type Writer struct {
	cfg     ports.EncoderConfig
	args    []string
	h       *handle
	cleanup runtime.Cleanup
	log     ports.Logger
}

// handle is the process and its pipes. It is kept separate from Writer so
// the runtime cleanup can reach it without keeping the Writer alive.
type handle struct {
	mu       sync.Mutex
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	diag     diagnostics
	released bool
	reaps    int
	exitCode int
}

// releaseLocked closes stdin and reaps the process. It reports whether this
// call did the work. h.mu must be held.
func (h *handle) releaseLocked() bool {
	if h.released {
		return false
	}
	h.released = true

	if h.stdin != nil {
		_ = h.stdin.Close()
		h.stdin = nil
	}
	if h.cmd != nil && h.cmd.Process != nil {
		// Wait also closes the stderr pipe and drains its copier.
		_ = h.cmd.Wait()
		h.reaps++
		if h.cmd.ProcessState != nil {
			h.exitCode = h.cmd.ProcessState.ExitCode()
		}
	}
	return true
}

func (h *handle) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.releaseLocked()
}

// releaseDetached is the runtime cleanup. Reaping waits for ffmpeg to
// finish the file, and cleanups share one goroutine, so it must not block.
func releaseDetached(h *handle) {
	go h.release()
}

// New starts ffmpeg for cfg. On error no process is left running.
func New(cfg ports.EncoderConfig, opts Options) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bin, err := resolveBinary(opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	log = log.WithComponent("ffmpeg")

	diag := newDiagnostics(opts.LogFile)
	args := BuildArgs(cfg, diag.captured())

	// #nosec G204 - binary comes from discovery or configuration
	cmd := exec.Command(bin, args...)
	cmd.Stdout = nil
	cmd.Stderr = diag.writer()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	log.Debug("Starting %s %s", bin, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		// Start closes the pipes it created when it fails.
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	log.Debug("ffmpeg started (pid %d)", cmd.Process.Pid)

	h := &handle{
		cmd:      cmd,
		stdin:    stdin,
		diag:     diag,
		exitCode: -1,
	}
	w := &Writer{
		cfg:  cfg,
		args: append([]string{bin}, args...),
		h:    h,
		log:  log,
	}
	w.cleanup = runtime.AddCleanup(w, releaseDetached, h)

	return w, nil
}

// With opens a writer, runs fn and always closes the writer afterwards,
// including when fn fails or panics.
func With(cfg ports.EncoderConfig, opts Options, fn func(w *Writer) error) (err error) {
	w, err := New(cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(w)
}

// Write sends one chunk to ffmpeg's stdin. It blocks while the pipe is full.
//
// If ffmpeg is gone, the process is reaped, its diagnostics are collected
// and a *WriteError is returned. Writing after the process was released
// returns ErrClosed.
func (w *Writer) Write(chunk []byte) error {
	if w == nil || w.h == nil {
		return ErrClosed
	}
	h := w.h
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return ErrClosed
	}

	if _, err := h.stdin.Write(chunk); err != nil {
		return w.failLocked(err)
	}
	return nil
}

// failLocked tears the process down after a failed write. h.mu must be held.
func (w *Writer) failLocked(writeErr error) error {
	h := w.h
	h.releaseLocked()
	w.cleanup.Stop()

	text, err := h.diag.collect()
	if err != nil {
		text = fmt.Sprintf("(diagnostics unavailable: %v)", err)
	}
	hint := Classify(text, w.cfg)

	w.log.Debug("ffmpeg exited with status %d, hint %s", h.exitCode, hint.Kind)

	return &WriteError{
		Err:         writeErr,
		Path:        w.cfg.Filename,
		Diagnostics: text,
		Hint:        hint,
		ExitCode:    h.exitCode,
	}
}

// Close closes stdin and waits for ffmpeg to finish the file. It is safe to
// call more than once and on a nil writer.
//
// Close does not report encoder failures: a non-zero exit status is logged
// as a warning and available from ExitCode.
func (w *Writer) Close() error {
	if w == nil || w.h == nil {
		return nil
	}
	h := w.h
	h.mu.Lock()
	first := h.releaseLocked()
	code := h.exitCode
	h.mu.Unlock()

	if !first {
		return nil
	}
	w.cleanup.Stop()

	if code != 0 {
		text, _ := h.diag.collect()
		hint := Classify(text, w.cfg)
		w.log.Warn("ffmpeg exited with status %d while finalizing %s: %s %s",
			code, w.cfg.Filename, strings.TrimSpace(text), hint.Text)
	}
	return nil
}

// Args returns the full ffmpeg command line, binary first.
func (w *Writer) Args() []string {
	if w == nil {
		return nil
	}
	return append([]string(nil), w.args...)
}

// ExitCode returns ffmpeg's exit status, or -1 while it is running or
// when no process was started.
func (w *Writer) ExitCode() int {
	if w == nil || w.h == nil {
		return -1
	}
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	return w.h.exitCode
}

// Released reports whether the process has been reaped. A nil writer has
// nothing to release.
func (w *Writer) Released() bool {
	if w == nil || w.h == nil {
		return true
	}
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	return w.h.released
}

// Ensure Writer implements ports.AudioWriter
var _ ports.AudioWriter = (*Writer)(nil)
