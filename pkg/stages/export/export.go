// Package export implements the streaming export stage: it pulls PCM chunks
// from a frame source and pushes them into an audio writer.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/user/audioexport/pkg/pipeline"
	"github.com/user/audioexport/pkg/ports"
)

// WriterFactory opens an audio writer for cfg. logFile is nil unless the
// export asked for a log file; when set it must receive the encoder's
// diagnostics.
type WriterFactory func(cfg ports.EncoderConfig, logFile io.ReadWriteSeeker) (ports.AudioWriter, error)

// Stage streams one export.
type Stage struct {
	newWriter WriterFactory
	fs        ports.FileSystem
	logger    ports.Logger
}

// NewStage creates a new export stage.
func NewStage(newWriter WriterFactory, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		newWriter: newWriter,
		fs:        fs,
		logger:    logger,
	}
}

// Execute writes every chunk of input.Source through a writer opened for
// input.Encoder.
//
// The writer is closed exactly once on every path, and the log file, when
// requested, is closed after it. Write errors are returned as the writer
// reported them. Cancellation is observed between chunks.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	cfg := input.Encoder
	result := pipeline.ExportResult{Filename: cfg.Filename}

	if input.Source == nil {
		return result, fmt.Errorf("no frame source")
	}
	if cfg.Channels == 0 {
		cfg.Channels = input.Source.Channels()
	} else if cfg.Channels != input.Source.Channels() {
		return result, fmt.Errorf("%w: %d channels configured, source has %d",
			ports.ErrInvalidConfig, cfg.Channels, input.Source.Channels())
	}
	if err := cfg.Validate(); err != nil {
		return result, err
	}

	chunkSize := input.ChunkSize
	if chunkSize <= 0 {
		chunkSize = pipeline.DefaultChunkSize
	}

	s.logger.Info("Writing audio in %s", cfg.Filename)

	var logFile ports.LogFile
	if input.WriteLogFile {
		f, err := s.fs.CreateLog(cfg.Filename + ".log")
		if err != nil {
			return result, fmt.Errorf("create log file: %w", err)
		}
		// Deferred first so it runs after the writer is closed.
		defer f.Close()
		logFile = f
		result.LogPath = f.Name()
		s.logger.Debug("Diagnostics are written to %s", f.Name())
	}

	var diag io.ReadWriteSeeker
	if logFile != nil {
		diag = logFile
	}
	w, err := s.newWriter(cfg, diag)
	if err != nil {
		return result, fmt.Errorf("open writer: %w", err)
	}
	if a, ok := w.(interface{ Args() []string }); ok {
		result.Args = a.Args()
	}

	closed := false
	closeWriter := func() {
		if closed {
			return
		}
		closed = true
		if err := w.Close(); err != nil {
			s.logger.Warn("Closing writer for %s: %v", cfg.Filename, err)
		}
	}
	defer closeWriter()

	progressLog := s.logger.WithComponent("export")
	opts := ports.ChunkOptions{
		ChunkSize:   chunkSize,
		SampleWidth: cfg.SampleWidth,
		SampleRate:  cfg.SampleRate,
		Progress: func(done, total int) {
			progressLog.Debug("Export progress: chunk %d/%d", done, total)
		},
	}

	index := 0
	for chunk, err := range input.Source.Chunks(opts) {
		if err != nil {
			return result, fmt.Errorf("read chunk %d: %w", index, err)
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := w.Write(chunk); err != nil {
			return result, err
		}
		result.Chunks++
		result.Bytes += int64(len(chunk))
		result.Peaks = append(result.Peaks, peak(chunk, cfg.SampleWidth))
		index++
	}

	closeWriter()
	progressLog.Debug("Wrote %d chunks (%d bytes)", result.Chunks, result.Bytes)
	s.logger.Info("Done.")

	return result, nil
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult] = (*Stage)(nil)
