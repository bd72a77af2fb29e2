package export

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/user/audioexport/pkg/adapters/logger"
	"github.com/user/audioexport/pkg/mocks"
	"github.com/user/audioexport/pkg/pipeline"
	"github.com/user/audioexport/pkg/ports"
)

func testEncoder() ports.EncoderConfig {
	return ports.EncoderConfig{
		Filename:    "out.mp3",
		SampleRate:  44100,
		SampleWidth: 2,
		Codec:       "libmp3lame",
	}
}

// factoryFor returns a factory that always hands out w and records the
// log file it was given.
func factoryFor(w ports.AudioWriter, gotLog *io.ReadWriteSeeker, gotCfg *ports.EncoderConfig) WriterFactory {
	return func(cfg ports.EncoderConfig, logFile io.ReadWriteSeeker) (ports.AudioWriter, error) {
		if gotLog != nil {
			*gotLog = logFile
		}
		if gotCfg != nil {
			*gotCfg = cfg
		}
		return w, nil
	}
}

func TestStage_Execute(t *testing.T) {
	w := &mocks.AudioWriter{}
	var gotCfg ports.EncoderConfig
	log := mocks.NewLogger()
	stage := NewStage(factoryFor(w, nil, &gotCfg), mocks.NewFileSystem(), log)

	source := mocks.NewFrameSource([]byte{1, 0, 2, 0}, []byte{3, 0, 4, 0}, []byte{5, 0, 6, 0})
	result, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  source,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(w.Chunks) != 3 {
		t.Errorf("expected 3 chunks written, got %d", len(w.Chunks))
	}
	if w.CloseCalls != 1 {
		t.Errorf("expected Close to be called once, got %d", w.CloseCalls)
	}
	if string(w.Bytes()) != string([]byte{1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0}) {
		t.Errorf("chunks were not written in order: %v", w.Bytes())
	}
	if result.Chunks != 3 || result.Bytes != 12 {
		t.Errorf("expected 3 chunks and 12 bytes, got %d and %d", result.Chunks, result.Bytes)
	}
	if len(result.Peaks) != 3 {
		t.Errorf("expected a peak per chunk, got %d", len(result.Peaks))
	}

	// Channels are taken from the source.
	if gotCfg.Channels != 2 {
		t.Errorf("expected 2 channels from the source, got %d", gotCfg.Channels)
	}

	if len(source.Options) != 1 {
		t.Fatalf("expected one pass over the source, got %d", len(source.Options))
	}
	opts := source.Options[0]
	if opts.ChunkSize != pipeline.DefaultChunkSize || opts.SampleWidth != 2 || opts.SampleRate != 44100 {
		t.Errorf("unexpected chunk options: %+v", opts)
	}

	info := log.Messages(ports.LevelInfo)
	if len(info) != 2 || info[0] != "Writing audio in out.mp3" || info[1] != "Done." {
		t.Errorf("unexpected info messages: %q", info)
	}
	debug := log.Messages(ports.LevelDebug)
	if !containsMessage(debug, "Export progress: chunk 3/3") {
		t.Errorf("expected progress messages, got %q", debug)
	}
}

func TestStage_Execute_EmptySource(t *testing.T) {
	w := &mocks.AudioWriter{}
	stage := NewStage(factoryFor(w, nil, nil), mocks.NewFileSystem(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  mocks.NewFrameSource(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Chunks != 0 || len(w.Chunks) != 0 {
		t.Errorf("expected nothing written, got %d chunks", len(w.Chunks))
	}
	if w.CloseCalls != 1 {
		t.Errorf("expected writer to be closed once, got %d", w.CloseCalls)
	}
}

func TestStage_Execute_ChannelMismatch(t *testing.T) {
	opened := false
	factory := func(ports.EncoderConfig, io.ReadWriteSeeker) (ports.AudioWriter, error) {
		opened = true
		return &mocks.AudioWriter{}, nil
	}
	stage := NewStage(factory, mocks.NewFileSystem(), logger.NewNoop())

	cfg := testEncoder()
	cfg.Channels = 1
	_, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: cfg,
		Source:  mocks.NewFrameSource([]byte{0, 0}),
	})
	if !errors.Is(err, ports.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if opened {
		t.Error("writer must not be opened for an invalid config")
	}
}

func TestStage_Execute_InvalidConfig(t *testing.T) {
	stage := NewStage(factoryFor(&mocks.AudioWriter{}, nil, nil), mocks.NewFileSystem(), logger.NewNoop())

	cfg := testEncoder()
	cfg.Codec = ""
	_, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: cfg,
		Source:  mocks.NewFrameSource(),
	})
	if !errors.Is(err, ports.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	_, err = stage.Execute(context.Background(), pipeline.ExportInput{Encoder: testEncoder()})
	if err == nil {
		t.Error("expected error without a source")
	}
}

func TestStage_Execute_SourceError(t *testing.T) {
	w := &mocks.AudioWriter{}
	fs := mocks.NewFileSystem()
	stage := NewStage(factoryFor(w, nil, nil), fs, logger.NewNoop())

	readErr := errors.New("corrupt frame")
	source := mocks.NewFrameSource([]byte{1, 0, 1, 0}, []byte{2, 0, 2, 0}, []byte{3, 0, 3, 0})
	source.FailAt = 1
	source.Err = readErr

	_, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder:      testEncoder(),
		Source:       source,
		WriteLogFile: true,
	})
	if !errors.Is(err, readErr) {
		t.Fatalf("expected source error, got %v", err)
	}
	if !strings.Contains(err.Error(), "chunk 1") {
		t.Errorf("expected chunk index in error, got %q", err.Error())
	}
	if w.CloseCalls != 1 {
		t.Errorf("expected writer to be closed once, got %d", w.CloseCalls)
	}
	logFile, ok := fs.GetLog("out.mp3.log")
	if !ok {
		t.Fatal("expected log file to be created")
	}
	if logFile.CloseCalls != 1 {
		t.Errorf("expected log file to be closed once, got %d", logFile.CloseCalls)
	}
}

func TestStage_Execute_WriteErrorReturnedUnchanged(t *testing.T) {
	writeErr := &diagError{text: "Unknown encoder 'bogus'"}
	w := &mocks.AudioWriter{
		WriteFunc: func([]byte) error { return writeErr },
	}
	stage := NewStage(factoryFor(w, nil, nil), mocks.NewFileSystem(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  mocks.NewFrameSource([]byte{0, 0, 0, 0}, []byte{0, 0, 0, 0}),
	})
	if err != writeErr {
		t.Fatalf("expected the writer's error unchanged, got %v", err)
	}
	if len(w.Chunks) != 1 {
		t.Errorf("expected export to stop after the failed write, got %d writes", len(w.Chunks))
	}
	if w.CloseCalls != 1 {
		t.Errorf("expected writer to be closed once, got %d", w.CloseCalls)
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &mocks.AudioWriter{
		WriteFunc: func([]byte) error {
			cancel()
			return nil
		},
	}
	stage := NewStage(factoryFor(w, nil, nil), mocks.NewFileSystem(), logger.NewNoop())

	_, err := stage.Execute(ctx, pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  mocks.NewFrameSource([]byte{0, 0, 0, 0}, []byte{0, 0, 0, 0}, []byte{0, 0, 0, 0}),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(w.Chunks) != 1 {
		t.Errorf("expected one chunk before cancellation, got %d", len(w.Chunks))
	}
	if w.CloseCalls != 1 {
		t.Errorf("expected writer to be closed once, got %d", w.CloseCalls)
	}
}

func TestStage_Execute_LogFile(t *testing.T) {
	fs := mocks.NewFileSystem()
	var gotLog io.ReadWriteSeeker

	var logClosedAtWriterClose bool
	w := &mocks.AudioWriter{}
	w.CloseFunc = func() error {
		l, _ := fs.GetLog("out.mp3.log")
		logClosedAtWriterClose = l.Closed()
		return nil
	}
	stage := NewStage(factoryFor(w, &gotLog, nil), fs, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder:      testEncoder(),
		Source:       mocks.NewFrameSource([]byte{0, 0, 0, 0}),
		WriteLogFile: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLog == nil {
		t.Fatal("expected the log file to be handed to the writer")
	}
	if result.LogPath != "out.mp3.log" {
		t.Errorf("expected log path out.mp3.log, got %q", result.LogPath)
	}
	if logClosedAtWriterClose {
		t.Error("log file must outlive the writer")
	}
	l, _ := fs.GetLog("out.mp3.log")
	if !l.Closed() {
		t.Error("expected log file to be closed after the export")
	}
}

func TestStage_Execute_NoLogFile(t *testing.T) {
	fs := mocks.NewFileSystem()
	gotLog := io.ReadWriteSeeker(mocks.NewLogFile("sentinel", ""))
	stage := NewStage(factoryFor(&mocks.AudioWriter{}, &gotLog, nil), fs, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  mocks.NewFrameSource(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLog != nil {
		t.Errorf("expected a nil log file, got %T", gotLog)
	}
	if _, ok := fs.GetLog("out.mp3.log"); ok {
		t.Error("log file must not be created")
	}
}

func TestStage_Execute_CloseErrorIsWarning(t *testing.T) {
	w := &mocks.AudioWriter{CloseFunc: func() error { return errors.New("broken pipe") }}
	log := mocks.NewLogger()
	stage := NewStage(factoryFor(w, nil, nil), mocks.NewFileSystem(), log)

	if _, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  mocks.NewFrameSource([]byte{0, 0, 0, 0}),
	}); err != nil {
		t.Fatalf("close errors must not fail the export: %v", err)
	}
	if len(log.Messages(ports.LevelWarn)) != 1 {
		t.Errorf("expected one warning, got %q", log.Messages(ports.LevelWarn))
	}
}

func TestStage_Execute_FactoryError(t *testing.T) {
	factory := func(ports.EncoderConfig, io.ReadWriteSeeker) (ports.AudioWriter, error) {
		return nil, errors.New("ffmpeg not found")
	}
	fs := mocks.NewFileSystem()
	stage := NewStage(factory, fs, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder:      testEncoder(),
		Source:       mocks.NewFrameSource(),
		WriteLogFile: true,
	})
	if err == nil || !strings.Contains(err.Error(), "ffmpeg not found") {
		t.Fatalf("expected factory error, got %v", err)
	}
	l, _ := fs.GetLog("out.mp3.log")
	if !l.Closed() {
		t.Error("expected log file to be closed when the writer cannot start")
	}
}

func TestStage_Execute_ArgsRecorded(t *testing.T) {
	w := &argsWriter{args: []string{"ffmpeg", "-y", "out.mp3"}}
	stage := NewStage(factoryFor(w, nil, nil), mocks.NewFileSystem(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ExportInput{
		Encoder: testEncoder(),
		Source:  mocks.NewFrameSource(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(result.Args, " ") != "ffmpeg -y out.mp3" {
		t.Errorf("unexpected args %q", result.Args)
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name  string
		chunk []byte
		width int
		want  float64
	}{
		{"silence", []byte{0, 0, 0, 0}, 2, 0},
		{"positive half", []byte{0x00, 0x40}, 2, 0.5},
		{"negative full", []byte{0x00, 0x80}, 2, 1},
		{"picks largest", []byte{0x00, 0x10, 0x00, 0xc0}, 2, 0.5},
		{"8-bit", []byte{0x40, 0xc0}, 1, 0.5},
		{"24-bit", []byte{0x00, 0x00, 0x40}, 3, 0.5},
		{"32-bit", []byte{0x00, 0x00, 0x00, 0xc0}, 4, 0.5},
		{"bad width", []byte{1, 2}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := peak(tt.chunk, tt.width)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("peak(%v, %d) = %v, want %v", tt.chunk, tt.width, got, tt.want)
			}
		})
	}
}

type diagError struct{ text string }

func (e *diagError) Error() string          { return "write failed: " + e.text }
func (e *diagError) DiagnosticText() string { return e.text }

type argsWriter struct {
	mocks.AudioWriter
	args []string
}

func (w *argsWriter) Args() []string { return w.args }

func containsMessage(messages []string, want string) bool {
	for _, m := range messages {
		if m == want {
			return true
		}
	}
	return false
}
