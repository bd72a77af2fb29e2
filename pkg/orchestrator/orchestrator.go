// Package orchestrator coordinates the export and verify stages of one
// export session.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"github.com/user/audioexport/pkg/pipeline"
	"github.com/user/audioexport/pkg/ports"
)

// Config contains all configuration for one export session.
type Config struct {
	SessionID string

	// Output
	OutputPath string
	Codec      string
	Bitrate    string
	Params     []string
	InputVideo string

	// Sample format
	SampleRate  int
	SampleWidth int
	Channels    int // 0 takes the source's channel count

	// Streaming
	ChunkSize    int
	WriteLogFile bool

	// Verify probes the written file after the export.
	Verify bool

	// Waveform rendered into the debug sink
	WaveformWidth      int
	WaveformHeight     int
	WaveformBackground [4]uint8 // RGBA
	WaveformForeground [4]uint8 // RGBA
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SampleRate:     44100,
		SampleWidth:    2,
		ChunkSize:      pipeline.DefaultChunkSize,
		Verify:         true,
		WaveformWidth:  800,
		WaveformHeight: 160,
	}
}

// Orchestrator coordinates the execution of an export session.
type Orchestrator struct {
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	verifyStage pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult]
	renderer    ports.Renderer
	sink        ports.DebugSink
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	verifyStage pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult],
	renderer ports.Renderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		exportStage: exportStage,
		verifyStage: verifyStage,
		renderer:    renderer,
		sink:        sink,
		logger:      logger,
	}
}

// Run exports source according to config and verifies the result.
//
// Export failures are returned. A failing verification is only logged since
// the file has already been written.
func (o *Orchestrator) Run(ctx context.Context, config Config, source ports.FrameSource) (RunResult, error) {
	if config.SessionID != "" {
		o.logger.Debug("Session %s", config.SessionID)
	}

	exported, err := o.exportStage.Execute(ctx, o.buildExportInput(config, source))
	if len(exported.Args) > 0 && o.sink.Enabled() {
		o.save(o.sink.SaveInvocation(exported.Args))
	}
	if err != nil {
		o.logger.Error("Failed to export audio: %v", err)
		o.saveDiagnostics(err)
		return RunResult{}, fmt.Errorf("export stage: %w", err)
	}

	result := RunResult{
		SessionID:  config.SessionID,
		OutputPath: config.OutputPath,
		Codec:      config.Codec,
		Export:     exported,
	}

	if config.Verify && o.verifyStage != nil {
		verified, err := o.verifyStage.Execute(ctx, pipeline.VerifyInput{Path: config.OutputPath})
		if err != nil {
			o.logger.Warn("Could not probe output: %v", err)
		} else {
			result.Verify = &verified
		}
	}

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			o.save(o.sink.SaveSessionJSON(data))
		}
		if o.renderer != nil && len(exported.Peaks) > 0 {
			img := o.renderer.RenderWaveform(exported.Peaks, o.waveformStyle(config))
			o.save(o.sink.SaveWaveform(img))
		}
	}

	return result, nil
}

func (o *Orchestrator) buildExportInput(config Config, source ports.FrameSource) pipeline.ExportInput {
	return pipeline.ExportInput{
		Encoder: ports.EncoderConfig{
			Filename:    config.OutputPath,
			SampleRate:  config.SampleRate,
			SampleWidth: config.SampleWidth,
			Channels:    config.Channels,
			Codec:       config.Codec,
			Bitrate:     config.Bitrate,
			InputVideo:  config.InputVideo,
			Params:      config.Params,
		},
		Source:       source,
		ChunkSize:    config.ChunkSize,
		WriteLogFile: config.WriteLogFile,
	}
}

func (o *Orchestrator) waveformStyle(config Config) ports.WaveformStyle {
	style := ports.WaveformStyle{
		Width:  config.WaveformWidth,
		Height: config.WaveformHeight,
	}
	// Zero colors keep the renderer's theme.
	if config.WaveformBackground != [4]uint8{} {
		style.Background = rgbaFromArray(config.WaveformBackground)
	}
	if config.WaveformForeground != [4]uint8{} {
		style.Foreground = rgbaFromArray(config.WaveformForeground)
	}
	return style
}

func (o *Orchestrator) saveDiagnostics(err error) {
	if !o.sink.Enabled() {
		return
	}
	var diag ports.DiagnosticError
	if errors.As(err, &diag) {
		o.save(o.sink.SaveDiagnostics(diag.DiagnosticText()))
	}
}

func (o *Orchestrator) save(err error) {
	if err != nil {
		o.logger.Warn("Could not save debug output: %v", err)
	}
}

func rgbaFromArray(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// RunResult contains the results of an export session.
type RunResult struct {
	SessionID  string                 `json:"session_id,omitempty"`
	OutputPath string                 `json:"output"`
	Codec      string                 `json:"codec"`
	Export     pipeline.ExportResult  `json:"export"`
	Verify     *pipeline.VerifyResult `json:"verify,omitempty"`
}
