// Package main provides the CLI entry point for audioexport.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/audioexport/pkg/adapters/ffmpegwriter"
	"github.com/user/audioexport/pkg/adapters/filesink"
	"github.com/user/audioexport/pkg/adapters/ggrenderer"
	"github.com/user/audioexport/pkg/adapters/logger"
	"github.com/user/audioexport/pkg/adapters/mp4probe"
	"github.com/user/audioexport/pkg/adapters/nullsink"
	"github.com/user/audioexport/pkg/adapters/osfilesystem"
	"github.com/user/audioexport/pkg/adapters/sources"
	"github.com/user/audioexport/pkg/audioexport"
	"github.com/user/audioexport/pkg/config"
	"github.com/user/audioexport/pkg/orchestrator"
	"github.com/user/audioexport/pkg/ports"
	"github.com/user/audioexport/pkg/stages/export"
	"github.com/user/audioexport/pkg/stages/verify"
	"github.com/user/audioexport/pkg/summarizer"
)

var version = "dev"

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "audioexport",
		Usage:     l10n.T("Export audio to any format ffmpeg can encode"),
		Version:   version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		// --param values are ffmpeg arguments; commas inside them are literal.
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			exportCommand(),
			probeCommand(),
			versionCommand(),
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Encode an audio source into a file"),
		ArgsUsage: "[INPUT | -]",
		Description: l10n.T("Decode INPUT (mp3 or flac), or read raw PCM from stdin with \"-\", " +
			"or generate a tone with --tone, and stream it into ffmpeg."),
		Flags: []cli.Flag{
			// Output
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Category: l10n.T("Output"),
				Usage: l10n.T("Output file path (required)")},
			&cli.BoolFlag{Name: "log-file", Category: l10n.T("Output"),
				Usage: l10n.T("Write ffmpeg diagnostics to <output>.log")},
			&cli.BoolFlag{Name: "no-verify", Category: l10n.T("Output"),
				Usage: l10n.T("Skip checking the written file")},
			&cli.StringFlag{Name: "summary", Category: l10n.T("Output"),
				Usage: l10n.T("Output execution summary to file (Markdown, or plain text for .txt)")},

			// Preset
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: l10n.T("Preset"),
				Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Category: l10n.T("Preset"),
				Usage: l10n.T("Export preset (music, voice)")},
			&cli.StringFlag{Name: "quality", Aliases: []string{"q"}, Category: l10n.T("Preset"),
				Usage: l10n.T("Quality preset (low, medium, high)")},

			// Encoding
			&cli.StringFlag{Name: "codec", Category: l10n.T("Encoding"),
				Usage: l10n.T("ffmpeg audio encoder (default: chosen from the output extension)")},
			&cli.StringFlag{Name: "bitrate", Aliases: []string{"b"}, Category: l10n.T("Encoding"),
				Usage: l10n.T("Audio bitrate, e.g. 192k")},
			&cli.IntFlag{Name: "sample-rate", Aliases: []string{"r"}, Category: l10n.T("Encoding"),
				Usage: l10n.T("Sample rate in Hz")},
			&cli.IntFlag{Name: "sample-width", Category: l10n.T("Encoding"),
				Usage: l10n.T("Bytes per sample (1-4)")},
			&cli.IntFlag{Name: "channels", Category: l10n.T("Encoding"),
				Usage: l10n.T("Channel count (default: the source's)")},
			&cli.StringSliceFlag{Name: "param", Category: l10n.T("Encoding"),
				Usage: l10n.T("Extra ffmpeg argument, repeatable")},
			&cli.StringFlag{Name: "video", Category: l10n.T("Encoding"),
				Usage: l10n.T("Video file to mux the audio against")},
			&cli.IntFlag{Name: "chunk-size", Category: l10n.T("Encoding"),
				Usage: l10n.T("Frames per chunk written to ffmpeg")},
			&cli.StringFlag{Name: "ffmpeg", Category: l10n.T("Encoding"), EnvVars: []string{"AUDIOEXPORT_FFMPEG"},
				Usage: l10n.T("Path to the ffmpeg binary")},

			// Source
			&cli.Float64Flag{Name: "tone", Category: l10n.T("Source"),
				Usage: l10n.T("Generate a sine tone of this frequency in Hz instead of reading INPUT")},
			&cli.DurationFlag{Name: "duration", Value: 2 * time.Second, Category: l10n.T("Source"),
				Usage: l10n.T("Tone duration")},

			// Debug
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Category: l10n.T("Debug"),
				Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Category: l10n.T("Debug"),
				Usage: l10n.T("Directory for debug output")},

			// Logging
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Category: l10n.T("Logging"),
				Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.StringFlag{Name: "log-format", Category: l10n.T("Logging"),
				Usage: l10n.T("Log format (console, json)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: l10n.T("Logging"),
				Usage: l10n.T("Suppress all log output")},
		},
		Action: runExport,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Show the tracks of an mp4, m4a or mov file"),
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: l10n.T("Print as JSON")},
		},
		Action: runProbe,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("audioexport version %s", version))
			return nil
		},
	}
}

// runExport executes the export command.
func runExport(c *cli.Context) error {
	fileCfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.IsSet("preset") {
		fileCfg.Export.Preset = c.String("preset")
	}
	builder, err := fileCfg.Builder()
	if err != nil {
		return err
	}
	applyFlags(c, builder)
	cfg := builder.Build()

	log := newLogger(c, fileCfg)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	source, input, err := openSource(c, cfg)
	if err != nil {
		return err
	}

	output := c.String("output")
	sessionID := uuid.NewString()
	orchConfig, err := cfg.ToOrchestratorConfig(output, sessionID)
	if err != nil {
		return err
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	// Create debug sink
	var sink ports.DebugSink
	if c.Bool("debug") || fileCfg.Debug {
		dir := filepath.Join(pick(c.String("debug-dir"), fileCfg.DebugDir), sessionID)
		if err := fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(dir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	ffmpegPath := pick(c.String("ffmpeg"), fileCfg.FFmpegPath)
	newWriter := func(ec ports.EncoderConfig, logFile io.ReadWriteSeeker) (ports.AudioWriter, error) {
		w, err := ffmpegwriter.New(ec, ffmpegwriter.Options{
			FFmpegPath: ffmpegPath,
			LogFile:    logFile,
			Logger:     log,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	// Create stages
	exportStage := export.NewStage(newWriter, fs, log)
	verifyStage := verify.NewStage(fs, mp4probe.NewProber(), log)

	orch := orchestrator.New(exportStage, verifyStage, renderer, sink, log)

	result, err := orch.Run(ctx, orchConfig, source)
	if err != nil {
		return err
	}

	log.Info("Output saved to %s", output)

	if path := c.String("summary"); path != "" {
		s := buildSummary(c, fileCfg, cfg, orchConfig, source, input, result)
		w := summarizer.NewWriter(summaryFormatter(path), fs)
		if err := w.Write(path, s); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", path)
		}
	}

	return nil
}

func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.Defaults(), nil
	}
	return config.LoadFromFile(path)
}

// applyFlags applies command-line overrides on top of the file settings.
func applyFlags(c *cli.Context, b *audioexport.ConfigBuilder) {
	if c.IsSet("quality") {
		b.WithQualityPreset(audioexport.QualityPreset(c.String("quality")))
	}
	if c.IsSet("codec") {
		b.WithCodec(c.String("codec"))
	}
	if c.IsSet("bitrate") {
		b.WithBitrate(c.String("bitrate"))
	}
	if c.IsSet("sample-rate") {
		b.WithSampleRate(c.Int("sample-rate"))
	}
	if c.IsSet("sample-width") {
		b.WithSampleWidth(c.Int("sample-width"))
	}
	if c.IsSet("channels") {
		b.WithChannels(c.Int("channels"))
	}
	if c.IsSet("param") {
		b.WithParams(c.StringSlice("param")...)
	}
	if c.IsSet("video") {
		b.WithInputVideo(c.String("video"))
	}
	if c.IsSet("chunk-size") {
		b.WithChunkSize(c.Int("chunk-size"))
	}
	if c.Bool("log-file") {
		b.WithLogFile(true)
	}
	if c.Bool("no-verify") {
		b.WithVerify(false)
	}
}

func newLogger(c *cli.Context, fileCfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(pick(c.String("log-level"), fileCfg.LogLevel))
	if pick(c.String("log-format"), fileCfg.LogFormat) == "json" {
		return logger.NewJSON(c.App.ErrWriter, level)
	}
	return logger.NewConsole(level)
}

// openSource returns the frame source and a description of it.
func openSource(c *cli.Context, cfg audioexport.Config) (ports.FrameSource, string, error) {
	channels := cfg.Channels

	if c.IsSet("tone") {
		if c.NArg() > 0 {
			return nil, "", fmt.Errorf("--tone does not take an INPUT argument")
		}
		if channels == 0 {
			channels = 2
		}
		freq := c.Float64("tone")
		return sources.NewToneSource(freq, c.Duration("duration"), channels),
			fmt.Sprintf("tone %g Hz, %s", freq, c.Duration("duration")), nil
	}

	input := c.Args().First()
	switch input {
	case "":
		return nil, "", fmt.Errorf("an INPUT argument, \"-\" or --tone is required")
	case "-":
		if channels == 0 {
			channels = 2
		}
		return sources.NewRawSource(c.App.Reader, channels), "stdin", nil
	}

	source, err := sources.Open(input)
	if err != nil {
		return nil, "", err
	}
	return source, input, nil
}

// summaryFormatter writes plain text for .txt paths and Markdown otherwise.
func summaryFormatter(path string) summarizer.Formatter {
	translate := func(key string) string { return l10n.T(key) }
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return summarizer.TextFormatter(translate)
	}
	return summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(translate),
		summarizer.WithVersion(version),
	)
}

func buildSummary(
	c *cli.Context,
	fileCfg config.Config,
	cfg audioexport.Config,
	oc orchestrator.Config,
	source ports.FrameSource,
	input string,
	result orchestrator.RunResult,
) *summarizer.Summary {
	channels := cfg.Channels
	if channels == 0 {
		channels = source.Channels()
	}

	out := summarizer.OutputInfo{
		Path:     result.OutputPath,
		Chunks:   result.Export.Chunks,
		PCMBytes: result.Export.Bytes,
	}
	if v := result.Verify; v != nil {
		out.FileSize = v.Size
		if v.Media != nil {
			out.Container = v.Media.Container
			out.AudioCodec = v.Media.AudioCodec
			out.VideoCodec = v.Media.VideoCodec
		}
	} else if info, err := os.Stat(result.OutputPath); err == nil {
		out.FileSize = info.Size()
	}

	return summarizer.NewBuilder().
		WithSession(result.SessionID).
		WithInput(input).
		WithSettings(summarizer.Settings{
			Preset:      fileCfg.Export.Preset,
			Quality:     pick(c.String("quality"), fileCfg.Export.Quality),
			Codec:       oc.Codec,
			Bitrate:     oc.Bitrate,
			SampleRate:  oc.SampleRate,
			SampleWidth: oc.SampleWidth,
			Channels:    channels,
		}).
		WithOutput(out).
		Build()
}

// runProbe executes the probe command.
func runProbe(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a FILE argument is required")
	}

	info, err := mp4probe.Probe(path)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintln(w, l10n.F("Fragmented: %t", info.Fragmented))
	for _, t := range info.Tracks {
		lang := t.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t%d\t%s\n", t.ID, t.Handler, t.SampleEntry, t.Timescale, lang)
	}
	return nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
