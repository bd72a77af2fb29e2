package summarizer

import (
	"fmt"
	"strings"
)

// TextFormatter renders a Summary as plain "Label: value" lines.
func TextFormatter(translate func(string) string) Formatter {
	if translate == nil {
		translate = func(s string) string { return s }
	}
	return FormatFunc(func(s *Summary) string {
		var sb strings.Builder
		line := func(label, value string) {
			fmt.Fprintf(&sb, "%s: %s\n", translate(label), value)
		}

		line("Generated", s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
		if s.SessionID != "" {
			line("Session", s.SessionID)
		}
		line("Output", s.Output.Path)
		if s.Input != "" {
			line("Input", s.Input)
		}
		line("File Size", formatBytes(s.Output.FileSize))
		if d := s.DurationMs(); d > 0 {
			line("Audio Duration", formatDuration(d))
		}
		line("Chunks", fmt.Sprintf("%d", s.Output.Chunks))
		if s.Output.Container != "" {
			line("Container", s.Output.Container)
		}
		line("Codec", s.Settings.Codec)
		line("Bitrate", orDefault(translate, s.Settings.Bitrate))
		line("Sample Rate", fmt.Sprintf("%d Hz", s.Settings.SampleRate))
		line("Channels", fmt.Sprintf("%d", s.Settings.Channels))

		return sb.String()
	})
}
