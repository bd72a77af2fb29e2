package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion sets the version shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Export Summary"))
	fmt.Fprintf(&sb, "%s: %s\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if s.SessionID != "" {
		fmt.Fprintf(&sb, "%s: `%s`\n", t("Session"), s.SessionID)
	}
	sb.WriteString("\n")

	// Results
	fmt.Fprintf(&sb, "## %s\n\n", t("Results"))
	f.tableHeader(&sb)
	f.row(&sb, "Output", s.Output.Path)
	if s.Input != "" {
		f.row(&sb, "Input", s.Input)
	}
	f.row(&sb, "File Size", formatBytes(s.Output.FileSize))
	if d := s.DurationMs(); d > 0 {
		f.row(&sb, "Audio Duration", formatDuration(d))
	}
	f.row(&sb, "Chunks", fmt.Sprintf("%d", s.Output.Chunks))
	f.row(&sb, "PCM Data", formatBytes(s.Output.PCMBytes))
	if s.Output.Container != "" {
		f.row(&sb, "Container", s.Output.Container)
		f.row(&sb, "Audio Track", orNone(t, s.Output.AudioCodec))
		f.row(&sb, "Video Track", orNone(t, s.Output.VideoCodec))
	}
	sb.WriteString("\n")

	// Settings
	st := s.Settings
	fmt.Fprintf(&sb, "## %s\n\n", t("Settings"))
	f.tableHeader(&sb)
	if st.Preset != "" {
		f.row(&sb, "Preset", st.Preset)
	}
	if st.Quality != "" {
		f.row(&sb, "Quality", st.Quality)
	}
	f.row(&sb, "Codec", st.Codec)
	f.row(&sb, "Bitrate", orDefault(t, st.Bitrate))
	f.row(&sb, "Sample Rate", fmt.Sprintf("%d Hz", st.SampleRate))
	f.row(&sb, "Sample Width", fmt.Sprintf("%d bit", st.SampleWidth*8))
	f.row(&sb, "Channels", fmt.Sprintf("%d", st.Channels))
	sb.WriteString("\n")

	sb.WriteString("---\n\n")
	if f.version != "" {
		fmt.Fprintf(&sb, "%s audioexport %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&sb, "%s audioexport\n", t("Generated by"))
	}

	return sb.String()
}

func (f *MarkdownFormatter) tableHeader(sb *strings.Builder) {
	fmt.Fprintf(sb, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	sb.WriteString("|---|---|\n")
}

func (f *MarkdownFormatter) row(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "| %s | %s |\n", f.translate(label), value)
}

func orNone(t func(string) string, v string) string {
	if v == "" {
		return t("None")
	}
	return v
}

func orDefault(t func(string) string, v string) string {
	if v == "" {
		return t("Encoder default")
	}
	return v
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

// formatDuration renders milliseconds as m:ss.mmm.
func formatDuration(ms int64) string {
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

var _ Formatter = (*MarkdownFormatter)(nil)
