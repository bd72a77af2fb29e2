package ffmpegwriter

import (
	"fmt"
	"strings"

	"github.com/user/audioexport/pkg/ports"
)

// pcmFormat returns ffmpeg's raw format and codec names for a sample width.
func pcmFormat(sampleWidth int) (format, codec string) {
	if sampleWidth == 1 {
		// 8-bit PCM has no endianness, ffmpeg only knows "s8"
		return "s8", "pcm_s8"
	}
	bits := 8 * sampleWidth
	return fmt.Sprintf("s%dle", bits), fmt.Sprintf("pcm_s%dle", bits)
}

// BuildArgs builds the ffmpeg arguments for an export, without the binary.
// The order matters: input format flags precede "-i -", video copy flags
// follow the video input and output flags follow the codec.
func BuildArgs(cfg ports.EncoderConfig, captured bool) []string {
	logLevel := "info"
	if captured {
		logLevel = "error"
	}
	format, inputCodec := pcmFormat(cfg.SampleWidth)
	rate := fmt.Sprintf("%d", cfg.SampleRate)

	args := []string{
		"-y",
		"-loglevel", logLevel,
		"-f", format,
		"-acodec", inputCodec,
		"-ar", rate,
		"-ac", fmt.Sprintf("%d", cfg.Channels),
		"-i", "-",
	}

	if cfg.InputVideo == "" {
		args = append(args, "-vn")
	} else {
		args = append(args, "-i", cfg.InputVideo, "-vcodec", "copy")
	}

	args = append(args,
		"-acodec", cfg.Codec,
		"-ar", rate,
		// needed for codecs ffmpeg marks experimental, like the native aac of older builds
		"-strict", "-2",
	)
	if cfg.Bitrate != "" {
		args = append(args, "-ab", cfg.Bitrate)
	}
	args = append(args, cfg.Params...)
	args = append(args, cfg.Filename)

	return args
}

// CodecForExtension returns a commonly available ffmpeg encoder for a file
// extension, with or without the leading dot. ok is false for unknown ones.
func CodecForExtension(ext string, sampleWidth int) (codec string, ok bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "libmp3lame", true
	case "ogg", "oga":
		return "libvorbis", true
	case "m4a", "mp4", "aac", "mov":
		return "aac", true
	case "opus", "webm":
		return "libopus", true
	case "flac":
		return "flac", true
	case "wav":
		_, pcm := pcmFormat(sampleWidth)
		return pcm, true
	}
	return "", false
}
