package ports

// MediaInfo summarizes the streams of an encoded file.
type MediaInfo struct {
	Container  string `json:"container"`
	Fragmented bool   `json:"fragmented"`
	AudioCodec string `json:"audio_codec,omitempty"` // Sample entry type, e.g. "mp4a"
	VideoCodec string `json:"video_codec,omitempty"`
}

// MediaProber inspects encoded output files.
type MediaProber interface {
	// Supports reports whether the prober understands the file at path.
	Supports(path string) bool

	// Probe reads the container structure of the file at path.
	Probe(path string) (MediaInfo, error)
}
