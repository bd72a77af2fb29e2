// Package mp4probe inspects MP4-family files (mp4, m4a, mov) written by an
// export and reports the sample entries of their tracks.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/audioexport/pkg/ports"
)

// ErrNoTracks is returned when a file has no moov box or no tracks.
var ErrNoTracks = errors.New("no tracks found")

// Track describes one track of the file.
type Track struct {
	ID          uint32 `json:"id"`
	Handler     string `json:"handler"`      // "soun", "vide", ...
	SampleEntry string `json:"sample_entry"` // "mp4a", "Opus", "fLaC", "avc1", ...
	Timescale   uint32 `json:"timescale"`
	Language    string `json:"language,omitempty"`
}

// Info is the result of a probe.
type Info struct {
	Fragmented bool    `json:"fragmented"`
	Tracks     []Track `json:"tracks"`
}

// Audio returns the first sound track.
func (i Info) Audio() (Track, bool) {
	return i.first("soun")
}

// Video returns the first video track.
func (i Info) Video() (Track, bool) {
	return i.first("vide")
}

func (i Info) first(handler string) (Track, bool) {
	for _, t := range i.Tracks {
		if t.Handler == handler {
			return t, true
		}
	}
	return Track{}, false
}

// Supported reports whether path has an extension this package can probe.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4a", ".mov":
		return true
	}
	return false
}

// Probe decodes the box structure of the file at path.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeBytes probes in-memory file data.
func ProbeBytes(data []byte) (Info, error) {
	return ProbeReader(bytes.NewReader(data))
}

// ProbeReader probes r and leaves it positioned at the start.
func ProbeReader(r io.ReadSeeker) (Info, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek: %w", err)
	}

	return infoFromFile(file)
}

func infoFromFile(file *mp4.File) (Info, error) {
	info := Info{Fragmented: file.IsFragmented()}

	// A fragmented file keeps its moov in the init segment.
	moov := file.Moov
	if file.Init != nil && file.Init.Moov != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return info, ErrNoTracks
	}

	for _, trak := range moov.Traks {
		if t, ok := trackInfo(trak); ok {
			info.Tracks = append(info.Tracks, t)
		}
	}
	if len(info.Tracks) == 0 {
		return info, ErrNoTracks
	}
	return info, nil
}

func trackInfo(trak *mp4.TrakBox) (Track, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return Track{}, false
	}

	t := Track{Handler: trak.Mdia.Hdlr.HandlerType}
	if trak.Tkhd != nil {
		t.ID = trak.Tkhd.TrackID
	}
	if mdhd := trak.Mdia.Mdhd; mdhd != nil {
		t.Timescale = mdhd.Timescale
		t.Language = mdhd.GetLanguage()
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return t, true
	}
	if children := trak.Mdia.Minf.Stbl.Stsd.Children; len(children) > 0 {
		t.SampleEntry = children[0].Type()
	}
	return t, true
}

// Prober adapts Probe to ports.MediaProber.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Supports implements ports.MediaProber.
func (p *Prober) Supports(path string) bool {
	return Supported(path)
}

// Probe implements ports.MediaProber.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	info, err := Probe(path)
	if err != nil {
		return ports.MediaInfo{}, err
	}
	media := ports.MediaInfo{Container: "mp4", Fragmented: info.Fragmented}
	if t, ok := info.Audio(); ok {
		media.AudioCodec = t.SampleEntry
	}
	if t, ok := info.Video(); ok {
		media.VideoCodec = t.SampleEntry
	}
	return media, nil
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
