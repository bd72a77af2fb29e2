package mocks

import (
	"image"
	"sync"

	"github.com/user/audioexport/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Invocation  []string
	SessionJSON []byte
	Waveform    image.Image
	Diagnostics string
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveInvocation(args []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invocation = args
	return nil
}

func (m *DebugSink) SaveSessionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionJSON = data
	return nil
}

func (m *DebugSink) SaveWaveform(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Waveform = img
	return nil
}

func (m *DebugSink) SaveDiagnostics(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Diagnostics = text
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                      { return false }
func (m *NullSink) SaveInvocation(args []string) error { return nil }
func (m *NullSink) SaveSessionJSON(data []byte) error  { return nil }
func (m *NullSink) SaveWaveform(img image.Image) error { return nil }
func (m *NullSink) SaveDiagnostics(text string) error  { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
