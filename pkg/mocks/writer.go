package mocks

import (
	"errors"

	"github.com/user/audioexport/pkg/ports"
)

// ErrWriterClosed is returned by AudioWriter.Write after Close.
var ErrWriterClosed = errors.New("writer closed")

// AudioWriter is a mock implementation of ports.AudioWriter.
type AudioWriter struct {
	WriteFunc func(chunk []byte) error
	CloseFunc func() error

	// Recorded calls for verification
	Chunks     [][]byte
	CloseCalls int
}

func (m *AudioWriter) Write(chunk []byte) error {
	if m.CloseCalls > 0 {
		return ErrWriterClosed
	}
	m.Chunks = append(m.Chunks, chunk)
	if m.WriteFunc != nil {
		return m.WriteFunc(chunk)
	}
	return nil
}

func (m *AudioWriter) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Bytes returns all chunks written so far, concatenated.
func (m *AudioWriter) Bytes() []byte {
	var out []byte
	for _, c := range m.Chunks {
		out = append(out, c...)
	}
	return out
}

var _ ports.AudioWriter = (*AudioWriter)(nil)
