package mocks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/user/audioexport/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
	logs  map[string]*LogFile

	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	SizeFunc      func(path string) (int64, error)
	CreateLogFunc func(path string) (ports.LogFile, error)
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		logs:  make(map[string]*LogFile),
	}
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	if _, ok := m.dirs[path]; ok {
		return true, nil
	}
	return false, nil
}

func (m *FileSystem) Size(path string) (int64, error) {
	if m.SizeFunc != nil {
		return m.SizeFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[path]; ok {
		return int64(len(data)), nil
	}
	return 0, fmt.Errorf("file not found: %s", path)
}

func (m *FileSystem) CreateLog(path string) (ports.LogFile, error) {
	if m.CreateLogFunc != nil {
		return m.CreateLogFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &LogFile{name: path}
	m.logs[path] = f
	return f, nil
}

// GetFile returns the contents of a file (for test verification).
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

// GetAllFiles returns all files (for test verification).
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string][]byte)
	for k, v := range m.files {
		result[k] = v
	}
	return result
}

// GetLog returns a log file created through CreateLog (for test verification).
func (m *FileSystem) GetLog(path string) (*LogFile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.logs[path]
	return f, ok
}

var _ ports.FileSystem = (*FileSystem)(nil)

// ErrLogClosed is returned by LogFile operations after Close.
var ErrLogClosed = errors.New("log file closed")

// LogFile is an in-memory ports.LogFile.
type LogFile struct {
	mu     sync.Mutex
	name   string
	data   []byte
	off    int64
	closed bool

	// CloseCalls counts calls to Close.
	CloseCalls int
}

// NewLogFile creates an in-memory log file holding content.
func NewLogFile(name, content string) *LogFile {
	return &LogFile{name: name, data: []byte(content)}
}

func (f *LogFile) Name() string { return f.name }

func (f *LogFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, ErrLogClosed
	}
	end := f.off + int64(len(p))
	if end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	copy(f.data[f.off:], p)
	f.off = end
	return len(p), nil
}

func (f *LogFile) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, ErrLogClosed
	}
	if f.off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.off:])
	f.off += int64(n)
	return n, nil
}

func (f *LogFile) Seek(offset int64, whence int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.off + offset
	case io.SeekEnd:
		abs = int64(len(f.data)) + offset
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative offset")
	}
	f.off = abs
	return abs, nil
}

func (f *LogFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CloseCalls++
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *LogFile) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// String returns everything written so far.
func (f *LogFile) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(bytes.Clone(f.data))
}

var _ ports.LogFile = (*LogFile)(nil)
