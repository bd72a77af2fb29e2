package ports

import "io"

// FileSystem abstracts file system operations.
type FileSystem interface {
	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)

	// CreateLog creates (or truncates) a read-write log file.
	CreateLog(path string) (LogFile, error)
}

// LogFile is a caller-owned file that an encoder can write diagnostics into
// and that can be read back from the start on failure.
type LogFile interface {
	io.ReadWriteSeeker
	io.Closer
	Name() string
}
