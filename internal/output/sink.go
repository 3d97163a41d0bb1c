package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"
)

// Sink receives one formatted record line per company, in order
type Sink interface {
	Emit(line string) error
	Close() error
}

// WriterSink writes records to an io.Writer
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink over w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes line followed by a newline
func (s *WriterSink) Emit(line string) error {
	_, err := io.WriteString(s.w, strings.TrimRight(line, "\n")+"\n")
	return err
}

// Close is a no-op; the writer is owned by the caller
func (s *WriterSink) Close() error {
	return nil
}

// FileSink appends records to a file held under an exclusive lock
type FileSink struct {
	file *os.File
	lock *flock.Flock
	echo io.Writer
}

// OpenFile opens path for appending. Every emitted line is also written to
// echo when it is not nil.
func OpenFile(path string, echo io.Writer) (*FileSink, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is writing to %s", path)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open output: %w", err)
	}

	return &FileSink{file: file, lock: lock, echo: echo}, nil
}

// Emit appends line and a newline to the file
func (s *FileSink) Emit(line string) error {
	line = strings.TrimRight(line, "\n") + "\n"
	if _, err := io.WriteString(s.file, line); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if s.echo != nil {
		_, _ = io.WriteString(s.echo, line)
	}
	return nil
}

// Close closes the file and releases the lock
func (s *FileSink) Close() error {
	return errors.Join(s.file.Close(), s.lock.Unlock())
}

// Open returns a stdout sink for "-" and a locked file sink otherwise
func Open(path string, stdout io.Writer, echo bool) (Sink, error) {
	if path == "-" {
		return NewWriterSink(stdout), nil
	}
	var echoTo io.Writer
	if echo {
		echoTo = stdout
	}
	return OpenFile(path, echoTo)
}
