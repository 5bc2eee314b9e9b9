// Package sink writes rendered report lines to their destinations: the
// console and a file that is rewritten under an exclusive lock.
package sink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
)

const defaultLockTimeout = 5 * time.Second

// ErrLockTimeout is returned when the destination lock cannot be acquired
// before the timeout elapses.
var ErrLockTimeout = errors.New("could not acquire lock - another process may be writing the file")

// Sink receives rendered lines. Each line is written newline-terminated.
type Sink interface {
	WriteLines(lines []string) error
}

// Fanout writes the same lines to every sink in order, stopping at the first
// failure so later sinks see nothing.
func Fanout(lines []string, sinks ...Sink) error {
	for _, s := range sinks {
		if err := s.WriteLines(lines); err != nil {
			return err
		}
	}
	return nil
}

// Console writes lines to an io.Writer such as os.Stdout.
type Console struct {
	W io.Writer
}

// WriteLines implements Sink.
func (c Console) WriteLines(lines []string) error {
	return writeLines(c.W, lines)
}

// File rewrites the file at a path with the given lines. The previous content
// is truncated, never appended to.
type File struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
}

// Option configures a File.
type Option func(*File)

// WithLockTimeout sets a custom lock timeout duration. The default is 5 seconds.
func WithLockTimeout(d time.Duration) Option {
	return func(f *File) {
		f.lockTimeout = d
	}
}

// NewFile returns a File sink for path. The lock is held on path + ".lock",
// which stays on disk after the write so every writer locks the same inode.
func NewFile(path string, opts ...Option) *File {
	f := &File{
		path:        path,
		lockPath:    path + ".lock",
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the destination path.
func (f *File) Path() string {
	return f.path
}

// LockPath returns the path of the lock file kept beside the destination.
func (f *File) LockPath() string {
	return f.lockPath
}

// WriteLines implements Sink. The destination is opened with O_TRUNC and
// closed on every exit path.
func (f *File) WriteLines(lines []string) (err error) {
	unlock, err := f.acquireExclusive()
	if err != nil {
		return err
	}
	defer unlock()

	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing destination: %w", cerr)
		}
	}()

	w := bufio.NewWriter(out)
	if err := writeLines(w, lines); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}
	return nil
}

// acquireExclusive acquires an exclusive file lock with the configured timeout.
// It returns an unlock function that must be deferred by the caller.
func (f *File) acquireExclusive() (unlock func(), err error) {
	fl := flock.New(f.lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), f.lockTimeout)

	locked, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		cancel()
		return nil, fmt.Errorf("locking destination: %w", err)
	}
	if !locked {
		cancel()
		return nil, ErrLockTimeout
	}

	return func() {
		_ = fl.Unlock()
		cancel()
	}, nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
