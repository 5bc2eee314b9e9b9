// Package grocer exposes the purchase-list operations used by the CLI:
// the count list, the histogram chart, single-item lookup, the distinct item
// catalog and a SQLite export. Every call re-reads its source file.
package grocer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leeovery/grocer/internal/export"
	"github.com/leeovery/grocer/internal/report"
	"github.com/leeovery/grocer/internal/sink"
	"github.com/leeovery/grocer/internal/tally"
)

// Service runs the operations against files on disk.
type Service struct {
	console     io.Writer
	log         logrus.FieldLogger
	lockTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithConsole sets the writer that receives console output. Defaults to os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(s *Service) {
		s.console = w
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithLockTimeout sets how long a file write waits for its lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.lockTimeout = d
	}
}

// New creates a Service.
func New(opts ...Option) *Service {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Service{
		console:     os.Stdout,
		log:         discard,
		lockTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tally loads src and counts its items.
func (s *Service) Tally(src string) (*tally.Tally, error) {
	lines, err := tally.Load(src)
	if err != nil {
		return nil, err
	}
	t := tally.New(lines)
	s.log.WithFields(logrus.Fields{
		"source": src,
		"lines":  t.Total(),
		"items":  len(t.Items),
	}).Debug("source tallied")
	return t, nil
}

// CountItems prints each item with its purchase count, dot-padded to a fixed
// width. A nil error is the success status.
func (s *Service) CountItems(src string) error {
	t, err := s.Tally(src)
	if err != nil {
		return err
	}
	return sink.Console{W: s.console}.WriteLines(report.CountList(t))
}

// ChartItems prints a histogram of src and writes the same lines to dst,
// replacing its content. Nothing is printed or written when rendering or
// opening dst fails.
func (s *Service) ChartItems(src, dst string) error {
	t, err := s.Tally(src)
	if err != nil {
		return err
	}

	lines, err := report.Histogram(t)
	if err != nil {
		return fmt.Errorf("charting %s: %w", src, err)
	}

	file := sink.NewFile(dst, sink.WithLockTimeout(s.lockTimeout))
	if err := sink.Fanout(lines, file, sink.Console{W: s.console}); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"destination": dst, "lines": len(lines)}).Debug("histogram written")
	return nil
}

// CountOneItem returns how many times name (trimmed) appears in src.
func (s *Service) CountOneItem(src, name string) (int, error) {
	lines, err := tally.Load(src)
	if err != nil {
		return 0, err
	}
	return tally.Count(lines, name), nil
}

// GetItems returns the distinct items of src in first-seen order.
func (s *Service) GetItems(src string) ([]string, error) {
	lines, err := tally.Load(src)
	if err != nil {
		return nil, err
	}
	return tally.Distinct(lines), nil
}

// Export writes a snapshot of src's tally to the SQLite database at dbPath.
// It reports whether a write happened; an up-to-date snapshot is left alone.
func (s *Service) Export(ctx context.Context, src, dbPath string) (bool, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("opening source: %w", err)
	}
	lines, err := tally.Read(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("%s: %w", src, err)
	}

	db, err := export.Open(dbPath)
	if err != nil {
		return false, err
	}
	defer db.Close()

	current, err := db.IsCurrent(ctx, data)
	if err != nil {
		s.log.WithError(err).Warn("export freshness check failed, rewriting")
		current = false
	}
	if current {
		s.log.WithField("db", dbPath).Debug("export already current")
		return false, nil
	}

	if err := db.Write(ctx, tally.New(lines), data); err != nil {
		return false, err
	}
	s.log.WithField("db", dbPath).Debug("export written")
	return true, nil
}
