// Package tally turns a purchase list (one item name per line) into an ordered
// frequency mapping. Every call works from the lines it is given; nothing is
// cached between reads of a source.
package tally

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ErrEmptyInput is returned when an operation needs at least one item but the
// source has none.
var ErrEmptyInput = errors.New("no items in source")

// Entry is one distinct item and the number of times it was purchased.
type Entry struct {
	Name  string
	Count int
}

// Tally is the result of counting one source. Lines keeps every trimmed line
// (duplicates included), Items the distinct names in first-seen order.
type Tally struct {
	Lines  []string
	Items  []string
	Counts map[string]int
}

// Read returns one trimmed item per input line. Blank lines are kept as empty
// items. A final line without a terminator still counts. Lines have no
// length limit.
func Read(r io.Reader) ([]string, error) {
	lines := []string{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading items: %w", err)
		}
	}
}

// Load opens the file at path and reads its items. The open error is wrapped
// so callers can test it with errors.Is(err, fs.ErrNotExist).
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	lines, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// Distinct returns each line once, in order of first appearance.
func Distinct(lines []string) []string {
	return lo.Uniq(lines)
}

// Count returns how many lines exactly match name after trimming it.
// An absent name counts zero.
func Count(lines []string, name string) int {
	return lo.Count(lines, strings.TrimSpace(name))
}

// New builds the ordered distinct list and frequency mapping for lines.
// The input slice is not modified.
func New(lines []string) *Tally {
	return &Tally{
		Lines:  append([]string{}, lines...),
		Items:  Distinct(lines),
		Counts: lo.CountValues(lines),
	}
}

// Entries returns the items with their counts in first-seen order.
func (t *Tally) Entries() []Entry {
	entries := make([]Entry, 0, len(t.Items))
	for _, item := range t.Items {
		entries = append(entries, Entry{Name: item, Count: t.Counts[item]})
	}
	return entries
}

// Total is the number of lines counted.
func (t *Tally) Total() int {
	return len(t.Lines)
}

// Longest returns the length in characters of the longest item name.
func (t *Tally) Longest() (int, error) {
	if len(t.Items) == 0 {
		return 0, ErrEmptyInput
	}
	longest := lo.MaxBy(t.Items, func(a, b string) bool {
		return utf8.RuneCountInString(a) > utf8.RuneCountInString(b)
	})
	return utf8.RuneCountInString(longest), nil
}
