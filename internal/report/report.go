// Package report renders a tally as text lines. Rendering is separate from
// output so the same lines can be fed to several sinks.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leeovery/grocer/internal/tally"
)

// TotalWidth is the width of a count-list line when the name and count fit.
const TotalWidth = 30

// CountList renders one "<item><dots><count>" line per item in first-seen
// order. Widths count characters, not bytes. Names too long for TotalWidth
// get no dots and are never truncated.
func CountList(t *tally.Tally) []string {
	lines := make([]string, 0, len(t.Items))
	for _, e := range t.Entries() {
		num := strconv.Itoa(e.Count)
		lines = append(lines, e.Name+fill(".", TotalWidth-(utf8.RuneCountInString(e.Name)+len(num)))+num)
	}
	return lines
}

// Histogram renders one "<item><fill>| <stars>" line per item, padding each
// name to the longest one. A gap wider than one column is filled with dots,
// otherwise with spaces. A tally with no items, or only blank ones, returns
// tally.ErrEmptyInput.
func Histogram(t *tally.Tally) ([]string, error) {
	itemLength, err := t.Longest()
	if err != nil {
		return nil, err
	}
	if itemLength == 0 {
		return nil, fmt.Errorf("only blank lines: %w", tally.ErrEmptyInput)
	}

	lines := make([]string, 0, len(t.Items))
	for _, e := range t.Entries() {
		spaceWidth := itemLength - utf8.RuneCountInString(e.Name)
		pad := " "
		if spaceWidth > 1 {
			pad = "."
		}
		lines = append(lines, e.Name+fill(pad, spaceWidth)+"| "+strings.Repeat("*", e.Count))
	}
	return lines, nil
}

// fill repeats s n times; n <= 0 yields "".
func fill(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
