package cli

import (
	"errors"
	"io"

	"github.com/leeovery/grocer/internal/tally"
)

// Format represents the output format type.
type Format string

// Format constants for output selection.
const (
	FormatToon   Format = "toon"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// Formatter defines the interface for rendering command output in different formats.
type Formatter interface {
	// FormatCounts renders every item with its purchase count (grocer list).
	FormatCounts(w io.Writer, t *tally.Tally) error
	// FormatItems renders the distinct item catalog (grocer items).
	FormatItems(w io.Writer, items []string) error
	// FormatItemCount renders a single-item lookup (grocer count).
	FormatItemCount(w io.Writer, name string, count int) error
	// FormatMessage renders a simple message (grocer export).
	FormatMessage(w io.Writer, msg string) error
}

// ResolveFormat determines the output format from flags.
// Returns error if more than one format flag is set. With no flag set the
// human-readable format is used so console output keeps its fixed layout.
func ResolveFormat(toonFlag, prettyFlag, jsonFlag bool) (Format, error) {
	count := 0
	for _, set := range []bool{toonFlag, prettyFlag, jsonFlag} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", errors.New("cannot specify multiple format flags (--toon, --pretty, --json)")
	}

	switch {
	case toonFlag:
		return FormatToon, nil
	case jsonFlag:
		return FormatJSON, nil
	default:
		return FormatPretty, nil
	}
}

// Formatter returns the appropriate Formatter for the format.
// This is the single point where format is resolved to a concrete formatter.
func (f Format) Formatter() Formatter {
	switch f {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatToon:
		return &ToonFormatter{}
	default:
		return &PrettyFormatter{}
	}
}
