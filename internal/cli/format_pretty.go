package cli

import (
	"fmt"
	"io"

	"github.com/leeovery/grocer/internal/report"
	"github.com/leeovery/grocer/internal/sink"
	"github.com/leeovery/grocer/internal/tally"
)

// PrettyFormatter renders the fixed-width console layouts.
type PrettyFormatter struct{}

// FormatCounts writes the dot-padded count list.
func (f *PrettyFormatter) FormatCounts(w io.Writer, t *tally.Tally) error {
	return sink.Console{W: w}.WriteLines(report.CountList(t))
}

// FormatItems writes one item per line.
func (f *PrettyFormatter) FormatItems(w io.Writer, items []string) error {
	return sink.Console{W: w}.WriteLines(items)
}

// FormatItemCount writes a purchase sentence, e.g. "Apples: 3 purchases this day."
func (f *PrettyFormatter) FormatItemCount(w io.Writer, name string, count int) error {
	_, err := fmt.Fprintln(w, purchaseMessage(name, count))
	return err
}

// FormatMessage writes the message followed by a newline.
func (f *PrettyFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func purchaseMessage(name string, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("No %s purchased this day.", name)
	case 1:
		return fmt.Sprintf("%s: 1 purchase this day.", name)
	default:
		return fmt.Sprintf("%s: %d purchases this day.", name, count)
	}
}
