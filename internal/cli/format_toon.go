package cli

import (
	"fmt"
	"io"

	toon "github.com/toon-format/toon-go"

	"github.com/leeovery/grocer/internal/tally"
)

// ToonFormatter implements the Formatter interface using TOON format.
// TOON (Token-Oriented Object Notation) keeps tabular output compact for
// scripts and agents.
type ToonFormatter struct{}

// FormatCounts renders items[N]{name,count}: followed by indented rows.
// Empty tallies produce items[0]{name,count}: with no rows.
func (f *ToonFormatter) FormatCounts(w io.Writer, t *tally.Tally) error {
	entries := t.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "items[0]{name,count}:")
		return err
	}

	objects := make([]toon.Object, len(entries))
	for i, e := range entries {
		objects[i] = toon.NewObject(
			toon.Field{Key: "name", Value: e.Name},
			toon.Field{Key: "count", Value: e.Count},
		)
	}
	return f.write(w, toon.NewObject(toon.Field{Key: "items", Value: objects}))
}

// FormatItems renders items[N]{name}: followed by one row per item.
func (f *ToonFormatter) FormatItems(w io.Writer, items []string) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "items[0]{name}:")
		return err
	}

	objects := make([]toon.Object, len(items))
	for i, item := range items {
		objects[i] = toon.NewObject(toon.Field{Key: "name", Value: item})
	}
	return f.write(w, toon.NewObject(toon.Field{Key: "items", Value: objects}))
}

// FormatItemCount renders the lookup as item/count fields.
func (f *ToonFormatter) FormatItemCount(w io.Writer, name string, count int) error {
	return f.write(w, toon.NewObject(
		toon.Field{Key: "item", Value: name},
		toon.Field{Key: "count", Value: count},
	))
}

// FormatMessage renders a simple message as plain text.
func (f *ToonFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func (f *ToonFormatter) write(w io.Writer, doc toon.Object) error {
	result, err := toon.MarshalString(doc)
	if err != nil {
		return fmt.Errorf("toon marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, result)
	return err
}
