package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leeovery/grocer/internal/tally"
)

// JSONFormatter implements the Formatter interface using JSON output.
// All keys use snake_case. Output is 2-space indented via json.MarshalIndent.
type JSONFormatter struct{}

type jsonEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type jsonCounts struct {
	Total int         `json:"total"`
	Items []jsonEntry `json:"items"`
}

type jsonItems struct {
	Items []string `json:"items"`
}

type jsonMessage struct {
	Message string `json:"message"`
}

// FormatCounts renders the tally with its line total. Empty tallies produce
// "items": [] (never null).
func (f *JSONFormatter) FormatCounts(w io.Writer, t *tally.Tally) error {
	out := jsonCounts{Total: t.Total(), Items: make([]jsonEntry, 0, len(t.Items))}
	for _, e := range t.Entries() {
		out.Items = append(out.Items, jsonEntry{Name: e.Name, Count: e.Count})
	}
	return f.writeJSON(w, out)
}

// FormatItems renders the distinct item catalog.
func (f *JSONFormatter) FormatItems(w io.Writer, items []string) error {
	if items == nil {
		items = []string{}
	}
	return f.writeJSON(w, jsonItems{Items: items})
}

// FormatItemCount renders {"name": ..., "count": ...}.
func (f *JSONFormatter) FormatItemCount(w io.Writer, name string, count int) error {
	return f.writeJSON(w, jsonEntry{Name: name, Count: count})
}

// FormatMessage renders {"message": ...}.
func (f *JSONFormatter) FormatMessage(w io.Writer, msg string) error {
	return f.writeJSON(w, jsonMessage{Message: msg})
}

func (f *JSONFormatter) writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
