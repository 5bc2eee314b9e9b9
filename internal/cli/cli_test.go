package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leeovery/grocer/internal/testutil"
)

const defaultInput = "CS210_Project_Three_Input_File.txt"

// runApp runs the CLI in dir with the given stdin and returns stdout, stderr
// and the exit code.
func runApp(t *testing.T, dir, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := &App{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Dir:    dir,
	}
	code := app.Run(append([]string{"grocer"}, args...))
	return stdout.String(), stderr.String(), code
}

// setupInput writes lines to the default input file in a fresh directory.
func setupInput(t *testing.T, lines ...string) string {
	t.Helper()
	src := testutil.WriteSource(t, defaultInput, lines...)
	return filepath.Dir(src)
}

func TestList(t *testing.T) {
	t.Run("it prints the count list by default", func(t *testing.T) {
		dir := setupInput(t, "Apples", "Banana", "Apples", "Apples", "Banana")

		stdout, stderr, code := runApp(t, dir, "", "list")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}

		expected := "Apples.......................3\nBanana.......................2\n"
		if stdout != expected {
			t.Errorf("expected %q, got %q", expected, stdout)
		}
	})

	t.Run("it renders counts as JSON", func(t *testing.T) {
		dir := setupInput(t, "Apples", "Banana", "Apples")

		stdout, stderr, code := runApp(t, dir, "", "--json", "list")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}

		var got jsonCounts
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", stdout, err)
		}
		if got.Total != 3 || len(got.Items) != 2 || got.Items[0] != (jsonEntry{Name: "Apples", Count: 2}) {
			t.Errorf("unexpected JSON result %+v", got)
		}
	})

	t.Run("it renders counts as TOON", func(t *testing.T) {
		dir := setupInput(t, "Apples", "Banana", "Apples")

		stdout, stderr, code := runApp(t, dir, "", "--toon", "list")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}

		if !strings.HasPrefix(stdout, "items[2]{name,count}:") {
			t.Errorf("expected TOON header, got %q", stdout)
		}
		if !strings.Contains(stdout, "Apples,2") || !strings.Contains(stdout, "Banana,1") {
			t.Errorf("expected TOON rows, got %q", stdout)
		}
	})

	t.Run("it reads the input named by --input", func(t *testing.T) {
		src := testutil.WriteSource(t, "other.txt", "Kiwi")

		stdout, _, code := runApp(t, t.TempDir(), "", "--input", src, "list")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.HasPrefix(stdout, "Kiwi...") {
			t.Errorf("expected Kiwi row, got %q", stdout)
		}
	})

	t.Run("it fails when the input is missing", func(t *testing.T) {
		stdout, stderr, code := runApp(t, t.TempDir(), "", "list")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if stdout != "" {
			t.Errorf("expected no stdout, got %q", stdout)
		}
		if !strings.HasPrefix(stderr, "Error: ") {
			t.Errorf("stderr = %q, want prefix 'Error: '", stderr)
		}
	})

	t.Run("it rejects conflicting format flags", func(t *testing.T) {
		dir := setupInput(t, "Apples")

		_, stderr, code := runApp(t, dir, "", "--json", "--toon", "list")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr, "multiple format flags") {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})
}

func TestChart(t *testing.T) {
	t.Run("it prints the histogram and writes the output file", func(t *testing.T) {
		dir := setupInput(t, "Apples", "Banana", "Apples", "Apples", "Banana")

		stdout, stderr, code := runApp(t, dir, "", "chart")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}

		expected := "Apples| ***\nBanana| **\n"
		if stdout != expected {
			t.Errorf("expected %q, got %q", expected, stdout)
		}
		if got := testutil.ReadFile(t, filepath.Join(dir, "frequency.dat")); got != expected {
			t.Errorf("expected file %q, got %q", expected, got)
		}
	})

	t.Run("it writes to the path given by --output", func(t *testing.T) {
		dir := setupInput(t, "Apples")

		_, stderr, code := runApp(t, dir, "", "chart", "-o", "chart.txt")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if got := testutil.ReadFile(t, filepath.Join(dir, "chart.txt")); got != "Apples| *\n" {
			t.Errorf("unexpected chart file %q", got)
		}
	})

	t.Run("it documents the lock file left beside the output", func(t *testing.T) {
		stdout, _, code := runApp(t, t.TempDir(), "", "chart", "--help")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(stdout, "frequency.dat.lock") {
			t.Errorf("expected help to mention the lock file, got %q", stdout)
		}
	})

	t.Run("it leaves the lock file beside the output", func(t *testing.T) {
		dir := setupInput(t, "Apples")

		if _, stderr, code := runApp(t, dir, "", "chart"); code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, "frequency.dat.lock")); err != nil {
			t.Errorf("expected frequency.dat.lock: %v", err)
		}
	})

	t.Run("it fails on an empty input without writing", func(t *testing.T) {
		dir := setupInput(t)

		stdout, stderr, code := runApp(t, dir, "", "chart")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if stdout != "" {
			t.Errorf("expected no stdout, got %q", stdout)
		}
		if !strings.Contains(stderr, "no items in source") {
			t.Errorf("unexpected stderr %q", stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, "frequency.dat")); !os.IsNotExist(err) {
			t.Error("expected no frequency.dat")
		}
	})
}

func TestCount(t *testing.T) {
	dir := setupInput(t, testutil.SampleLines...)

	t.Run("it prints a plural purchase message", func(t *testing.T) {
		stdout, _, code := runApp(t, dir, "", "count", "Apples")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if stdout != "Apples: 4 purchases this day.\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("it prints a singular purchase message", func(t *testing.T) {
		stdout, _, _ := runApp(t, dir, "", "count", "Zucchini")
		if stdout != "Zucchini: 1 purchase this day.\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("it reports items that were not purchased", func(t *testing.T) {
		stdout, _, code := runApp(t, dir, "", "count", "Kiwi")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if stdout != "No Kiwi purchased this day.\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("it joins multi-word names", func(t *testing.T) {
		dir := setupInput(t, "Green Beans", "Green Beans")
		stdout, _, _ := runApp(t, dir, "", "count", "Green", "Beans")
		if stdout != "Green Beans: 2 purchases this day.\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("it renders JSON", func(t *testing.T) {
		stdout, _, _ := runApp(t, dir, "", "--json", "count", "Peas")
		var got jsonEntry
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", stdout, err)
		}
		if got != (jsonEntry{Name: "Peas", Count: 2}) {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("it requires an item argument", func(t *testing.T) {
		_, _, code := runApp(t, dir, "", "count")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
	})
}

func TestItems(t *testing.T) {
	t.Run("it lists distinct items in first-seen order", func(t *testing.T) {
		dir := setupInput(t, testutil.SampleLines...)

		stdout, _, code := runApp(t, dir, "", "items")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if stdout != "Apples\nCranberries\nPeas\nZucchini\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("it renders an empty JSON list for an empty input", func(t *testing.T) {
		dir := setupInput(t)

		stdout, _, code := runApp(t, dir, "", "--json", "items")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(stdout, `"items": []`) {
			t.Errorf("expected empty items array, got %q", stdout)
		}
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("it exports and then reports the snapshot is current", func(t *testing.T) {
		dir := setupInput(t, "Apples", "Banana")

		stdout, stderr, code := runApp(t, dir, "", "export", "--db", "snap.db")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if !strings.HasPrefix(stdout, "Exported ") {
			t.Errorf("unexpected output %q", stdout)
		}
		if _, err := os.Stat(filepath.Join(dir, "snap.db")); err != nil {
			t.Errorf("expected snap.db: %v", err)
		}

		stdout, _, _ = runApp(t, dir, "", "export", "--db", "snap.db")
		if !strings.HasPrefix(stdout, "Export already up to date") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("it prints nothing with --quiet", func(t *testing.T) {
		dir := setupInput(t, "Apples")

		stdout, _, code := runApp(t, dir, "", "-q", "export")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if stdout != "" {
			t.Errorf("expected no output, got %q", stdout)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Run("it reads input and output names from .grocer.yaml", func(t *testing.T) {
		src := testutil.WriteSource(t, "today.txt", "Kale", "Kale")
		dir := filepath.Dir(src)
		if err := os.WriteFile(filepath.Join(dir, ".grocer.yaml"), []byte("input: today.txt\noutput: kale.dat\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, stderr, code := runApp(t, dir, "", "chart")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if got := testutil.ReadFile(t, filepath.Join(dir, "kale.dat")); got != "Kale| **\n" {
			t.Errorf("unexpected chart %q", got)
		}
	})

	t.Run("it logs debug detail to stderr with --verbose", func(t *testing.T) {
		dir := setupInput(t, "Apples")

		stdout, stderr, code := runApp(t, dir, "", "-v", "list")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(stderr, "source tallied") {
			t.Errorf("expected debug log on stderr, got %q", stderr)
		}
		if strings.Contains(stdout, "source tallied") {
			t.Error("expected logs to stay off stdout")
		}
	})

	t.Run("it rejects an invalid log level", func(t *testing.T) {
		dir := setupInput(t, "Apples")
		t.Setenv("GROCER_LOG_LEVEL", "chatty")

		_, stderr, code := runApp(t, dir, "", "list")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr, "invalid log level") {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})
}
