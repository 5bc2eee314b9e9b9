// Package cli implements the grocer command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leeovery/grocer/internal/config"
	"github.com/leeovery/grocer/internal/grocer"
)

// App is the grocer CLI application. Zero-value writers fall back to the
// process streams.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory used for relative paths and config lookup.
	Dir string

	opts   GlobalOpts
	v      *viper.Viper
	cfg    *config.Config
	log    *logrus.Logger
	svc    *grocer.Service
	format Format
}

// GlobalOpts holds parsed global flags.
type GlobalOpts struct {
	ConfigFile string
	Quiet      bool
	Verbose    bool
	Toon       bool
	Pretty     bool
	JSON       bool
}

// Run parses arguments and dispatches to the appropriate subcommand.
// args[0] is the program name. Returns the exit code (0 for success, 1 for error).
func (a *App) Run(args []string) int {
	a.setDefaults()

	root := a.rootCommand()
	root.SetArgs(args[1:])

	if err := root.Execute(); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func (a *App) setDefaults() {
	if a.Stdin == nil {
		a.Stdin = os.Stdin
	}
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.Stderr == nil {
		a.Stderr = os.Stderr
	}
	if a.Dir == "" {
		a.Dir = "."
	}
	a.v = config.New()
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "grocer",
		Short:         "Tally purchased grocery items from a one-item-per-line list",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare()
		},
	}
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	pf := root.PersistentFlags()
	pf.StringP("input", "i", "", "purchase list to read (one item per line)")
	pf.StringP("output", "o", "", "histogram file written by chart")
	pf.StringVar(&a.opts.ConfigFile, "config", "", "config file (default .grocer.yaml in the working directory)")
	pf.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log debug detail to stderr")
	pf.BoolVar(&a.opts.Toon, "toon", false, "force TOON output format")
	pf.BoolVar(&a.opts.Pretty, "pretty", false, "force human-readable output format")
	pf.BoolVar(&a.opts.JSON, "json", false, "force JSON output format")

	config.BindFlag(a.v, config.InputKey, pf.Lookup("input"))
	config.BindFlag(a.v, config.OutputKey, pf.Lookup("output"))

	root.AddCommand(
		a.listCommand(),
		a.chartCommand(),
		a.countCommand(),
		a.itemsCommand(),
		a.exportCommand(),
		a.menuCommand(),
	)
	return root
}

// prepare loads configuration and builds the logger and service shared by
// every subcommand.
func (a *App) prepare() error {
	format, err := ResolveFormat(a.opts.Toon, a.opts.Pretty, a.opts.JSON)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(a.v, a.resolvePath(a.opts.ConfigFile), a.Dir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := newLogger(a.Stderr, cfg.Log, a.opts)
	if err != nil {
		return err
	}
	a.log = log

	a.svc = grocer.New(
		grocer.WithConsole(a.Stdout),
		grocer.WithLogger(log),
		grocer.WithLockTimeout(cfg.LockTimeout),
	)
	return nil
}

// resolvePath makes a relative path relative to the App's working directory.
func (a *App) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.Dir, p)
}

func (a *App) inputPath() string {
	return a.resolvePath(a.cfg.Input)
}

func (a *App) outputPath() string {
	return a.resolvePath(a.cfg.Output)
}

func (a *App) formatter() Formatter {
	return a.format.Formatter()
}
