package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leeovery/grocer/internal/config"
)

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List each item with its number of purchases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.format == FormatPretty {
				return a.svc.CountItems(a.inputPath())
			}
			t, err := a.svc.Tally(a.inputPath())
			if err != nil {
				return err
			}
			return a.formatter().FormatCounts(a.Stdout, t)
		},
	}
}

func (a *App) chartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Print a purchase histogram and save it to the output file",
		Long: `Print a purchase histogram and save it to the output file.

The output file is rewritten under an exclusive lock held on a sibling
"<output>.lock" file (frequency.dat.lock by default). The lock file is left
in place after the write and is safe to delete when no grocer is running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.svc.ChartItems(a.inputPath(), a.outputPath())
		},
	}
}

func (a *App) countCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <item>",
		Short: "Show how many times one item was purchased",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			n, err := a.svc.CountOneItem(a.inputPath(), name)
			if err != nil {
				return err
			}
			return a.formatter().FormatItemCount(a.Stdout, name, n)
		},
	}
}

func (a *App) itemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List each distinct item once, in order of first purchase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.svc.GetItems(a.inputPath())
			if err != nil {
				return err
			}
			return a.formatter().FormatItems(a.Stdout, items)
		},
	}
}

func (a *App) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the purchase tally to a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := a.resolvePath(a.cfg.DB)
			written, err := a.svc.Export(cmd.Context(), a.inputPath(), dbPath)
			if err != nil {
				return err
			}
			if a.opts.Quiet {
				return nil
			}
			if !written {
				return a.formatter().FormatMessage(a.Stdout, fmt.Sprintf("Export already up to date: %s", dbPath))
			}
			return a.formatter().FormatMessage(a.Stdout, fmt.Sprintf("Exported %s to %s", a.inputPath(), dbPath))
		},
	}
	cmd.Flags().String("db", "", "SQLite database to write (default tally.db)")
	config.BindFlag(a.v, config.DBKey, cmd.Flags().Lookup("db"))
	return cmd
}
