package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

var menuOptions = []string{
	"List today's item purchases",
	"Find an item's number of purchases today",
	"Chart today's purchases",
	"Exit",
}

const unrecognized = "Didn't recognize that input. Try again."

func (a *App) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive purchase menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenu(bufio.NewScanner(a.Stdin))
		},
	}
}

// runMenu loops until the exit option is chosen or input ends. Operation
// errors are reported and the loop continues.
func (a *App) runMenu(in *bufio.Scanner) error {
	for {
		a.printMenu()
		fmt.Fprint(a.Stdout, "Enter your selection as a number: ")

		if !in.Scan() {
			fmt.Fprintln(a.Stdout)
			return in.Err()
		}

		var err error
		switch strings.TrimSpace(in.Text()) {
		case "1":
			err = a.svc.CountItems(a.inputPath())
		case "2":
			err = a.menuSearch(in)
		case "3":
			err = a.svc.ChartItems(a.inputPath(), a.outputPath())
		case "4":
			fmt.Fprintln(a.Stdout, "Exiting...")
			fmt.Fprintln(a.Stdout, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(a.Stdout, unrecognized)
		}

		if err != nil {
			a.log.WithError(err).Debug("menu option failed")
			fmt.Fprintf(a.Stderr, "Error: %s\n", err)
		}
	}
}

func (a *App) printMenu() {
	for i, opt := range menuOptions {
		fmt.Fprintf(a.Stdout, "(%d) %s\n", i+1, opt)
	}
}

// menuSearch lists the items, reads a selection by number or name and
// prints its purchase count.
func (a *App) menuSearch(in *bufio.Scanner) error {
	items, err := a.svc.GetItems(a.inputPath())
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Stdout, "Select an item:")
	for i, item := range items {
		fmt.Fprintf(a.Stdout, "%d: %s\n", i+1, item)
	}
	fmt.Fprint(a.Stdout, "Type the item's number or name: ")

	if !in.Scan() {
		fmt.Fprintln(a.Stdout)
		return in.Err()
	}
	choice := strings.TrimSpace(in.Text())
	if choice == "" {
		fmt.Fprintln(a.Stdout, unrecognized)
		return nil
	}

	name, ok := selectItem(items, choice)
	if !ok {
		fmt.Fprintln(a.Stdout, "Didn't find that item.")
		return nil
	}

	n, err := a.svc.CountOneItem(a.inputPath(), name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.Stdout, purchaseMessage(name, n)+"\n")
	return err
}

// selectItem resolves a choice starting with a digit as a 1-based position
// in items; anything else is taken as the item name itself.
func selectItem(items []string, choice string) (string, bool) {
	if !unicode.IsDigit(rune(choice[0])) {
		return choice, true
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(items) {
		return "", false
	}
	return items[n-1], true
}
