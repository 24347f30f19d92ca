package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// newTable creates a table writer. Output that is not a terminal, or --plain,
// gets ASCII borders.
func newTable(w io.Writer, plain bool) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Options(tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
	}))
	if plain || !isTerminal(w) {
		table.Options(tablewriter.WithSymbols(&tw.SymbolASCII{}))
	}
	return table
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
