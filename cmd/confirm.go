package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"persistence-setup/core/filemanager"
	"persistence-setup/feature/jpa"
)

var yesConfirm bool

// destructive reports whether a previewed run deletes files or removes build entries.
func destructive(preview *jpa.Result) bool {
	for _, c := range preview.Changes {
		if c.Action == filemanager.ActionDeleted {
			return true
		}
	}
	for _, axis := range preview.Axes {
		if axis.Removed > 0 {
			return true
		}
	}
	return false
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "Type 'yes' to apply changes that remove existing configuration: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
