package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ezrec/neo13/shell"
)

func (a *app) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [FILE]",
		Short: f("interactive shell"),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sh, err := a.newShell(cmd.OutOrStdout(), args)
			if err != nil {
				return
			}

			sh.Run()
			return
		},
	}
}

// newShell creates a shell, with the program at args[0] loaded if given.
func (a *app) newShell(out io.Writer, args []string) (sh *shell.Shell, err error) {
	sh = shell.NewShell(a.newMachine(), out)
	sh.RamDump = a.config.RamDump

	if len(args) == 1 {
		err = sh.Machine.LoadFile(args[0])
	}

	return
}
