package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/neo13/cpu"
)

func (a *app) asmCommand() (cmd *cobra.Command) {
	var output string
	var listing bool

	cmd = &cobra.Command{
		Use:   "asm FILE",
		Short: f("assemble a program into an image"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var out io.Writer = cmd.OutOrStdout()
			if len(output) != 0 && output != "-" {
				var ouf *os.File
				ouf, err = os.Create(output)
				if err != nil {
					return
				}
				defer func() {
					cerr := ouf.Close()
					if err == nil {
						err = cerr
					}
				}()
				out = ouf
			}

			return a.assemble(args[0], out, listing)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", f("output file"))
	cmd.Flags().BoolVar(&listing, "listing", false, f("write a YAML listing instead of an image"))

	return
}

// assemble the file at path, writing the image or listing to out.
func (a *app) assemble(path string, out io.Writer, listing bool) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{
		Verbose: a.config.Verbose,
		Logger:  a.Logger.Named("asm"),
	}
	for key, value := range a.newMachine().Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	if listing {
		err = prog.WriteListing(out)
	} else {
		err = prog.WriteImage(out)
	}

	return
}
