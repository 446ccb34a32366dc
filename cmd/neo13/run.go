package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ezrec/neo13/cpu"
	"github.com/ezrec/neo13/machine"
)

func (a *app) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE...",
		Short: f("run each program to completion"),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			for _, path := range args {
				err = a.runFile(cmd.OutOrStdout(), path)
				if err != nil {
					return
				}
			}
			return
		},
	}
}

// runFile loads, runs and reports on a single program.
func (a *app) runFile(out io.Writer, path string) (err error) {
	m := a.newMachine()

	err = m.LoadFile(path)
	if err != nil {
		return
	}

	result, err := m.Run()
	if err != nil {
		return
	}

	report(out, path, m, result, a.config.RamDump)
	return
}

func report(out io.Writer, path string, m *machine.Machine, result cpu.RunResult, ramDump int) {
	how := f("halted")
	if result.Sentinel {
		how = f("end of program")
	}
	fmt.Fprint(out, f("%v: %v after %d instructions\n", path, how, result.Steps))

	for _, unknown := range result.Unknown {
		fmt.Fprint(out, f("%v: unknown instruction 0x%04x at 0x%04x\n", path, uint16(unknown.Code), unknown.Pc))
	}

	fmt.Fprint(out, m.Cpu.String())

	if ramDump <= 0 {
		return
	}
	words, err := m.DumpMemory(0, min(ramDump, cpu.MEMORY_SIZE))
	if err != nil {
		return
	}
	for n, word := range words {
		if n%8 == 0 {
			fmt.Fprint(out, f("0x%04x:", n))
		}
		fmt.Fprint(out, f(" 0x%04x", word))
		if (n+1)%8 == 0 || n == len(words)-1 {
			fmt.Fprintln(out)
		}
	}
}
