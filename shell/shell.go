// Package shell provides the interactive neo13 command shell.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/ezrec/neo13/cpu"
	"github.com/ezrec/neo13/machine"
	"github.com/ezrec/neo13/translate"
)

var f = translate.From

const (
	RAM_DUMP_COUNT = 16 // Default words shown by 'ram'.
	RAM_DUMP_ROW   = 8  // Words per line of a 'ram' dump.
)

// command describes one shell command.
type command struct {
	name  string
	args  string
	help  string
	apply func(sh *Shell, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"run", "FILE", "load FILE and run it to completion", (*Shell).doRun},
		{"load", "FILE", "load FILE without running it", (*Shell).doLoad},
		{"step", "", "execute the instruction at the PC", (*Shell).doStep},
		{"regs", "", "print the registers", (*Shell).doRegs},
		{"ram", "[START [COUNT]]", "print memory", (*Shell).doRam},
		{"reset", "", "clear registers and memory", (*Shell).doReset},
		{"history", "", "print the command history", (*Shell).doHistory},
		{"help", "", "print this help", (*Shell).doHelp},
		{"exit", "", "leave the shell", nil},
	}
}

// aliases map alternate spellings to commands.
var aliases = map[string]string{
	"print regs": "regs",
	"print ram":  "ram",
	"quit":       "exit",
}

// Shell is an interactive front end to a machine.
type Shell struct {
	Machine *machine.Machine
	Output  io.Writer
	RamDump int // Words shown by 'ram' with no count.

	history []string
}

// NewShell creates a shell for a machine, writing to out.
func NewShell(m *machine.Machine, out io.Writer) *Shell {
	return &Shell{
		Machine: m,
		Output:  out,
		RamDump: RAM_DUMP_COUNT,
	}
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprint(sh.Output, f(format, args...))
}

// Execute runs a single command line. Returns true if the shell should exit.
func (sh *Shell) Execute(line string) (exit bool) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	sh.history = append(sh.history, line)

	words := strings.Fields(line)
	if len(words) > 1 {
		name, ok := aliases[words[0]+" "+words[1]]
		if ok {
			words = append([]string{name}, words[2:]...)
		}
	}
	name, ok := aliases[words[0]]
	if ok {
		words[0] = name
	}

	for _, cmd := range commands {
		if cmd.name != words[0] {
			continue
		}
		if cmd.apply == nil {
			return true
		}
		err := cmd.apply(sh, words[1:])
		if err != nil {
			sh.printf("Error: %v\n", err)
		}
		return
	}

	sh.printf("Error: %v\n", ErrUnknownCommand(words[0]))
	return
}

// Complete suggests commands for the word before the cursor.
func (sh *Shell) Complete(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return []prompt.Suggest{}
	}

	suggests := make([]prompt.Suggest, 0, len(commands))
	for _, cmd := range commands {
		suggests = append(suggests, prompt.Suggest{
			Text:        cmd.name,
			Description: cmd.help,
		})
	}

	return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
}

// Run the interactive prompt until 'exit'.
func (sh *Shell) Run() {
	var exiting bool

	p := prompt.New(
		func(in string) {
			exiting = sh.Execute(in)
		},
		sh.Complete,
		prompt.OptionPrefix("neo13$ "),
		prompt.OptionTitle("neo13"),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && exiting
		}),
	)

	p.Run()
}

func wantArgs(args []string, min, max int) error {
	if len(args) < min {
		return ErrArgsMissing
	}
	if len(args) > max {
		return ErrArgsExtra
	}
	return nil
}

func (sh *Shell) doLoad(args []string) (err error) {
	err = wantArgs(args, 1, 1)
	if err != nil {
		return
	}

	err = sh.Machine.LoadFile(args[0])
	if err != nil {
		return
	}

	sh.printf("Program '%v' loaded successfully.\n", args[0])
	return
}

func (sh *Shell) doRun(args []string) (err error) {
	err = sh.doLoad(args)
	if err != nil {
		return
	}

	result, err := sh.Machine.Run()
	for _, unknown := range result.Unknown {
		sh.printf("Unknown instruction: 0x%04X at 0x%04X\n", uint16(unknown.Code), unknown.Pc)
	}
	if err != nil {
		return
	}

	if result.Sentinel {
		sh.printf("END: %d instructions executed.\n", result.Steps)
	} else {
		sh.printf("HALT: CPU Stopped after %d instructions.\n", result.Steps)
	}
	return
}

func (sh *Shell) doStep(args []string) (err error) {
	err = wantArgs(args, 0, 0)
	if err != nil {
		return
	}

	pc := sh.Machine.Cpu.Pc
	word, err := sh.Machine.Cpu.Memory.Read(pc)
	if err != nil {
		return
	}

	outcome, err := sh.Machine.Step()
	if err != nil {
		return
	}

	sh.printf("0x%04X: %v (%v)\n", pc, cpu.Code(word), outcome)
	return
}

func (sh *Shell) doRegs(args []string) (err error) {
	err = wantArgs(args, 0, 0)
	if err != nil {
		return
	}

	sh.printf("Registers:\n")
	for n, value := range sh.Machine.DumpRegisters() {
		sh.printf("R%d: 0x%04X\n", n, value)
	}
	sh.printf("PC: 0x%04X\n", sh.Machine.Cpu.Pc)
	return
}

func (sh *Shell) doRam(args []string) (err error) {
	err = wantArgs(args, 0, 2)
	if err != nil {
		return
	}

	start := 0
	count := sh.RamDump
	if count <= 0 {
		count = RAM_DUMP_COUNT
	}

	nums := []*int{&start, &count}
	for n, arg := range args {
		var value int64
		value, err = strconv.ParseInt(arg, 0, 32)
		if err != nil {
			err = errors.Join(cpu.ErrParseNumber(arg), err)
			return
		}
		*nums[n] = int(value)
	}

	words, err := sh.Machine.DumpMemory(start, count)
	if err != nil {
		return
	}

	sh.printf("RAM Dump (0x%04X, %d words):\n", start, count)
	for n, word := range words {
		if n%RAM_DUMP_ROW == 0 {
			sh.printf("0x%04X:", start+n)
		}
		sh.printf(" 0x%04X", word)
		if (n+1)%RAM_DUMP_ROW == 0 || n == len(words)-1 {
			sh.printf("\n")
		}
	}
	return
}

func (sh *Shell) doReset(args []string) (err error) {
	err = wantArgs(args, 0, 0)
	if err != nil {
		return
	}

	sh.Machine.Reset()
	sh.printf("Machine reset.\n")
	return
}

func (sh *Shell) doHistory(args []string) (err error) {
	for n, line := range sh.history {
		sh.printf("%d: %v\n", n+1, line)
	}
	return
}

func (sh *Shell) doHelp(args []string) (err error) {
	for _, cmd := range commands {
		sh.printf("  %-8v %-16v %v\n", cmd.name, cmd.args, cmd.help)
	}
	return
}
