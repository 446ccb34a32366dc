// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine connects the neo13 CPU to its program sources.
package machine

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/ezrec/neo13/cpu"
	"github.com/ezrec/neo13/internal"
)

const (
	IMAGE_BASE  = 0    // Address the first image word is loaded to.
	ADDRESS_MAX = 0xff // Highest address reachable by store and jump.
)

var _machine_defines = map[string]string{
	"IMAGE_BASE":  fmt.Sprintf("%v", IMAGE_BASE),
	"ADDRESS_MAX": fmt.Sprintf("0x%x", ADDRESS_MAX),
}

// assemblyExt are the file extensions assembled rather than parsed as images.
var assemblyExt = map[string]bool{
	".s":   true,
	".asm": true,
}

// Machine state. CPU + the program it was loaded from.
type Machine struct {
	Verbose  bool         // If set, enables verbose logging.
	Logger   hclog.Logger // Destination for logs.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the loaded program listing, if assembled.
}

// NewMachine creates a new machine.
func NewMachine() (m *Machine) {
	m = &Machine{
		Logger:  hclog.NewNullLogger(),
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines),
		m.Cpu.Defines(),
	)
}

func (m *Machine) sync() {
	if m.Logger == nil {
		m.Logger = hclog.NewNullLogger()
	}
	m.Cpu.Verbose = m.Verbose
	m.Cpu.Logger = m.Logger.Named("cpu")
}

// LoadFile loads a program file. Assembly sources (.s, .asm) are assembled,
// anything else is read as an image.
func (m *Machine) LoadFile(path string) (err error) {
	m.sync()

	inf, err := os.Open(path)
	if err != nil {
		err = &ErrLoad{Path: path, Err: err}
		return
	}
	defer inf.Close()

	if assemblyExt[filepath.Ext(path)] {
		asm := &cpu.Assembler{
			Verbose: m.Verbose,
			Logger:  m.Logger.Named("asm"),
		}
		for key, value := range m.Defines() {
			asm.Predefine(key, value)
		}
		var prog *cpu.Program
		prog, err = asm.Parse(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
			return
		}
		err = m.LoadProgram(prog)
	} else {
		err = m.LoadImage(inf)
	}
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	m.Logger.Info("loaded", "path", path)
	return
}

// LoadImage loads a program image. The program listing is cleared.
func (m *Machine) LoadImage(r io.Reader) (err error) {
	m.sync()

	err = m.Cpu.LoadImage(r)
	if err != nil {
		return
	}

	m.Program = &cpu.Program{}
	return
}

// LoadProgram loads an assembled program.
func (m *Machine) LoadProgram(prog *cpu.Program) (err error) {
	m.sync()

	err = m.Cpu.Memory.Load(prog.Binary())
	if err != nil {
		return
	}

	m.Program = prog
	return
}

// Reset the machine state, leaving the program listing in place.
func (m *Machine) Reset() {
	m.sync()
	m.Cpu.Reset()
}

// LineNo returns the source line number for the instruction at the PC,
// or 0 if there is no listing for it.
func (m *Machine) LineNo() int {
	dbg := m.Program.Debug(m.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Step executes the instruction at the PC.
// Reports OUTCOME_HALTED without executing if the PC holds the sentinel.
func (m *Machine) Step() (outcome cpu.Outcome, err error) {
	m.sync()

	lineno := m.LineNo()
	outcome, err = m.Cpu.Tick()
	if errors.Is(err, cpu.ErrEndOfProgram) {
		outcome = cpu.OUTCOME_HALTED
		err = nil
		return
	}
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	return
}

// Run the loaded program to completion from address 0.
func (m *Machine) Run() (result cpu.RunResult, err error) {
	m.sync()

	result, err = m.Cpu.Run()
	if err != nil {
		lineno := m.LineNo()
		m.Logger.Error("run failed", "line", lineno, "steps", result.Steps, "error", err)
		err = &ErrRuntime{LineNo: lineno, Err: err}
		return
	}

	m.Logger.Info("run complete", "outcome", result.Outcome, "sentinel", result.Sentinel, "steps", result.Steps, "unknown", len(result.Unknown))

	return
}
