package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// Outcome is the result of executing a single instruction.
type Outcome int

//go:generate go tool stringer -linecomment -type=Outcome
const (
	OUTCOME_CONTINUE = Outcome(0) // continue
	OUTCOME_UNKNOWN  = Outcome(1) // unknown
	OUTCOME_HALTED   = Outcome(2) // halted
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"WORD_MASK":      fmt.Sprintf("0x%x", WORD_MASK),
	"SENTINEL":       fmt.Sprintf("0x%x", SENTINEL),
}

// RunResult summarizes a run to completion.
type RunResult struct {
	Outcome  Outcome     // Terminal outcome.
	Sentinel bool        // Set if the end-of-program sentinel stopped the run.
	Steps    int         // Instructions executed.
	Unknown  []ErrOpcode // Unknown opcodes skipped during the run.
}

// Cpu is the simulation context for the neo13 processor.
type Cpu struct {
	Verbose bool         // Set to enable per-instruction tracing.
	Logger  hclog.Logger // Destination for traces and diagnostics.

	Pc       uint16    // Address of the next instruction.
	Register Registers // Register bank.
	Memory   Memory    // Memory bank.

	StepLimit int // If non-zero, the most instructions a Run may execute.
	Ticks     int // Instructions executed since Reset.
}

// NewCpu creates a new CPU with cleared memory and registers.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Logger: hclog.NewNullLogger(),
	}

	return
}

func (cpu *Cpu) logger() hclog.Logger {
	if cpu.Logger == nil {
		cpu.Logger = hclog.NewNullLogger()
	}
	return cpu.Logger
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: 0x%04x\n", "pc", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: 0x%04x\n", fmt.Sprintf("r%d", n), val)
	}

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Sets the PC to 0.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		cpu.logger().Debug("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Pc = 0
	cpu.Ticks = 0
}

// DumpRegisters returns a copy of the register bank.
func (cpu *Cpu) DumpRegisters() [REGISTER_COUNT]uint16 {
	return cpu.Register
}

// DumpMemory returns a copy of count words of memory starting at start.
func (cpu *Cpu) DumpMemory(start, count int) (words []uint16, err error) {
	if start < 0 || start >= len(cpu.Memory) {
		err = ErrAddress(start)
		return
	}
	if count < 0 || start+count > len(cpu.Memory) {
		err = ErrAddress(start + count - 1)
		return
	}

	words = slices.Clone(cpu.Memory[start : start+count])
	return
}

// Fetch fetches the instruction at the PC.
// Returns ErrEndOfProgram if the PC holds the sentinel.
func (cpu *Cpu) Fetch() (code Code, err error) {
	word, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	if word == SENTINEL {
		err = ErrEndOfProgram
		return
	}

	code = Code(word)
	return
}

// Tick fetches and executes a single instruction.
func (cpu *Cpu) Tick() (outcome Outcome, err error) {
	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	return cpu.Execute(code)
}

// Execute executes a single decoded instruction as if fetched from the PC.
// On error, the CPU state is unchanged.
func (cpu *Cpu) Execute(code Code) (outcome Outcome, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: cpu.Pc, Code: code}, err)
		}
	}()

	if cpu.Verbose {
		cpu.logger().Debug("execute", "pc", fmt.Sprintf("0x%04x", cpu.Pc), "code", code.String())
	}

	op, reg1, reg2, value := code.Decode()

	next_pc := cpu.Pc + 1

	switch op {
	case OP_LOAD:
		err = cpu.Register.Set(reg1, uint16(value))
	case OP_ADD:
		var a, b uint16
		a, err = cpu.Register.Get(reg1)
		if err != nil {
			return
		}
		b, err = cpu.Register.Get(reg2)
		if err != nil {
			return
		}
		err = cpu.Register.Set(reg1, a+b)
	case OP_STORE:
		var val uint16
		val, err = cpu.Register.Get(reg1)
		if err != nil {
			return
		}
		err = cpu.Memory.Write(uint16(value), val)
	case OP_JUMP:
		// Lands exactly on the target; no increment follows.
		next_pc = uint16(value)
	case OP_HALT:
		cpu.Ticks++
		outcome = OUTCOME_HALTED
		return
	default:
		cpu.logger().Warn("unknown opcode", "pc", fmt.Sprintf("0x%04x", cpu.Pc), "code", fmt.Sprintf("0x%04x", uint16(code)))
		outcome = OUTCOME_UNKNOWN
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// Run resets the PC to 0 and executes instructions until a HALT opcode,
// the end-of-program sentinel, an error, or the step limit.
func (cpu *Cpu) Run() (result RunResult, err error) {
	cpu.Pc = 0

	for {
		if cpu.StepLimit > 0 && result.Steps >= cpu.StepLimit {
			err = ErrStepLimit
			return
		}

		pc := cpu.Pc
		var outcome Outcome
		outcome, err = cpu.Tick()
		if errors.Is(err, ErrEndOfProgram) {
			err = nil
			result.Outcome = OUTCOME_HALTED
			result.Sentinel = true
			return
		}
		if err != nil {
			return
		}

		result.Steps++

		switch outcome {
		case OUTCOME_HALTED:
			result.Outcome = outcome
			return
		case OUTCOME_UNKNOWN:
			result.Unknown = append(result.Unknown, ErrOpcode{Pc: pc, Code: Code(cpu.Memory[pc])})
		}
	}
}
