package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLoaded(words ...uint16) (cpu *Cpu) {
	cpu = NewCpu()
	err := cpu.Memory.Load(words)
	if err != nil {
		panic(err)
	}
	return
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	for reg := range REGISTER_COUNT {
		for value := range 256 {
			cpu := NewCpu()
			cpu.Memory[0x40] = 0x1234
			before := cpu.Register

			outcome, err := cpu.Execute(MakeCodeLoad(reg, uint8(value)))
			assert.NoError(err)
			assert.Equal(OUTCOME_CONTINUE, outcome)
			assert.Equal(uint16(1), cpu.Pc)

			before[reg] = uint16(value)
			assert.Equal(before, cpu.Register)
			assert.Equal(uint16(0x1234), cpu.Memory[0x40])
		}
	}
}

func TestAdd(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		a, b   uint16
		result uint16
	}){
		{"small", 5, 5, 10},
		{"zero", 0, 0x123, 0x123},
		{"top", 0x1000, 0x0fff, 0x1fff},
		{"wrap", 0x1fff, 1, 0},
		{"wrap_large", 0x1800, 0x1801, 0x1001},
	}

	for _, entry := range table {
		for dst := range REGISTER_COUNT {
			for src := range REGISTER_COUNT {
				if src == dst {
					continue
				}
				cpu := NewCpu()
				cpu.Register[dst] = entry.a
				cpu.Register[src] = entry.b

				outcome, err := cpu.Execute(MakeCodeAdd(dst, src))
				assert.NoError(err, entry.name)
				assert.Equal(OUTCOME_CONTINUE, outcome, entry.name)
				assert.Equal(entry.result, cpu.Register[dst], entry.name)
				assert.Equal(entry.b, cpu.Register[src], entry.name)
				assert.Equal(uint16(1), cpu.Pc, entry.name)
			}
		}
	}
}

func TestAdd_Self(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[3] = 0x21

	_, err := cpu.Execute(MakeCodeAdd(3, 3))
	assert.NoError(err)
	assert.Equal(uint16(0x42), cpu.Register[3])
}

func TestStore(t *testing.T) {
	assert := assert.New(t)

	for reg := range REGISTER_COUNT {
		for addr := range 256 {
			cpu := NewCpu()
			for n := range REGISTER_COUNT {
				cpu.Register[n] = uint16(0x100 + n)
			}
			before := cpu.Register

			_, err := cpu.Execute(MakeCodeStore(reg, uint8(addr)))
			assert.NoError(err)
			assert.Equal(uint16(0x100+reg), cpu.Memory[addr])
			assert.Equal(before, cpu.Register)
			assert.Equal(uint16(1), cpu.Pc)
		}
	}
}

func TestJump(t *testing.T) {
	assert := assert.New(t)

	for addr := range 256 {
		cpu := NewCpu()
		cpu.Pc = 0x80

		outcome, err := cpu.Execute(MakeCodeJump(uint8(addr)))
		assert.NoError(err)
		assert.Equal(OUTCOME_CONTINUE, outcome)
		assert.Equal(uint16(addr), cpu.Pc)
	}
}

func TestHalt(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[2] = 7
	cpu.Memory[9] = 9
	cpu.Pc = 4

	outcome, err := cpu.Execute(MakeCodeHalt())
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, outcome)
	assert.Equal(uint16(4), cpu.Pc)
	assert.Equal(uint16(7), cpu.Register[2])
	assert.Equal(uint16(9), cpu.Memory[9])
}

func TestUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []uint16{0x0, 0x5, 0x6, 0x7, 0x8, 0x9, 0xa, 0xb, 0xc, 0xd, 0xe} {
		cpu := NewCpu()
		code := Code(op<<12 | 0x0123)

		outcome, err := cpu.Execute(code)
		assert.NoError(err)
		assert.Equal(OUTCOME_UNKNOWN, outcome)
		assert.Equal(uint16(1), cpu.Pc)
		assert.Equal(Registers{}, cpu.Register)
	}
}

func TestRegisterOutOfRange(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		reg  int
	}){
		{"load_reg1", 0x1905, 9},
		{"add_reg1", 0x2810, 8},
		{"add_reg2", 0x20f0, 15},
		{"store_reg1", 0x3a02, 10},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Pc = 3

		outcome, err := cpu.Execute(entry.code)
		assert.ErrorIs(err, ErrOutOfRange, entry.name)
		assert.ErrorIs(err, ErrRegister(entry.reg), entry.name)
		assert.ErrorIs(err, ErrOpcode{}, entry.name)
		assert.Equal(OUTCOME_CONTINUE, outcome, entry.name)
		assert.Equal(uint16(3), cpu.Pc, entry.name)
		assert.Equal(Registers{}, cpu.Register, entry.name)
		assert.Equal(uint16(0), cpu.Memory[2], entry.name)
	}
}

func TestRun_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.LoadImage(strings.NewReader("1005 1105 2001 3002 FFFF"))
	assert.NoError(err)

	result, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, result.Outcome)
	assert.True(result.Sentinel)
	assert.Equal(4, result.Steps)
	assert.Empty(result.Unknown)
	assert.Equal(uint16(0x0a), cpu.Register[0])
	assert.Equal(uint16(0x05), cpu.Register[1])
	assert.Equal(uint16(0x0a), cpu.Memory[2])
}

func TestRun_SentinelOnly(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(SENTINEL)

	result, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, result.Outcome)
	assert.True(result.Sentinel)
	assert.Equal(0, result.Steps)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(uint16(0), cpu.Pc)
}

func TestRun_Halt(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(
		uint16(MakeCodeLoad(1, 0x33)),
		uint16(MakeCodeHalt()),
		uint16(MakeCodeLoad(1, 0x44)),
		SENTINEL,
	)

	result, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, result.Outcome)
	assert.False(result.Sentinel)
	assert.Equal(2, result.Steps)
	assert.Equal(uint16(0x33), cpu.Register[1])
	assert.Equal(uint16(1), cpu.Pc)
}

func TestRun_Unknown(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(
		0x5123,
		uint16(MakeCodeLoad(0, 1)),
		0x0000,
		SENTINEL,
	)

	result, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(OUTCOME_HALTED, result.Outcome)
	assert.True(result.Sentinel)
	assert.Equal(3, result.Steps)
	assert.Equal([]ErrOpcode{
		{Pc: 0, Code: 0x5123},
		{Pc: 2, Code: 0x0000},
	}, result.Unknown)
	assert.Equal(uint16(1), cpu.Register[0])
}

func TestRun_Jump(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(
		uint16(MakeCodeJump(3)),
		uint16(MakeCodeLoad(0, 0x11)), // skipped
		SENTINEL,
		uint16(MakeCodeLoad(1, 0x22)),
		uint16(MakeCodeJump(2)),
	)

	result, err := cpu.Run()
	assert.NoError(err)
	assert.True(result.Sentinel)
	assert.Equal(3, result.Steps)
	assert.Equal(uint16(0), cpu.Register[0])
	assert.Equal(uint16(0x22), cpu.Register[1])
	assert.Equal(uint16(2), cpu.Pc)
}

func TestRun_ResetsPc(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(
		uint16(MakeCodeLoad(0, 1)),
		uint16(MakeCodeAdd(1, 0)),
		SENTINEL,
	)

	_, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(uint16(2), cpu.Pc)

	result, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(2, result.Steps)
	assert.Equal(uint16(2), cpu.Register[1])
}

func TestRun_StepLimit(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(uint16(MakeCodeJump(0)))
	cpu.StepLimit = 100

	result, err := cpu.Run()
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(100, result.Steps)
	assert.Equal(OUTCOME_CONTINUE, result.Outcome)
}

func TestRun_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(
		uint16(MakeCodeLoad(0, 1)),
		0x1c05, // load r12
		uint16(MakeCodeLoad(1, 1)),
		SENTINEL,
	)

	result, err := cpu.Run()
	assert.ErrorIs(err, ErrOutOfRange)
	assert.ErrorIs(err, ErrRegister(12))

	var eo ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(uint16(1), eo.Pc)
	assert.Equal(Code(0x1c05), eo.Code)

	assert.Equal(1, result.Steps)
	assert.Equal(uint16(1), cpu.Pc)
	assert.Equal(uint16(0), cpu.Register[1])
}

func TestRun_PastMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for n := range cpu.Memory {
		cpu.Memory[n] = 0x0000 // unknown opcode
	}

	result, err := cpu.Run()
	assert.ErrorIs(err, ErrOutOfRange)
	assert.ErrorIs(err, ErrAddress(MEMORY_SIZE))
	assert.Equal(MEMORY_SIZE, result.Steps)
	assert.Len(result.Unknown, MEMORY_SIZE)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(uint16(MakeCodeLoad(0, 1)), SENTINEL)
	_, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(1, cpu.Ticks)

	cpu.Reset()
	assert.Equal(Registers{}, cpu.Register)
	assert.Equal(Memory{}, cpu.Memory)
	assert.Equal(uint16(0), cpu.Pc)
	assert.Equal(0, cpu.Ticks)
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	cpu := newLoaded(1, 2, 3, 4)
	cpu.Register[7] = 0x77

	regs := cpu.DumpRegisters()
	assert.Equal(uint16(0x77), regs[7])
	regs[7] = 0
	assert.Equal(uint16(0x77), cpu.Register[7])

	words, err := cpu.DumpMemory(1, 3)
	assert.NoError(err)
	assert.Equal([]uint16{2, 3, 4}, words)
	words[0] = 0
	assert.Equal(uint16(2), cpu.Memory[1])

	words, err = cpu.DumpMemory(MEMORY_SIZE-2, 2)
	assert.NoError(err)
	assert.Len(words, 2)

	_, err = cpu.DumpMemory(MEMORY_SIZE-2, 3)
	assert.ErrorIs(err, ErrOutOfRange)

	_, err = cpu.DumpMemory(-1, 3)
	assert.ErrorIs(err, ErrOutOfRange)

	_, err = cpu.DumpMemory(MEMORY_SIZE, 0)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 0x12
	cpu.Register[3] = 0xab

	text := cpu.String()
	assert.Contains(text, "   pc: 0x0012\n")
	assert.Contains(text, "   r3: 0x00ab\n")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range NewCpu().Defines() {
		defines[key] = value
	}

	assert.Equal("8192", defines["MEMORY_SIZE"])
	assert.Equal("8", defines["REGISTER_COUNT"])
	assert.Equal("0x1fff", defines["WORD_MASK"])
	assert.Equal("0xffff", defines["SENTINEL"])
}
