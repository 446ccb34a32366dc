package cpu

import (
	"fmt"
)

// CodeOp is the 4-bit opcode tag in the top of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_LOAD  = CodeOp(0x1) // load
	OP_ADD   = CodeOp(0x2) // add
	OP_STORE = CodeOp(0x3) // store
	OP_JUMP  = CodeOp(0x4) // jump
	OP_HALT  = CodeOp(0xf) // halt
)

// Valid returns true if the opcode has a defined transition.
func (op CodeOp) Valid() bool {
	switch op {
	case OP_LOAD, OP_ADD, OP_STORE, OP_JUMP, OP_HALT:
		return true
	}
	return false
}

// Code is a single 16-bit instruction word.
//
//	15..12  opcode
//	11..8   reg1
//	 7..4   reg2
//	 7..0   value (overlaps reg2)
type Code uint16

func makeCode(op CodeOp, reg1 int, low uint8) Code {
	return Code((uint16(op)&0xf)<<12 | (uint16(reg1)&0xf)<<8 | uint16(low))
}

// MakeCodeLoad creates a load of an immediate into a register.
func MakeCodeLoad(reg int, value uint8) Code {
	return makeCode(OP_LOAD, reg, value)
}

// MakeCodeAdd creates an add of register src into register dst.
func MakeCodeAdd(dst, src int) Code {
	return makeCode(OP_ADD, dst, uint8(src&0xf)<<4)
}

// MakeCodeStore creates a store of a register to a memory address.
func MakeCodeStore(reg int, addr uint8) Code {
	return makeCode(OP_STORE, reg, addr)
}

// MakeCodeJump creates an absolute jump.
func MakeCodeJump(addr uint8) Code {
	return makeCode(OP_JUMP, 0, addr)
}

// MakeCodeHalt creates a halt.
func MakeCodeHalt() Code {
	return makeCode(OP_HALT, 0, 0)
}

// Op returns the opcode field.
func (code Code) Op() CodeOp {
	return CodeOp((code >> 12) & 0xf)
}

// Reg1 returns the primary register field.
func (code Code) Reg1() int {
	return int((code >> 8) & 0xf)
}

// Reg2 returns the secondary register field.
func (code Code) Reg2() int {
	return int((code >> 4) & 0xf)
}

// Value returns the immediate or address field.
func (code Code) Value() uint8 {
	return uint8(code & 0xff)
}

// Decode returns all of the instruction fields.
func (code Code) Decode() (op CodeOp, reg1, reg2 int, value uint8) {
	return code.Op(), code.Reg1(), code.Reg2(), code.Value()
}

// String returns the assembly language representation of this instruction,
// or a .word directive if it has no exact mnemonic form.
func (code Code) String() string {
	op, reg1, reg2, value := code.Decode()

	if reg1 < REGISTER_COUNT {
		switch {
		case op == OP_LOAD:
			return fmt.Sprintf("%v r%d %#x", op, reg1, value)
		case op == OP_ADD && reg2 < REGISTER_COUNT && code == MakeCodeAdd(reg1, reg2):
			return fmt.Sprintf("%v r%d r%d", op, reg1, reg2)
		case op == OP_STORE:
			return fmt.Sprintf("%v r%d %#x", op, reg1, value)
		case op == OP_JUMP && reg1 == 0:
			return fmt.Sprintf("%v %#x", op, value)
		case code == MakeCodeHalt():
			return op.String()
		}
	}

	return fmt.Sprintf(".word 0x%04x", uint16(code))
}
