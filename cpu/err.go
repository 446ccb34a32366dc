package cpu

import (
	"errors"

	"github.com/ezrec/neo13/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrEndOfProgram = errors.New(f("end of program"))
	ErrOutOfRange   = errors.New(f("out of range"))
	ErrStepLimit    = errors.New(f("step limit reached"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrAddress is a memory address outside of the memory bank.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%04x out of range", int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrOutOfRange
}

// ErrRegister is a register index outside of the register bank.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register r%d out of range", int(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrOutOfRange
}

// ErrOpcode identifies the instruction word, and where it was fetched from,
// that could not be executed.
type ErrOpcode struct {
	Pc   uint16
	Code Code
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x at 0x%04x %v", uint16(eo.Code), eo.Pc, eo.Code.String())
}

// Is matches any ErrOpcode, regardless of its Pc or Code.
func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrParseToken is an image token that is not a 16-bit hexadecimal word.
type ErrParseToken struct {
	LineNo int
	Token  string
}

func (err ErrParseToken) Error() string {
	return f("line %d '%v' is not a hexadecimal word", err.LineNo, err.Token)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
