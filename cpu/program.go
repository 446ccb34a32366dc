package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"gopkg.in/yaml.v3"
)

// Opcode represents a line of assembled code with its source location and generated instructions.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []Code
	LinkLabel string
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

func (prog *Program) Debug(ip uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= uint16(op.Ip) && ip < uint16(op.Ip)+uint16(len(op.Codes)) {
			index := int(ip - uint16(op.Ip))
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  index,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program, terminated by the sentinel.
func (prog *Program) Binary() (bins []uint16) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint16(code))
	}

	bins = append(bins, SENTINEL)
	return
}

func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(ip uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			ip := uint16(op.Ip)
			for n, code := range op.Codes {
				if !yield(ip+uint16(n), code) {
					return
				}
			}
		}
	}
}

// WriteImage writes the program as a loadable image, one source line per
// image line with the source as a comment.
func (prog *Program) WriteImage(w io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		hex := make([]string, len(op.Codes))
		for n, code := range op.Codes {
			hex[n] = fmt.Sprintf("%04x", uint16(code))
		}
		_, err = fmt.Fprintf(w, "%v ; %v\n", strings.Join(hex, " "), strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintf(w, "%04x ; end\n", SENTINEL)
	return
}

type listingLine struct {
	LineNo int      `yaml:"line"`
	Ip     string   `yaml:"ip"`
	Source string   `yaml:"source"`
	Codes  []string `yaml:"codes"`
	Text   []string `yaml:"text"`
}

// WriteListing writes a YAML listing of the program, mapping each source line
// to its address, words and disassembly.
func (prog *Program) WriteListing(w io.Writer) (err error) {
	listing := make([]listingLine, 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		line := listingLine{
			LineNo: op.LineNo,
			Ip:     fmt.Sprintf("0x%04x", op.Ip),
			Source: strings.Join(op.Words, " "),
		}
		for _, code := range op.Codes {
			line.Codes = append(line.Codes, fmt.Sprintf("0x%04x", uint16(code)))
			line.Text = append(line.Text, code.String())
		}
		listing = append(listing, line)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err = enc.Encode(listing)
	if err != nil {
		enc.Close()
		return
	}

	return enc.Close()
}
