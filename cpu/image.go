package cpu

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseImage parses a program image: whitespace separated hexadecimal words,
// with an optional 0x prefix. Text from ';' to the end of a line is ignored.
// Lines may be of any length.
func ParseImage(input io.Reader) (words []uint16, err error) {
	reader := bufio.NewReader(input)

	for lineno := 1; ; lineno++ {
		var text string
		text, err = reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return
		}
		eof := err == io.EOF
		err = nil

		line, _, _ := strings.Cut(text, ";")
		for _, token := range strings.Fields(line) {
			digits := token
			if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
				digits = digits[2:]
			}
			var word uint64
			word, err = strconv.ParseUint(digits, 16, 16)
			if err != nil {
				err = ErrParseToken{LineNo: lineno, Token: token}
				return
			}
			words = append(words, uint16(word))
		}

		if eof {
			return
		}
	}
}

// LoadImage parses a program image and places it in memory from address 0.
// Memory is unchanged if the image is malformed or too large.
func (cpu *Cpu) LoadImage(input io.Reader) (err error) {
	words, err := ParseImage(input)
	if err != nil {
		return
	}

	err = cpu.Memory.Load(words)
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.logger().Debug("cpu: image loaded", "words", len(words))
	}

	return
}
