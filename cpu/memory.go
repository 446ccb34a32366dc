package cpu

const (
	MEMORY_SIZE    = 8192                     // Words of memory.
	REGISTER_COUNT = 8                        // General purpose registers.
	WORD_BITS      = 13                       // Significant bits of a data word.
	WORD_MASK      = uint16(1<<WORD_BITS - 1) // Mask of a data word.
	SENTINEL       = uint16(0xffff)           // End of program marker.
)

// Memory is the word addressable memory bank.
type Memory [MEMORY_SIZE]uint16

// Read returns the word at addr.
func (mem *Memory) Read(addr uint16) (value uint16, err error) {
	if int(addr) >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	value = mem[addr]
	return
}

// Write stores a data word at addr, truncated to WORD_BITS.
func (mem *Memory) Write(addr uint16, value uint16) (err error) {
	if int(addr) >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	mem[addr] = value & WORD_MASK
	return
}

// Load copies full width instruction words into memory starting at address 0.
// Memory is unchanged if the words do not fit.
func (mem *Memory) Load(words []uint16) (err error) {
	if len(words) > len(mem) {
		err = ErrAddress(len(words) - 1)
		return
	}

	copy(mem[:], words)
	return
}

// Registers is the general purpose register bank.
type Registers [REGISTER_COUNT]uint16

// Get returns the value of register index.
func (regs *Registers) Get(index int) (value uint16, err error) {
	if index < 0 || index >= len(regs) {
		err = ErrRegister(index)
		return
	}

	value = regs[index]
	return
}

// Set stores a data word in register index, truncated to WORD_BITS.
func (regs *Registers) Set(index int, value uint16) (err error) {
	if index < 0 || index >= len(regs) {
		err = ErrRegister(index)
		return
	}

	regs[index] = value & WORD_MASK
	return
}
