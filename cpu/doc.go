// Package cpu implements the processor and assembler for the neo13 system.
//
// The CPU consists of a program counter (PC), eight general-purpose registers
// (r0-r7) holding 13-bit words, and 8192 words of memory. Instructions are
// 16-bit words carrying a 4-bit opcode and two 4-bit register fields, with
// the low byte doubling as an immediate value or address.
//
// Programs are loaded as images of hexadecimal words and run until a HALT
// opcode executes or the 0xffff end-of-program sentinel is fetched.
//
// The assembler provides a small assembly language for the neo13 instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
