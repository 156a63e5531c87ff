// Package cpu implements the processor and assembler for the Intcode machine.
//
// The processor consists of a program counter, a relative base register, an
// input queue, and a sparse memory. Each step fetches the instruction cell at
// the program counter, whose low two decimal digits select the opcode and
// whose higher digits select the addressing mode of each operand:
// positional (0), immediate (1), or relative (2).
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
