/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"fmt"
	"strings"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

/// Disassemble the CHIP-8 instruction stored at address i.
///
func (vm *CPU) Disassemble(i uint16) string {
	inst, err := vm.memory.ReadWord(i)
	if err != nil {
		return ""
	}

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	return fmt.Sprintf("%04X - %s", i, Disassemble(inst))
}

/// Disassemble a single instruction word, ?? if it doesn't decode.
///
func Disassemble(inst uint16) string {
	ins, err := Decode(inst)
	if err != nil {
		return "??"
	}

	return ins.String()
}

/// Mnemonic looks up the canonical lower-case mnemonic of an instruction
/// word in the retrogolib CHIP-8 opcode table. It returns "" when no
/// table entry matches.
///
func Mnemonic(inst uint16) string {
	for _, op := range chip8cpu.Opcodes[int(inst>>12)] {
		if op.Info.Mask&inst == op.Info.Value && op.Instruction != nil {
			return strings.ToLower(op.Instruction.Name)
		}
	}

	return ""
}

// asm formats a mnemonic and its operands with the operand column aligned.
func asm(mnemonic, format string, args ...any) string {
	if format == "" {
		return mnemonic
	}

	return fmt.Sprintf("%-6s "+format, append([]any{mnemonic}, args...)...)
}

func (Cls) String() string                { return asm("CLS", "") }
func (Ret) String() string                { return asm("RET", "") }
func (i Sys) String() string              { return asm("SYS", "#%04X", i.Addr) }
func (i Jump) String() string             { return asm("JP", "#%04X", i.Addr) }
func (i Call) String() string             { return asm("CALL", "#%04X", i.Addr) }
func (i SkipIf) String() string           { return asm("SE", "V%X, #%02X", i.X, i.Byte) }
func (i SkipIfNot) String() string        { return asm("SNE", "V%X, #%02X", i.X, i.Byte) }
func (i SkipIfXY) String() string         { return asm("SE", "V%X, V%X", i.X, i.Y) }
func (i LoadX) String() string            { return asm("LD", "V%X, #%02X", i.X, i.Byte) }
func (i AddX) String() string             { return asm("ADD", "V%X, #%02X", i.X, i.Byte) }
func (i LoadXY) String() string           { return asm("LD", "V%X, V%X", i.X, i.Y) }
func (i Or) String() string               { return asm("OR", "V%X, V%X", i.X, i.Y) }
func (i And) String() string              { return asm("AND", "V%X, V%X", i.X, i.Y) }
func (i Xor) String() string              { return asm("XOR", "V%X, V%X", i.X, i.Y) }
func (i AddXY) String() string            { return asm("ADD", "V%X, V%X", i.X, i.Y) }
func (i SubXY) String() string            { return asm("SUB", "V%X, V%X", i.X, i.Y) }
func (i SubYX) String() string            { return asm("SUBN", "V%X, V%X", i.X, i.Y) }
func (i SkipIfNotXY) String() string      { return asm("SNE", "V%X, V%X", i.X, i.Y) }
func (i LoadI) String() string            { return asm("LD", "I, #%04X", i.Addr) }
func (i JumpV0) String() string           { return asm("JP", "V0, #%04X", i.Addr) }
func (i Rnd) String() string              { return asm("RND", "V%X, #%02X", i.X, i.Byte) }
func (i Drw) String() string              { return asm("DRW", "V%X, V%X, %d", i.X, i.Y, i.N) }
func (i SkipIfPressed) String() string    { return asm("SKP", "V%X", i.X) }
func (i SkipIfNotPressed) String() string { return asm("SKNP", "V%X", i.X) }
func (i LoadXDT) String() string          { return asm("LD", "V%X, DT", i.X) }
func (i LoadXK) String() string           { return asm("LD", "V%X, K", i.X) }
func (i LoadDTX) String() string          { return asm("LD", "DT, V%X", i.X) }
func (i LoadSTX) String() string          { return asm("LD", "ST, V%X", i.X) }
func (i AddIX) String() string            { return asm("ADD", "I, V%X", i.X) }
func (i LoadF) String() string            { return asm("LD", "F, V%X", i.X) }
func (i LoadB) String() string            { return asm("LD", "B, V%X", i.X) }
func (i SaveRegs) String() string         { return asm("LD", "[I], V%X", i.X) }
func (i LoadRegs) String() string         { return asm("LD", "V%X, [I]", i.X) }

func (i Shr) String() string { return shift("SHR", i.X, i.Y) }
func (i Shl) String() string { return shift("SHL", i.X, i.Y) }

// shift only shows vy when it is set, since it is ignored when executed.
func shift(mnemonic string, x, y uint8) string {
	if y == 0 {
		return asm(mnemonic, "V%X", x)
	}

	return asm(mnemonic, "V%X, V%X", x, y)
}
