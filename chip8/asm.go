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
	"bufio"
	"bytes"
	"fmt"
	"sort"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load at 0x200.
	///
	ROM []byte

	/// Labels maps each label to its address.
	///
	Labels map[string]int

	/// unresolved label references keyed by ROM offset.
	///
	unresolved map[int]fixup
}

// fixup is a label reference patched into the ROM after assembly.
type fixup struct {
	label string
	mask  uint16
}

/// Assemble an input CHIP-8 source code file.
///
func Assemble(program []byte) (out *Assembly, err error) {
	var line int

	out = &Assembly{
		ROM:        make([]byte, 0, MaxProgramSize),
		Labels:     make(map[string]int),
		unresolved: make(map[int]fixup),
	}

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			if line > 0 {
				err = fmt.Errorf("line %d - %v", line, r)
			} else {
				err = fmt.Errorf("%v", r)
			}

			out = nil
		}
	}()

	// create simple line scanner over the file
	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(program)))

	// parse and assemble
	for line = 1; scanner.Scan(); line++ {
		out.assemble(&tokenScanner{bytes: scanner.Bytes()})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// clear the line number as we're done assembling
	line = 0

	out.resolve()

	if len(out.ROM) > MaxProgramSize {
		return nil, fmt.Errorf("assembled %d bytes: %w", len(out.ROM), ErrProgramTooLarge)
	}

	return out, nil
}

/// resolve all label addresses, panics on any label never defined.
///
func (a *Assembly) resolve() {
	offsets := make([]int, 0, len(a.unresolved))
	for offset := range a.unresolved {
		offsets = append(offsets, offset)
	}

	// report the first unresolved label deterministically
	sort.Ints(offsets)

	for _, offset := range offsets {
		f := a.unresolved[offset]

		address, ok := a.Labels[f.label]
		if !ok {
			panic(fmt.Errorf("unresolved label: %s", f.label))
		}

		w := uint16(a.ROM[offset])<<8 | uint16(a.ROM[offset+1])
		w = w&^f.mask | uint16(address)&f.mask

		a.ROM[offset] = byte(w >> 8)
		a.ROM[offset+1] = byte(w)

		delete(a.unresolved, offset)
	}
}

/// address returns the memory address of the next assembled byte.
///
func (a *Assembly) address() int {
	return ProgramStart + len(a.ROM)
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.typ == TOKEN_LABEL {
		label := t.val.(string)

		if _, exists := a.Labels[label]; exists {
			panic("duplicate label")
		}

		a.Labels[label] = a.address()

		// scan the next token
		t = s.scanToken()
	}

	switch t.typ {
	case TOKEN_INSTRUCTION:
		a.assembleInstruction(t.val.(string), s.scanOperands())
	case TOKEN_END:
	default:
		panic("unexpected token")
	}
}

/// Compile a single instruction into the assembly.
///
func (a *Assembly) assembleInstruction(mnemonic string, tokens []token) {
	switch mnemonic {
	case "BYTE":
		a.assembleBYTE(tokens)
	case "WORD":
		a.assembleWORD(tokens)
	default:
		ins := a.instruction(mnemonic, tokens)
		w := Encode(ins)

		a.ROM = append(a.ROM, byte(w>>8), byte(w))
	}
}

/// Assemble a single operand, expanding label references. Unknown labels
/// are recorded to be patched at offset.
///
func (a *Assembly) assembleOperand(t token, offset int, mask uint16) token {
	if t.typ == TOKEN_REF {
		label := t.val.(string)

		if address, exists := a.Labels[label]; exists {
			return token{typ: TOKEN_LIT, val: address}
		}

		// add an unresolved address
		a.unresolved[offset] = fixup{label: label, mask: mask}

		return token{typ: TOKEN_LIT, val: ProgramStart}
	}

	return t
}

/// Match the desired tokens with a list of tokens. Expand label references.
///
func (a *Assembly) assembleOperands(tokens []token, m ...tokenType) ([]token, bool) {
	if len(tokens) != len(m) {
		return nil, false
	}

	ops := make([]token, 0, len(m))

	// expand and compare the token types
	for i, typ := range m {
		t := tokens[i]

		if t.typ == TOKEN_REF && typ == TOKEN_LIT {
			t = a.assembleOperand(t, len(a.ROM), 0xFFF)
		}

		if t.typ != typ {
			return nil, false
		}

		ops = append(ops, t)
	}

	return ops, true
}

// match is a shorthand for operand patterns with a builder.
type match struct {
	types []tokenType
	build func(ops []token) Instruction
}

func with(build func(ops []token) Instruction, types ...tokenType) match {
	return match{types: types, build: build}
}

/// instruction picks the first operand pattern of the mnemonic that
/// matches and builds the instruction.
///
func (a *Assembly) instruction(mnemonic string, tokens []token) Instruction {
	for _, m := range patterns[mnemonic] {
		if ops, ok := a.assembleOperands(tokens, m.types...); ok {
			return m.build(ops)
		}
	}

	panic("illegal instruction")
}

var patterns = map[string][]match{
	"CLS": {with(func([]token) Instruction { return Cls{} })},
	"RET": {with(func([]token) Instruction { return Ret{} })},
	"SYS": {with(func(o []token) Instruction { return Sys{Addr: addr(o[0])} }, TOKEN_LIT)},
	"JP": {
		with(func(o []token) Instruction { return Jump{Addr: addr(o[0])} }, TOKEN_LIT),
		with(func(o []token) Instruction {
			if reg(o[0]) != 0 {
				panic("illegal instruction")
			}
			return JumpV0{Addr: addr(o[1])}
		}, TOKEN_V, TOKEN_LIT),
	},
	"CALL": {with(func(o []token) Instruction { return Call{Addr: addr(o[0])} }, TOKEN_LIT)},
	"SE": {
		with(func(o []token) Instruction { return SkipIf{X: reg(o[0]), Byte: lit(o[1])} }, TOKEN_V, TOKEN_LIT),
		with(func(o []token) Instruction { return SkipIfXY{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V),
	},
	"SNE": {
		with(func(o []token) Instruction { return SkipIfNot{X: reg(o[0]), Byte: lit(o[1])} }, TOKEN_V, TOKEN_LIT),
		with(func(o []token) Instruction { return SkipIfNotXY{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V),
	},
	"SKP":  {with(func(o []token) Instruction { return SkipIfPressed{X: reg(o[0])} }, TOKEN_V)},
	"SKNP": {with(func(o []token) Instruction { return SkipIfNotPressed{X: reg(o[0])} }, TOKEN_V)},
	"OR":   {with(func(o []token) Instruction { return Or{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V)},
	"AND":  {with(func(o []token) Instruction { return And{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V)},
	"XOR":  {with(func(o []token) Instruction { return Xor{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V)},
	"SUB":  {with(func(o []token) Instruction { return SubXY{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V)},
	"SUBN": {with(func(o []token) Instruction { return SubYX{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V)},
	"SHR": {
		with(func(o []token) Instruction { return Shr{X: reg(o[0])} }, TOKEN_V),
		with(func(o []token) Instruction { return Shr{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V),
	},
	"SHL": {
		with(func(o []token) Instruction { return Shl{X: reg(o[0])} }, TOKEN_V),
		with(func(o []token) Instruction { return Shl{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V),
	},
	"ADD": {
		with(func(o []token) Instruction { return AddX{X: reg(o[0]), Byte: lit(o[1])} }, TOKEN_V, TOKEN_LIT),
		with(func(o []token) Instruction { return AddXY{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V),
		with(func(o []token) Instruction { return AddIX{X: reg(o[1])} }, TOKEN_I, TOKEN_V),
	},
	"RND": {with(func(o []token) Instruction { return Rnd{X: reg(o[0]), Byte: lit(o[1])} }, TOKEN_V, TOKEN_LIT)},
	"DRW": {with(func(o []token) Instruction {
		n := o[2].val.(int)
		if n < 0 || n > 0xF {
			panic("illegal sprite height")
		}
		return Drw{X: reg(o[0]), Y: reg(o[1]), N: uint8(n)}
	}, TOKEN_V, TOKEN_V, TOKEN_LIT)},
	"LD": {
		with(func(o []token) Instruction { return LoadX{X: reg(o[0]), Byte: lit(o[1])} }, TOKEN_V, TOKEN_LIT),
		with(func(o []token) Instruction { return LoadXY{X: reg(o[0]), Y: reg(o[1])} }, TOKEN_V, TOKEN_V),
		with(func(o []token) Instruction { return LoadI{Addr: addr(o[1])} }, TOKEN_I, TOKEN_LIT),
		with(func(o []token) Instruction { return LoadXDT{X: reg(o[0])} }, TOKEN_V, TOKEN_DT),
		with(func(o []token) Instruction { return LoadXK{X: reg(o[0])} }, TOKEN_V, TOKEN_K),
		with(func(o []token) Instruction { return LoadDTX{X: reg(o[1])} }, TOKEN_DT, TOKEN_V),
		with(func(o []token) Instruction { return LoadSTX{X: reg(o[1])} }, TOKEN_ST, TOKEN_V),
		with(func(o []token) Instruction { return LoadF{X: reg(o[1])} }, TOKEN_F, TOKEN_V),
		with(func(o []token) Instruction { return LoadB{X: reg(o[1])} }, TOKEN_B, TOKEN_V),
		with(func(o []token) Instruction {
			indirect(o[0])
			return SaveRegs{X: reg(o[1])}
		}, TOKEN_ADDRESS, TOKEN_V),
		with(func(o []token) Instruction {
			indirect(o[1])
			return LoadRegs{X: reg(o[0])}
		}, TOKEN_V, TOKEN_ADDRESS),
	},
}

// reg returns the index of a v-register operand.
func reg(t token) uint8 {
	return uint8(t.val.(int))
}

// lit returns a byte literal operand.
func lit(t token) byte {
	n := t.val.(int)

	if n < -0x80 || n > 0xFF {
		panic(fmt.Errorf("byte out of range: %d", n))
	}

	return byte(n)
}

// addr returns a 12-bit address operand.
func addr(t token) uint16 {
	n := t.val.(int)

	if n < 0 || n > 0xFFF {
		panic(fmt.Errorf("address out of range: #%04X", n))
	}

	return uint16(n)
}

// indirect panics unless the token is [I].
func indirect(t token) {
	if t.val.(token).typ != TOKEN_I {
		panic("illegal indirection")
	}
}

/// Assemble a BYTE directive of byte literals.
///
func (a *Assembly) assembleBYTE(tokens []token) {
	if len(tokens) == 0 {
		panic("expected operand")
	}

	for _, t := range tokens {
		if t.typ != TOKEN_LIT {
			panic("illegal byte")
		}

		a.ROM = append(a.ROM, lit(t))
	}
}

/// Assemble a WORD directive of 16-bit literals or label addresses.
///
func (a *Assembly) assembleWORD(tokens []token) {
	if len(tokens) == 0 {
		panic("expected operand")
	}

	for _, t := range tokens {
		t = a.assembleOperand(t, len(a.ROM), 0xFFFF)

		if t.typ != TOKEN_LIT {
			panic("illegal word")
		}

		n := t.val.(int)
		a.ROM = append(a.ROM, byte(n>>8), byte(n))
	}
}

/// Encode an instruction back into its 16-bit word.
///
func Encode(ins Instruction) uint16 {
	xy := func(op uint16, x, y uint8, n uint16) uint16 {
		return op<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | n
	}
	xb := func(op uint16, x uint8, b byte) uint16 {
		return op<<12 | uint16(x&0xF)<<8 | uint16(b)
	}
	nnn := func(op uint16, a uint16) uint16 {
		return op<<12 | a&0xFFF
	}

	switch i := ins.(type) {
	case Cls:
		return 0x00E0
	case Ret:
		return 0x00EE
	case Sys:
		return nnn(0x0, i.Addr)
	case Jump:
		return nnn(0x1, i.Addr)
	case Call:
		return nnn(0x2, i.Addr)
	case SkipIf:
		return xb(0x3, i.X, i.Byte)
	case SkipIfNot:
		return xb(0x4, i.X, i.Byte)
	case SkipIfXY:
		return xy(0x5, i.X, i.Y, 0x0)
	case LoadX:
		return xb(0x6, i.X, i.Byte)
	case AddX:
		return xb(0x7, i.X, i.Byte)
	case LoadXY:
		return xy(0x8, i.X, i.Y, 0x0)
	case Or:
		return xy(0x8, i.X, i.Y, 0x1)
	case And:
		return xy(0x8, i.X, i.Y, 0x2)
	case Xor:
		return xy(0x8, i.X, i.Y, 0x3)
	case AddXY:
		return xy(0x8, i.X, i.Y, 0x4)
	case SubXY:
		return xy(0x8, i.X, i.Y, 0x5)
	case Shr:
		return xy(0x8, i.X, i.Y, 0x6)
	case SubYX:
		return xy(0x8, i.X, i.Y, 0x7)
	case Shl:
		return xy(0x8, i.X, i.Y, 0xE)
	case SkipIfNotXY:
		return xy(0x9, i.X, i.Y, 0x0)
	case LoadI:
		return nnn(0xA, i.Addr)
	case JumpV0:
		return nnn(0xB, i.Addr)
	case Rnd:
		return xb(0xC, i.X, i.Byte)
	case Drw:
		return xy(0xD, i.X, i.Y, uint16(i.N&0xF))
	case SkipIfPressed:
		return xb(0xE, i.X, 0x9E)
	case SkipIfNotPressed:
		return xb(0xE, i.X, 0xA1)
	case LoadXDT:
		return xb(0xF, i.X, 0x07)
	case LoadXK:
		return xb(0xF, i.X, 0x0A)
	case LoadDTX:
		return xb(0xF, i.X, 0x15)
	case LoadSTX:
		return xb(0xF, i.X, 0x18)
	case AddIX:
		return xb(0xF, i.X, 0x1E)
	case LoadF:
		return xb(0xF, i.X, 0x29)
	case LoadB:
		return xb(0xF, i.X, 0x33)
	case SaveRegs:
		return xb(0xF, i.X, 0x55)
	case LoadRegs:
		return xb(0xF, i.X, 0x65)
	}

	panic(fmt.Sprintf("unknown instruction %T", ins))
}
