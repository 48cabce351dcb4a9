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

import "fmt"

/// Instruction is one decoded CHIP-8 instruction. The set of variants is
/// closed: only the types in this file implement it.
///
type Instruction interface {
	fmt.Stringer

	instruction()
}

type (
	/// Cls - 00E0 - clear the display.
	///
	Cls struct{}

	/// Ret - 00EE - return from subroutine.
	///
	Ret struct{}

	/// Sys - 0NNN - call an RCA 1802 routine, ignored.
	///
	Sys struct{ Addr uint16 }

	/// Jump - 1NNN - jump to address.
	///
	Jump struct{ Addr uint16 }

	/// Call - 2NNN - call subroutine at address.
	///
	Call struct{ Addr uint16 }

	/// SkipIf - 3XKK - skip next instruction if vx == kk.
	///
	SkipIf struct {
		X    uint8
		Byte byte
	}

	/// SkipIfNot - 4XKK - skip next instruction if vx != kk.
	///
	SkipIfNot struct {
		X    uint8
		Byte byte
	}

	/// SkipIfXY - 5XY0 - skip next instruction if vx == vy.
	///
	SkipIfXY struct{ X, Y uint8 }

	/// LoadX - 6XKK - load kk into vx.
	///
	LoadX struct {
		X    uint8
		Byte byte
	}

	/// AddX - 7XKK - add kk to vx, no carry.
	///
	AddX struct {
		X    uint8
		Byte byte
	}

	/// LoadXY - 8XY0 - load vy into vx.
	///
	LoadXY struct{ X, Y uint8 }

	/// Or - 8XY1 - or vx with vy into vx.
	///
	Or struct{ X, Y uint8 }

	/// And - 8XY2 - and vx with vy into vx.
	///
	And struct{ X, Y uint8 }

	/// Xor - 8XY3 - xor vx with vy into vx.
	///
	Xor struct{ X, Y uint8 }

	/// AddXY - 8XY4 - add vy to vx and set carry.
	///
	AddXY struct{ X, Y uint8 }

	/// SubXY - 8XY5 - subtract vy from vx, set carry if no borrow.
	///
	SubXY struct{ X, Y uint8 }

	/// Shr - 8XY6 - shift vx right, carry is the LSB shifted out.
	///
	Shr struct{ X, Y uint8 }

	/// SubYX - 8XY7 - store vy - vx in vx, set carry if no borrow.
	///
	SubYX struct{ X, Y uint8 }

	/// Shl - 8XYE - shift vx left, carry is the MSB shifted out.
	///
	Shl struct{ X, Y uint8 }

	/// SkipIfNotXY - 9XY0 - skip next instruction if vx != vy.
	///
	SkipIfNotXY struct{ X, Y uint8 }

	/// LoadI - ANNN - load address register.
	///
	LoadI struct{ Addr uint16 }

	/// JumpV0 - BNNN - jump to address + v0.
	///
	JumpV0 struct{ Addr uint16 }

	/// Rnd - CXKK - load a random number & kk into vx.
	///
	Rnd struct {
		X    uint8
		Byte byte
	}

	/// Drw - DXYN - draw an n row sprite at I to <vx, vy>.
	///
	Drw struct{ X, Y, N uint8 }

	/// SkipIfPressed - EX9E - skip next instruction if key(vx) is down.
	///
	SkipIfPressed struct{ X uint8 }

	/// SkipIfNotPressed - EXA1 - skip next instruction if key(vx) is up.
	///
	SkipIfNotPressed struct{ X uint8 }

	/// LoadXDT - FX07 - load delay timer into vx.
	///
	LoadXDT struct{ X uint8 }

	/// LoadXK - FX0A - wait for a key press and load it into vx.
	///
	LoadXK struct{ X uint8 }

	/// LoadDTX - FX15 - load vx into delay timer.
	///
	LoadDTX struct{ X uint8 }

	/// LoadSTX - FX18 - load vx into sound timer.
	///
	LoadSTX struct{ X uint8 }

	/// AddIX - FX1E - add vx to I.
	///
	AddIX struct{ X uint8 }

	/// LoadF - FX29 - load font sprite address for digit vx into I.
	///
	LoadF struct{ X uint8 }

	/// LoadB - FX33 - store the BCD of vx at I.
	///
	LoadB struct{ X uint8 }

	/// SaveRegs - FX55 - save v0..vx to I.
	///
	SaveRegs struct{ X uint8 }

	/// LoadRegs - FX65 - load v0..vx from I.
	///
	LoadRegs struct{ X uint8 }
)

/// Decode an instruction word. Words that match none of the 35 base
/// instruction forms return an UnknownOpcodeError.
///
func Decode(inst uint16) (Instruction, error) {
	// 12-bit address operand
	a := inst & 0xFFF

	// byte and nibble operands
	b := byte(inst & 0xFF)
	n := uint8(inst & 0xF)

	// x and y register operands
	x := uint8(inst >> 8 & 0xF)
	y := uint8(inst >> 4 & 0xF)

	switch inst >> 12 {
	case 0x0:
		switch inst {
		case 0x00E0:
			return Cls{}, nil
		case 0x00EE:
			return Ret{}, nil
		}
		return Sys{Addr: a}, nil
	case 0x1:
		return Jump{Addr: a}, nil
	case 0x2:
		return Call{Addr: a}, nil
	case 0x3:
		return SkipIf{X: x, Byte: b}, nil
	case 0x4:
		return SkipIfNot{X: x, Byte: b}, nil
	case 0x5:
		if n == 0 {
			return SkipIfXY{X: x, Y: y}, nil
		}
	case 0x6:
		return LoadX{X: x, Byte: b}, nil
	case 0x7:
		return AddX{X: x, Byte: b}, nil
	case 0x8:
		switch n {
		case 0x0:
			return LoadXY{X: x, Y: y}, nil
		case 0x1:
			return Or{X: x, Y: y}, nil
		case 0x2:
			return And{X: x, Y: y}, nil
		case 0x3:
			return Xor{X: x, Y: y}, nil
		case 0x4:
			return AddXY{X: x, Y: y}, nil
		case 0x5:
			return SubXY{X: x, Y: y}, nil
		case 0x6:
			return Shr{X: x, Y: y}, nil
		case 0x7:
			return SubYX{X: x, Y: y}, nil
		case 0xE:
			return Shl{X: x, Y: y}, nil
		}
	case 0x9:
		if n == 0 {
			return SkipIfNotXY{X: x, Y: y}, nil
		}
	case 0xA:
		return LoadI{Addr: a}, nil
	case 0xB:
		return JumpV0{Addr: a}, nil
	case 0xC:
		return Rnd{X: x, Byte: b}, nil
	case 0xD:
		return Drw{X: x, Y: y, N: n}, nil
	case 0xE:
		switch b {
		case 0x9E:
			return SkipIfPressed{X: x}, nil
		case 0xA1:
			return SkipIfNotPressed{X: x}, nil
		}
	case 0xF:
		switch b {
		case 0x07:
			return LoadXDT{X: x}, nil
		case 0x0A:
			return LoadXK{X: x}, nil
		case 0x15:
			return LoadDTX{X: x}, nil
		case 0x18:
			return LoadSTX{X: x}, nil
		case 0x1E:
			return AddIX{X: x}, nil
		case 0x29:
			return LoadF{X: x}, nil
		case 0x33:
			return LoadB{X: x}, nil
		case 0x55:
			return SaveRegs{X: x}, nil
		case 0x65:
			return LoadRegs{X: x}, nil
		}
	}

	return nil, &UnknownOpcodeError{Word: inst}
}

func (Cls) instruction()              {}
func (Ret) instruction()              {}
func (Sys) instruction()              {}
func (Jump) instruction()             {}
func (Call) instruction()             {}
func (SkipIf) instruction()           {}
func (SkipIfNot) instruction()        {}
func (SkipIfXY) instruction()         {}
func (LoadX) instruction()            {}
func (AddX) instruction()             {}
func (LoadXY) instruction()           {}
func (Or) instruction()               {}
func (And) instruction()              {}
func (Xor) instruction()              {}
func (AddXY) instruction()            {}
func (SubXY) instruction()            {}
func (Shr) instruction()              {}
func (SubYX) instruction()            {}
func (Shl) instruction()              {}
func (SkipIfNotXY) instruction()      {}
func (LoadI) instruction()            {}
func (JumpV0) instruction()           {}
func (Rnd) instruction()              {}
func (Drw) instruction()              {}
func (SkipIfPressed) instruction()    {}
func (SkipIfNotPressed) instruction() {}
func (LoadXDT) instruction()          {}
func (LoadXK) instruction()           {}
func (LoadDTX) instruction()          {}
func (LoadSTX) instruction()          {}
func (AddIX) instruction()            {}
func (LoadF) instruction()            {}
func (LoadB) instruction()            {}
func (SaveRegs) instruction()         {}
func (LoadRegs) instruction()         {}
