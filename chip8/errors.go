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
	"errors"
	"fmt"
)

var (
	/// ErrProgramTooLarge is returned when a ROM does not fit between
	/// 0x200 and the end of memory.
	///
	ErrProgramTooLarge = errors.New("program too large to fit in memory")

	/// ErrStackOverflow is returned by a CALL with all 16 slots in use.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by a RET with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrUnknownOpcode is matched by every UnknownOpcodeError.
	///
	ErrUnknownOpcode = errors.New("unknown opcode")

	/// ErrHalted is returned by Step once the machine has halted.
	///
	ErrHalted = errors.New("machine halted")
)

/// AddressError reports a memory access outside of [0, 0x1000).
///
type AddressError struct {
	Address uint16
	Length  int
}

func (e *AddressError) Error() string {
	if e.Length > 1 {
		return fmt.Sprintf("address out of bounds: #%04X (+%d bytes)", e.Address, e.Length)
	}

	return fmt.Sprintf("address out of bounds: #%04X", e.Address)
}

/// UnknownOpcodeError reports an instruction word the decoder rejected.
///
type UnknownOpcodeError struct {
	Word uint16

	// PC is the address the word was fetched from, zero if decoded
	// outside of the CPU.
	PC uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode: %04X at #%04X", e.Word, e.PC)
}

func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}
