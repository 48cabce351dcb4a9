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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const countdown = `
; count v0 down from 3, then wait forever
	ld    v0, 3
	call  tick
	se    v0, 0
	jp    #0202
.halt
	jp    halt

.tick
	add   v0, -1
	ret
`

func TestAssembleAndRun(t *testing.T) {
	out, err := Assemble([]byte(countdown))
	assert.NoError(t, err)

	assert.Equal(t, []byte{
		0x60, 0x03,
		0x22, 0x0A,
		0x30, 0x00,
		0x12, 0x02,
		0x12, 0x08,
		0x70, 0xFF,
		0x00, 0xEE,
	}, out.ROM)
	assert.Equal(t, ProgramStart+8, out.Labels["HALT"])
	assert.Equal(t, ProgramStart+10, out.Labels["TICK"])

	vm := load(t)
	assert.NoError(t, vm.LoadProgram(out.ROM))

	for i := 0; i < 20; i++ {
		assert.NoError(t, vm.Step())
	}

	assert.Equal(t, byte(0), vm.V(0))
	assert.Equal(t, uint16(0x208), vm.PC())
	assert.Equal(t, 0, vm.SP())
}

func TestAssembleOperands(t *testing.T) {
	tests := []struct {
		source   string
		expected []byte
	}{
		{"cls", []byte{0x00, 0xE0}},
		{"sys #123", []byte{0x01, 0x23}},
		{"ld v1, $1.1.1.1.", []byte{0x61, 0xAA}},
		{"ld v1, #ff", []byte{0x61, 0xFF}},
		{"ld va, vb", []byte{0x8A, 0xB0}},
		{"ld i, #300", []byte{0xA3, 0x00}},
		{"ld vc, dt", []byte{0xFC, 0x07}},
		{"ld v2, k", []byte{0xF2, 0x0A}},
		{"ld dt, v3", []byte{0xF3, 0x15}},
		{"ld st, v4", []byte{0xF4, 0x18}},
		{"ld f, v5", []byte{0xF5, 0x29}},
		{"ld b, v6", []byte{0xF6, 0x33}},
		{"ld [i], v7", []byte{0xF7, 0x55}},
		{"ld v8, [i]", []byte{0xF8, 0x65}},
		{"add i, v9", []byte{0xF9, 0x1E}},
		{"jp v0, #400", []byte{0xB4, 0x00}},
		{"shr v1", []byte{0x81, 0x06}},
		{"shl v1, v2", []byte{0x81, 0x2E}},
		{"drw v0, v1, 15", []byte{0xD0, 0x1F}},
		{"skp v3 ; key down?", []byte{0xE3, 0x9E}},
		{"byte 1, 2, #ff", []byte{0x01, 0x02, 0xFF}},
		{"word #1234", []byte{0x12, 0x34}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			out, err := Assemble([]byte(tt.source))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, out.ROM)
		})
	}
}

func TestAssembleForwardReferences(t *testing.T) {
	source := `
	ld    i, sprite
	jp    done
.done
	cls
.sprite
	word  sprite
	byte  $1111....
`

	out, err := Assemble([]byte(source))
	assert.NoError(t, err)

	assert.Equal(t, []byte{
		0xA2, 0x06,
		0x12, 0x04,
		0x00, 0xE0,
		0x02, 0x06,
		0xF0,
	}, out.ROM)
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		err    string
	}{
		{"unknown mnemonic operands", "cls v0", "line 1 - illegal instruction"},
		{"bad operand", "ld v0, dt, k", "illegal instruction"},
		{"byte out of range", "ld v0, 256", "byte out of range"},
		{"address out of range", "jp #1000", "address out of range"},
		{"jp needs v0", "jp v1, #200", "illegal instruction"},
		{"sprite height", "drw v0, v1, 16", "illegal sprite height"},
		{"duplicate label", ".a\n.a", "line 2 - duplicate label"},
		{"unresolved label", "jp nowhere", "unresolved label: NOWHERE"},
		{"missing operand", "ld v0,", "expected operand"},
		{"bad indirection", "ld [v0], v1", "illegal indirection"},
		{"stray token", "#12", "unexpected token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Assemble([]byte(tt.source))
			assert.ErrorContains(t, err, tt.err)
			assert.Nil(t, out)
		})
	}
}

func TestAssembleDisassembly(t *testing.T) {
	for w := 0; w <= 0xFFFF; w += 7 {
		text := Disassemble(uint16(w))
		if text == "??" {
			continue
		}

		out, err := Assemble([]byte(text))
		assert.NoError(t, err, text)
		assert.Equal(t, []byte{byte(w >> 8), byte(w)}, out.ROM, text)
	}
}
