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
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// load creates a machine running the given instruction words.
func load(t *testing.T, words ...uint16) *CPU {
	t.Helper()

	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	vm, err := Load(program, WithRand(rand.New(rand.NewPCG(1, 2))))
	assert.NoError(t, err)

	return vm
}

// steps executes n steps, failing on the first error.
func steps(t *testing.T, vm *CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, vm.Step())
	}
}

func TestAddScenario(t *testing.T) {
	vm := load(t, 0x6001, 0x6102, 0x8014)

	steps(t, vm, 3)

	assert.Equal(t, byte(3), vm.V(0))
	assert.Equal(t, byte(0), vm.V(VF))
	assert.Equal(t, uint16(ProgramStart+6), vm.PC())
	assert.Equal(t, int64(3), vm.Cycles())
	assert.Equal(t, uint16(0x8014), vm.Opcode())
}

func TestLoadTooLarge(t *testing.T) {
	_, err := Load(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
}

func TestJumpAndCall(t *testing.T) {
	// 200: CALL 206, 202: JP 202, 204: -, 206: LD V1, #07, 208: RET
	vm := load(t, 0x2206, 0x1202, 0x0000, 0x6107, 0x00EE)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC())
	assert.Equal(t, 1, vm.SP())

	steps(t, vm, 2)
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, 0, vm.SP())
	assert.Equal(t, byte(7), vm.V(1))

	// jumping to itself never advances
	steps(t, vm, 3)
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestJumpV0(t *testing.T) {
	vm := load(t, 0x6004, 0xB300)

	steps(t, vm, 2)
	assert.Equal(t, uint16(0x304), vm.PC())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name  string
		setup []uint16
		skip  uint16
		taken bool
	}{
		{"se taken", []uint16{0x6042}, 0x3042, true},
		{"se not taken", []uint16{0x6042}, 0x3041, false},
		{"sne taken", []uint16{0x6042}, 0x4041, true},
		{"sne not taken", []uint16{0x6042}, 0x4042, false},
		{"se xy taken", []uint16{0x6042, 0x6142}, 0x5010, true},
		{"se xy not taken", []uint16{0x6042, 0x6143}, 0x5010, false},
		{"sne xy taken", []uint16{0x6042, 0x6143}, 0x9010, true},
		{"sne xy not taken", []uint16{0x6042, 0x6142}, 0x9010, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := load(t, append(tt.setup, tt.skip)...)

			steps(t, vm, len(tt.setup)+1)

			expected := uint16(ProgramStart + 2*len(tt.setup) + 2)
			if tt.taken {
				expected += 2
			}
			assert.Equal(t, expected, vm.PC())
		})
	}
}

func TestSkipIfKey(t *testing.T) {
	vm := load(t, 0x6A05, 0xEA9E, 0x0000, 0xEAA1)
	vm.Keypad().Press(5)

	steps(t, vm, 2)
	assert.Equal(t, uint16(0x206), vm.PC())

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x208), vm.PC())
}

func TestWaitForKey(t *testing.T) {
	vm := load(t, 0x6305, 0xF315, 0xF20A, 0x6101)

	steps(t, vm, 2)
	assert.Equal(t, byte(4), vm.DelayTimer())

	// nothing pressed: the instruction repeats, timers keep ticking
	steps(t, vm, 3)
	assert.Equal(t, uint16(0x204), vm.PC())
	assert.Equal(t, WaitingForKey, vm.State())
	assert.Equal(t, byte(1), vm.DelayTimer())

	vm.Keypad().Press(0xB)
	vm.Keypad().Press(0xE)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC())
	assert.Equal(t, byte(0xB), vm.V(2))
	assert.Equal(t, Running, vm.State())
}

func TestTimers(t *testing.T) {
	beeps := 0

	vm := New(WithBeep(func() { beeps++ }))
	assert.NoError(t, vm.LoadProgram([]byte{0x60, 0x02, 0xF0, 0x18, 0xF1, 0x07, 0x12, 0x06}))

	steps(t, vm, 2)
	assert.Equal(t, byte(1), vm.SoundTimer())
	assert.True(t, vm.SoundActive())
	assert.Equal(t, 0, beeps)

	steps(t, vm, 1)
	assert.Equal(t, byte(0), vm.SoundTimer())
	assert.True(t, vm.Beeped())
	assert.Equal(t, 1, beeps)

	steps(t, vm, 5)
	assert.False(t, vm.Beeped())
	assert.Equal(t, 1, beeps)
}

func TestLoadDelayTimer(t *testing.T) {
	vm := load(t, 0x600A, 0xF015, 0xF107)

	steps(t, vm, 3)

	// set to 10, ticked after the set and after the read
	assert.Equal(t, byte(9), vm.V(1))
	assert.Equal(t, byte(8), vm.DelayTimer())
}

func TestIndexInstructions(t *testing.T) {
	vm := load(t, 0xA300, 0x6010, 0xF01E, 0x610B, 0xF129)

	steps(t, vm, 3)
	assert.Equal(t, uint16(0x310), vm.I())

	steps(t, vm, 2)
	assert.Equal(t, uint16(0xB*GlyphHeight), vm.I())
}

func TestStoreAndLoadRegisters(t *testing.T) {
	vm := load(t,
		0x609C, 0x6101, 0x6202, 0xA400,
		0xF033, // bcd of 156
		0xA410,
		0xF255, // save v0..v2
		0x6000, 0x6100, 0x6200, 0x63FF,
		0xF265, // load v0..v2, v3 untouched
	)

	steps(t, vm, 5)

	b, err := vm.Memory().ReadBytes(0x400, 3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 5, 6}, b)

	steps(t, vm, 7)

	b, err = vm.Memory().ReadBytes(0x410, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x9C, 0x01, 0x02, 0x00}, b)

	assert.Equal(t, byte(0x9C), vm.V(0))
	assert.Equal(t, byte(0x02), vm.V(2))
	assert.Equal(t, byte(0xFF), vm.V(3))
	assert.Equal(t, uint16(0x410), vm.I())
}

func TestDrawSprite(t *testing.T) {
	// draw glyph 0 at <62, 31> twice
	vm := load(t, 0x603E, 0x611F, 0xA000, 0xD015, 0xD015)

	steps(t, vm, 4)
	assert.Equal(t, byte(0), vm.V(VF))
	assert.True(t, vm.Screen().Pixel(62, 31))
	assert.True(t, vm.Screen().Pixel(1, 31))
	assert.True(t, vm.Screen().Pixel(62, 3))

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.V(VF))
	for _, on := range vm.Screen().Pixels() {
		assert.False(t, on)
	}
}

func TestClearScreen(t *testing.T) {
	vm := load(t, 0xA000, 0xD005, 0x00E0)

	steps(t, vm, 2)
	assert.True(t, vm.Screen().Pixel(0, 0))

	steps(t, vm, 1)
	assert.False(t, vm.Screen().Pixel(0, 0))
}

func TestRandomIsMasked(t *testing.T) {
	vm := load(t, 0xC00F, 0x1200)

	for i := 0; i < 50; i++ {
		steps(t, vm, 2)
		assert.Equal(t, byte(0), vm.V(0)&0xF0)
	}

	vm = load(t, 0xC000)
	vm.v.Write(0, 0xFF)
	steps(t, vm, 1)
	assert.Equal(t, byte(0), vm.V(0))
}

func TestUnknownOpcodeHalts(t *testing.T) {
	vm := load(t, 0x6001, 0x5121)

	steps(t, vm, 1)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	var unknown *UnknownOpcodeError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint16(0x5121), unknown.Word)
	assert.Equal(t, uint16(0x202), unknown.PC)

	assert.True(t, vm.Halted())
	assert.Equal(t, uint16(0x202), vm.PC())

	// the machine stays halted and reports why
	err = vm.Step()
	assert.True(t, errors.Is(err, ErrHalted))
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, int64(1), vm.Cycles())

	// reset brings the program back
	vm.Reset()
	assert.False(t, vm.Halted())
	assert.NoError(t, vm.Step())
}

func TestAddressErrors(t *testing.T) {
	tests := []struct {
		name  string
		words []uint16
		n     int
	}{
		{"fetch past end", []uint16{0x1FFF}, 2},
		{"sprite past end", []uint16{0xAFFE, 0xD00F}, 2},
		{"save past end", []uint16{0xAFFE, 0xFF55}, 2},
		{"load past end", []uint16{0xAFF1, 0xFF65}, 2},
		{"bcd past end", []uint16{0xAFFF, 0xF033}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := load(t, tt.words...)

			steps(t, vm, tt.n-1)
			pc := vm.PC()

			err := vm.Step()
			assert.Error(t, err)

			var addrErr *AddressError
			assert.True(t, errors.As(err, &addrErr))
			assert.True(t, vm.Halted())
			assert.Equal(t, pc, vm.PC())
		})
	}
}

func TestStackErrors(t *testing.T) {
	vm := load(t, 0x00EE)
	assert.True(t, errors.Is(vm.Step(), ErrStackUnderflow))

	// calls itself until the stack is full
	vm = load(t, 0x2200)
	steps(t, vm, StackDepth)
	assert.True(t, errors.Is(vm.Step(), ErrStackOverflow))
	assert.Equal(t, StackDepth, vm.SP())
}

func TestSysIsIgnored(t *testing.T) {
	vm := load(t, 0x0123)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestRun(t *testing.T) {
	vm := load(t, 0x7001, 0x1200)

	assert.NoError(t, vm.Run(context.Background(), 10))
	assert.Equal(t, byte(5), vm.V(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(vm.Run(ctx, 10), context.Canceled))
	assert.Equal(t, int64(10), vm.Cycles())
}

func TestTrace(t *testing.T) {
	vm, err := Load([]byte{0x60, 0x01}, WithTrace(log.NewTestLogger(t)))
	assert.NoError(t, err)
	assert.NoError(t, vm.Step())
}

func TestReset(t *testing.T) {
	vm := load(t, 0x6042, 0xA000, 0xD005, 0xF018)
	vm.Keypad().Press(1)

	steps(t, vm, 4)
	vm.Reset()

	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, byte(0), vm.V(0))
	assert.Equal(t, uint16(0), vm.I())
	assert.Equal(t, byte(0), vm.SoundTimer())
	assert.False(t, vm.Screen().Pixel(0, 0))
	assert.False(t, vm.Keypad().IsPressed(1))

	w, err := vm.Memory().ReadWord(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x6042), w)
}
