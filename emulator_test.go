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

package main

import (
	"errors"
	"testing"
	"time"

	"github.com/LarsSalembier/chip-8-emulator/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestEmulator(t *testing.T, program []byte, opts options) *Emulator {
	t.Helper()

	if opts.speed == 0 {
		opts.speed = defaultSpeed
	}

	emu, err := NewEmulator(program, opts, log.NewTestLogger(t))
	assert.NoError(t, err)

	return emu
}

func TestEmulatorPaused(t *testing.T) {
	emu := newTestEmulator(t, []byte{0x70, 0x01, 0x12, 0x00}, options{paused: true})

	assert.NoError(t, emu.Tick())
	assert.Equal(t, int64(0), emu.VM.Cycles())

	// single stepping still works while paused
	assert.NoError(t, emu.Step())
	assert.Equal(t, byte(1), emu.VM.V(0))

	emu.TogglePause()
	assert.NoError(t, emu.Tick())
	assert.Equal(t, int64(2), emu.VM.Cycles())
}

func TestEmulatorHistory(t *testing.T) {
	emu := newTestEmulator(t, []byte{0x60, 0x05, 0x71, 0x02, 0x12, 0x00}, options{trace: true})

	for i := 0; i < 4; i++ {
		assert.NoError(t, emu.Step())
	}

	assert.Equal(t, []string{
		"0200 - LD     V0, #05",
		"0202 - ADD    V1, #02",
		"0204 - JP     #0200",
		"0200 - LD     V0, #05",
	}, emu.History.Lines())

	emu.Reset()
	assert.Equal(t, 0, emu.History.Len())
	assert.Equal(t, byte(0), emu.VM.V(1))
}

func TestEmulatorHalt(t *testing.T) {
	emu := newTestEmulator(t, []byte{0x60, 0x05, 0xFF, 0xFF}, options{})

	assert.NoError(t, emu.Step())

	err := emu.Step()
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
	assert.True(t, emu.VM.Halted())
	assert.Equal(t, 2, emu.History.Len())

	// further steps keep reporting the halt without executing
	assert.True(t, errors.Is(emu.Tick(), chip8.ErrUnknownOpcode))
	assert.Equal(t, 2, emu.History.Len())
}

func TestEmulatorBeep(t *testing.T) {
	emu := newTestEmulator(t, []byte{0x60, 0x01, 0xF0, 0x18, 0x12, 0x04}, options{})

	beeps := 0
	emu.OnBeep = func() { beeps++ }

	for i := 0; i < 5; i++ {
		assert.NoError(t, emu.Step())
	}

	assert.Equal(t, 1, beeps)
}

func TestEmulatorSpeed(t *testing.T) {
	emu := newTestEmulator(t, nil, options{speed: 500})
	assert.Equal(t, 2*time.Millisecond, emu.Period())

	emu.Faster()
	assert.Equal(t, 500+speedStep, emu.Speed)

	emu.Speed = maxSpeed
	emu.Faster()
	assert.Equal(t, maxSpeed, emu.Speed)

	emu.Speed = minSpeed
	emu.Slower()
	assert.Equal(t, minSpeed, emu.Speed)
}

func TestEmulatorTooLarge(t *testing.T) {
	_, err := NewEmulator(make([]byte, chip8.MaxProgramSize+1), options{speed: defaultSpeed}, log.NewTestLogger(t))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
}

func TestDumpDisassembly(t *testing.T) {
	emu := newTestEmulator(t, []byte{0x60, 0x05}, options{})
	emu.DumpDisassembly()
}
