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
	"fmt"
	"time"

	"github.com/LarsSalembier/chip-8-emulator/chip8"
	"github.com/retroenv/retrogolib/log"
)

/// Number of executed instructions kept for the halt dump.
///
const historySize = 32

/// Emulator wraps the virtual machine with the state shared by both
/// frontends: speed, pause and the instruction history.
///
type Emulator struct {
	VM *chip8.CPU

	/// History of the instructions executed before the current one.
	///
	History *History

	/// Speed in instructions per second.
	///
	Speed int

	/// True if pausing emulation (single stepping).
	///
	Paused bool

	/// OnBeep is called by the frontend when the sound timer expires.
	///
	OnBeep func()

	logger *log.Logger
}

/// NewEmulator creates a virtual machine running program.
///
func NewEmulator(program []byte, opts options, logger *log.Logger) (*Emulator, error) {
	emu := &Emulator{
		History: NewHistory(historySize),
		Speed:   opts.speed,
		Paused:  opts.paused,
		logger:  logger,
	}

	vmOpts := []chip8.Option{
		chip8.WithBeep(emu.beep),
	}

	if opts.trace {
		vmOpts = append(vmOpts, chip8.WithTrace(logger))
	}

	vm, err := chip8.Load(program, vmOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	emu.VM = vm

	return emu, nil
}

func (emu *Emulator) beep() {
	emu.logger.Debug("beep", log.Hex("pc", emu.VM.PC()))

	if emu.OnBeep != nil {
		emu.OnBeep()
	}
}

/// Step a single instruction, recording it in the history. A halt is
/// logged along with the history and returned.
///
func (emu *Emulator) Step() error {
	if emu.VM.Halted() {
		return emu.VM.Err()
	}

	emu.History.Add(emu.VM.Disassemble(emu.VM.PC()))

	err := emu.VM.Step()
	if err == nil {
		return nil
	}

	emu.logger.Error("machine halted",
		log.Hex("pc", emu.VM.PC()),
		log.Hex("opcode", emu.VM.Opcode()),
		log.Err(err))
	emu.History.Dump(emu.logger)

	return err
}

/// Tick is called by the clock; it steps unless paused.
///
func (emu *Emulator) Tick() error {
	if emu.Paused {
		return nil
	}

	return emu.Step()
}

/// Period between clock ticks at the current speed.
///
func (emu *Emulator) Period() time.Duration {
	return time.Second / time.Duration(emu.Speed)
}

/// Faster raises the speed by one step, clamped.
///
func (emu *Emulator) Faster() {
	emu.Speed = min(emu.Speed+speedStep, maxSpeed)
	emu.logger.Info("speed", log.Int("steps_per_second", emu.Speed))
}

/// Slower lowers the speed by one step, clamped.
///
func (emu *Emulator) Slower() {
	emu.Speed = max(emu.Speed-speedStep, minSpeed)
	emu.logger.Info("speed", log.Int("steps_per_second", emu.Speed))
}

/// TogglePause flips between running and single stepping.
///
func (emu *Emulator) TogglePause() {
	emu.Paused = !emu.Paused
}

/// Reset reboots the loaded program.
///
func (emu *Emulator) Reset() {
	emu.VM.Reset()
	emu.History.Clear()

	emu.logger.Info("reset")
}

/// DumpDisassembly logs the instructions around the PC.
///
func (emu *Emulator) DumpDisassembly() {
	pc := emu.VM.PC()

	start := uint16(chip8.ProgramStart)
	if pc >= start+16 {
		start = pc - 16
	}

	for addr := start; addr < pc+16 && addr < chip8.MemorySize-1; addr += 2 {
		marker := " "
		if addr == pc {
			marker = ">"
		}

		emu.logger.Info(marker + emu.VM.Disassemble(addr))
	}
}
