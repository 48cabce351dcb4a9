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

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// Pixel size of overlay text.
///
const textSize = 2

/// Vertical distance between overlay lines.
///
const lineHeight = 7 * textSize

/// Show the HELP text in the log.
///
func DebugHelp(logger *log.Logger) {
	for _, line := range []string{
		"Virtual keys:",
		"  1-2-3-4",
		"  Q-W-E-R",
		"  A-S-D-F",
		"  Z-X-C-V",
		"Emulation keys:",
		"  ESC      - Quit",
		"  BS       - Reboot",
		"  SPACE/F5 - Pause",
		"  F6/F10   - Step",
		"  F8       - Disassemble around PC",
		"  [ ]      - Slower/faster",
		"  H        - Help",
	} {
		logger.Info(line)
	}
}

/// registerLines formats the register overlay, restricted to characters
/// the overlay font can draw.
///
func registerLines(emu *Emulator) []string {
	vm := emu.VM
	lines := make([]string, 0, 22)

	for i := uint8(0); i < 16; i++ {
		lines = append(lines, fmt.Sprintf("V%X %02X", i, vm.V(i)))
	}

	return append(lines,
		"",
		fmt.Sprintf("PC %04X", vm.PC()),
		fmt.Sprintf("I  %04X", vm.I()),
		fmt.Sprintf("SP %X", vm.SP()),
		fmt.Sprintf("DT %02X", vm.DelayTimer()),
		fmt.Sprintf("ST %02X", vm.SoundTimer()),
	)
}

/// DebugRegisters shows the current value of all the CHIP-8 registers.
///
func DebugRegisters(emu *Emulator, x, y int32) {
	if emu.Paused {
		_ = Renderer.SetDrawColor(176, 32, 57, 255)
	} else {
		_ = Renderer.SetDrawColor(95, 112, 120, 255)
	}

	// highlight the program counter line
	_ = Renderer.FillRect(&sdl.Rect{
		X: x - 2,
		Y: y + 17*lineHeight - 2,
		W: 7 * 5 * textSize,
		H: lineHeight,
	})

	_ = Renderer.SetDrawColor(220, 220, 210, 255)

	for _, line := range registerLines(emu) {
		DrawText(line, x, y, textSize)

		y += lineHeight
	}
}
