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
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint8{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the window is closed or the user quit, and any error from a
/// single step.
///
func ProcessEvents(emu *Emulator) (bool, error) {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false, nil
		case *sdl.KeyboardEvent:
			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				emu.VM.Keypad().SetPressed(key, ev.Type == sdl.KEYDOWN)
				continue
			}

			// control keys act on press only
			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return false, nil
			case sdl.SCANCODE_BACKSPACE:
				emu.Reset()

				// holding control during reset will reboot paused
				if ev.Keysym.Mod&sdl.KMOD_CTRL != 0 {
					emu.Paused = true
				}
			case sdl.SCANCODE_H:
				DebugHelp(emu.logger)
			case sdl.SCANCODE_LEFTBRACKET:
				emu.Slower()
			case sdl.SCANCODE_RIGHTBRACKET:
				emu.Faster()
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				emu.TogglePause()
			case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
				if emu.Paused {
					if err := emu.Step(); err != nil {
						return false, err
					}
				}
			case sdl.SCANCODE_F8:
				emu.DumpDisassembly()
			}
		}
	}

	return true, nil
}
