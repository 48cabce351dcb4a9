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
	"sort"
	"strings"
	"time"

	"github.com/LarsSalembier/chip-8-emulator/chip8"
)

/// Mapping of typed characters to CHIP-8 keys, same layout as the window.
///
var termKeys = map[byte]uint8{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

/// A terminal only reports key presses, so a key counts as held until
/// no repeat arrived for keyHold.
///
const keyHold = 150 * time.Millisecond

/// keyHolder tracks when each typed key should be released.
///
type keyHolder struct {
	hold  time.Duration
	until map[uint8]time.Time
}

func newKeyHolder(hold time.Duration) *keyHolder {
	return &keyHolder{
		hold:  hold,
		until: make(map[uint8]time.Time),
	}
}

/// press marks key as held from now.
///
func (h *keyHolder) press(key uint8, now time.Time) {
	h.until[key] = now.Add(h.hold)
}

/// expired removes and returns, in order, every key due for release.
///
func (h *keyHolder) expired(now time.Time) []uint8 {
	var keys []uint8

	for key, until := range h.until {
		if !now.Before(until) {
			keys = append(keys, key)
			delete(h.until, key)
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

/// renderFrame draws the screen with half-block characters, two pixel
/// rows per text line, homing the cursor first.
///
func renderFrame(s *chip8.Screen) string {
	var b strings.Builder

	b.WriteString("\x1b[H")

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := 0; x < chip8.ScreenWidth; x++ {
			top, bottom := s.Pixel(x, y), s.Pixel(x, y+1)

			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteByte(' ')
			}
		}

		b.WriteString("\r\n")
	}

	return b.String()
}

/// statusLine summarizes the machine below the frame.
///
func statusLine(emu *Emulator) string {
	state := emu.VM.State().String()
	if emu.Paused {
		state = "paused"
	}

	return fmt.Sprintf("\x1b[KPC %04X  I %04X  DT %02X  ST %02X  %d/s  %s\r\n",
		emu.VM.PC(), emu.VM.I(), emu.VM.DelayTimer(), emu.VM.SoundTimer(), emu.Speed, state)
}
