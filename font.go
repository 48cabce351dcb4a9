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
	"github.com/LarsSalembier/chip-8-emulator/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Letters the overlay needs beyond the hex digits, in the same 4x5
/// layout as the machine's font.
///
var letters = map[rune][]byte{
	'I': {0xE0, 0x40, 0x40, 0x40, 0xE0},
	'K': {0x90, 0xA0, 0xC0, 0xA0, 0x90},
	'P': {0xE0, 0x90, 0xE0, 0x80, 0x80},
	'S': {0xF0, 0x80, 0xF0, 0x10, 0xF0},
	'T': {0xF0, 0x40, 0x40, 0x40, 0x40},
	'V': {0x90, 0x90, 0x90, 0x60, 0x60},
	'-': {0x00, 0x00, 0xF0, 0x00, 0x00},
}

/// glyph returns the 4x5 bitmap for c, nil if it has none.
///
func glyph(c rune) []byte {
	switch {
	case c >= '0' && c <= '9':
		return chip8.Glyph(byte(c - '0'))
	case c >= 'A' && c <= 'F':
		return chip8.Glyph(byte(c-'A') + 10)
	}

	return letters[c]
}

/// DrawText using the machine glyphs, each pixel drawn as a size x size
/// square. Characters without a glyph are drawn as spaces.
///
func DrawText(s string, x, y, size int32) {
	px := sdl.Rect{W: size, H: size}

	// loop over all the characters in the string
	for _, c := range s {
		for row, bits := range glyph(c) {
			for col := int32(0); col < 4; col++ {
				if bits&(0x80>>col) != 0 {
					px.X = x + col*size
					px.Y = y + int32(row)*size

					_ = Renderer.FillRect(&px)
				}
			}
		}

		// advance
		x += 5 * size
	}
}
