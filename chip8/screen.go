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

const (
	/// ScreenWidth is the number of pixel columns.
	///
	ScreenWidth = 64

	/// ScreenHeight is the number of pixel rows.
	///
	ScreenHeight = 32
)

/// Screen is the 64x32 monochrome display. Each bit represents a single
/// pixel, stored MSB first: pixel <0,0> is bit 0x80 of byte 0 and each
/// row is 8 bytes wide.
///
type Screen struct {
	video [ScreenWidth * ScreenHeight / 8]byte
}

/// Clear turns every pixel off.
///
func (s *Screen) Clear() {
	s.video = [len(s.video)]byte{}
}

/// Pixel returns true if the pixel at <x,y> is on. Coordinates wrap.
///
func (s *Screen) Pixel(x, y int) bool {
	i, mask := s.locate(x, y)

	return s.video[i]&mask != 0
}

// locate the video byte and bit mask for a (wrapped) coordinate.
func (s *Screen) locate(x, y int) (int, byte) {
	x &= ScreenWidth - 1
	y &= ScreenHeight - 1

	return y*(ScreenWidth>>3) + x>>3, 0x80 >> uint(x&7)
}

/// Draw XORs an 8 pixel wide sprite onto the screen at <x,y>, wrapping
/// around both edges. It returns true if any pixel that was on got
/// turned off.
///
func (s *Screen) Draw(x, y int, sprite []byte) bool {
	collision := false

	for row, b := range sprite {
		for col := 0; col < 8; col++ {
			if b&(0x80>>uint(col)) == 0 {
				continue
			}

			i, mask := s.locate(x+col, y+row)

			// was the pixel already on?
			if s.video[i]&mask != 0 {
				collision = true
			}

			s.video[i] ^= mask
		}
	}

	return collision
}

/// Pixels returns all 2048 pixels in row-major order, row 0 first and
/// each row left to right.
///
func (s *Screen) Pixels() []bool {
	out := make([]bool, ScreenWidth*ScreenHeight)

	for p := range out {
		out[p] = s.video[p>>3]&(0x80>>uint(p&7)) != 0
	}

	return out
}
