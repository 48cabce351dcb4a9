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

/// VF is the index of the flag register. Carry, borrow, collision and
/// shifted-out bits are written here as side effects.
///
const VF = 0xF

/// Registers are the 16 general purpose 8-bit V registers. Indices come
/// from 4-bit instruction fields and are never range checked.
///
type Registers [16]byte

/// Read returns Vx.
///
func (r *Registers) Read(x uint8) byte {
	return r[x]
}

/// Write stores v into Vx.
///
func (r *Registers) Write(x uint8, v byte) {
	r[x] = v
}

/// Copy loads Vy into Vx.
///
func (r *Registers) Copy(x, y uint8) {
	r[x] = r[y]
}

/// Slice returns a copy of V0..Vx inclusive.
///
func (r *Registers) Slice(x uint8) []byte {
	out := make([]byte, int(x)+1)
	copy(out, r[:])

	return out
}

/// Load fills V0.. with values.
///
func (r *Registers) Load(values []byte) {
	copy(r[:], values)
}

/// AddImmediate adds b to Vx, wrapping, without touching VF.
///
func (r *Registers) AddImmediate(x uint8, b byte) {
	r[x] += b
}

/// AddWithCarry adds Vy to Vx. VF is 1 when the sum overflowed.
///
func (r *Registers) AddWithCarry(x, y uint8) {
	sum := uint16(r[x]) + uint16(r[y])

	// the flag is written last, so it wins when x is VF
	r[x] = byte(sum)
	r[VF] = flag(sum > 0xFF)
}

/// SubWithBorrow subtracts Vy from Vx. VF is 1 when there was NO borrow.
///
func (r *Registers) SubWithBorrow(x, y uint8) {
	a, b := r[x], r[y]

	r[x] = a - b
	r[VF] = flag(a >= b)
}

/// SubReversed stores Vy - Vx in Vx. VF is 1 when there was NO borrow.
///
func (r *Registers) SubReversed(x, y uint8) {
	a, b := r[x], r[y]

	r[x] = b - a
	r[VF] = flag(b >= a)
}

/// ShiftRight shifts Vx right 1 bit. VF is set to the LSB shifted out
/// before Vx is written.
///
func (r *Registers) ShiftRight(x uint8) {
	v := r[x]

	r[VF] = v & 1
	r[x] = v >> 1
}

/// ShiftLeft shifts Vx left 1 bit. VF is set to the MSB shifted out
/// before Vx is written.
///
func (r *Registers) ShiftLeft(x uint8) {
	v := r[x]

	r[VF] = v >> 7
	r[x] = v << 1
}

/// Or stores Vx | Vy in Vx.
///
func (r *Registers) Or(x, y uint8) {
	r[x] |= r[y]
}

/// And stores Vx & Vy in Vx.
///
func (r *Registers) And(x, y uint8) {
	r[x] &= r[y]
}

/// Xor stores Vx ^ Vy in Vx.
///
func (r *Registers) Xor(x, y uint8) {
	r[x] ^= r[y]
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
