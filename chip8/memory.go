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
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramStart is where every ROM is loaded and where the PC begins.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest ROM that fits after ProgramStart.
	///
	MaxProgramSize = MemorySize - ProgramStart

	/// GlyphHeight is the number of bytes (rows) per font glyph.
	///
	GlyphHeight = 5
)

// glyphs are the 16 hex digit sprites stored at address 0.
var glyphs = [16 * GlyphHeight]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

/// Glyph returns the 5 rows of the built-in sprite for hex digit n.
///
func Glyph(n byte) []byte {
	i := int(n&0xF) * GlyphHeight

	return glyphs[i : i+GlyphHeight]
}

/// Memory is the 4K byte store addressable by CHIP-8. The first 512
/// bytes hold the font glyphs, programs are loaded at 0x200.
///
type Memory struct {
	data [MemorySize]byte
}

/// NewMemory returns memory seeded with the font glyphs.
///
func NewMemory() *Memory {
	m := &Memory{}
	m.Reset()

	return m
}

/// Reset zeroes memory and seeds the font glyphs again.
///
func (m *Memory) Reset() {
	m.data = [MemorySize]byte{}

	// font sprites live at the very start of memory
	copy(m.data[:], glyphs[:])
}

// check validates the whole range [addr, addr+n) before any access.
func check(addr uint16, n int) error {
	if n < 0 || int(addr)+n > MemorySize {
		return &AddressError{Address: addr, Length: n}
	}

	return nil
}

/// ReadByte returns the byte at addr.
///
func (m *Memory) ReadByte(addr uint16) (byte, error) {
	if err := check(addr, 1); err != nil {
		return 0, err
	}

	return m.data[addr], nil
}

/// ReadBytes returns a copy of n bytes starting at addr.
///
func (m *Memory) ReadBytes(addr uint16, n int) ([]byte, error) {
	if err := check(addr, n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, m.data[addr:])

	return out, nil
}

/// ReadWord returns the big-endian 16-bit word at addr.
///
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if err := check(addr, 2); err != nil {
		return 0, err
	}

	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

/// WriteByte stores v at addr.
///
func (m *Memory) WriteByte(addr uint16, v byte) error {
	if err := check(addr, 1); err != nil {
		return err
	}

	m.data[addr] = v

	return nil
}

/// WriteBytes stores values starting at addr. Nothing is written unless
/// the entire range is addressable.
///
func (m *Memory) WriteBytes(addr uint16, values []byte) error {
	if err := check(addr, len(values)); err != nil {
		return err
	}

	copy(m.data[addr:], values)

	return nil
}

/// StoreBCD writes the hundreds, tens and ones digits of v to addr,
/// addr+1 and addr+2.
///
func (m *Memory) StoreBCD(addr uint16, v byte) error {
	return m.WriteBytes(addr, []byte{v / 100, v / 10 % 10, v % 10})
}

/// LoadProgram copies a ROM into memory at ProgramStart.
///
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return ErrProgramTooLarge
	}

	return m.WriteBytes(ProgramStart, program)
}

/// Bytes returns a read-only view of all of memory. The slice is only
/// valid until the next mutation.
///
func (m *Memory) Bytes() []byte {
	return m.data[:]
}
