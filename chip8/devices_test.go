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
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStack(t *testing.T) {
	var s Stack

	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := 0; i < StackDepth; i++ {
		assert.NoError(t, s.Push(uint16(0x200+i*2)))
	}
	assert.Equal(t, StackDepth, s.Len())

	err = s.Push(0x300)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackDepth, s.Len())

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200+(StackDepth-1)*2), addr)

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestTimerSaturates(t *testing.T) {
	var timer Timer

	assert.False(t, timer.Tick())
	assert.Equal(t, byte(0), timer.Get())

	timer.Set(3)
	assert.True(t, timer.Active())
	timer.Tick()
	assert.Equal(t, byte(2), timer.Get())
}

func TestTimerBeepEdge(t *testing.T) {
	tests := []struct {
		name  string
		start byte
		ticks int
		beeps []bool
	}{
		{"one tick from 1", 1, 1, []bool{true}},
		{"two ticks from 2", 2, 2, []bool{false, true}},
		{"extra ticks stay silent", 1, 3, []bool{true, false, false}},
		{"zero never beeps", 0, 2, []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var timer Timer
			timer.Set(tt.start)

			for i := 0; i < tt.ticks; i++ {
				assert.Equal(t, tt.beeps[i], timer.Tick())
			}
			assert.False(t, timer.Active())
		})
	}
}

func TestScreenDrawTwiceRestores(t *testing.T) {
	var s Screen
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

	before := s.Pixels()

	assert.False(t, s.Draw(10, 5, sprite))
	assert.True(t, s.Pixel(10, 5))
	assert.True(t, s.Pixel(13, 5))
	assert.False(t, s.Pixel(14, 5))
	assert.False(t, s.Pixel(11, 6))

	assert.True(t, s.Draw(10, 5, sprite))
	assert.Equal(t, before, s.Pixels())
}

func TestScreenCollisionIsAccumulated(t *testing.T) {
	var s Screen

	s.Draw(0, 0, []byte{0x80})

	// the overlap is on the first row, later rows must not reset it
	assert.True(t, s.Draw(0, 0, []byte{0x80, 0x40, 0x20}))
	assert.False(t, s.Pixel(0, 0))
	assert.True(t, s.Pixel(1, 1))
	assert.True(t, s.Pixel(2, 2))
}

func TestScreenWraparound(t *testing.T) {
	var s Screen

	assert.False(t, s.Draw(60, 30, []byte{0xFF, 0xFF, 0xFF}))

	for _, row := range []int{30, 31, 0} {
		for _, col := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
			assert.True(t, s.Pixel(col, row))
		}
		assert.False(t, s.Pixel(4, row))
		assert.False(t, s.Pixel(59, row))
	}
	assert.False(t, s.Pixel(60, 1))
}

func TestScreenPixelsRowMajor(t *testing.T) {
	var s Screen

	s.Draw(1, 0, []byte{0x80})
	s.Draw(0, 1, []byte{0x80})
	s.Draw(63, 31, []byte{0x80})

	p := s.Pixels()
	assert.Len(t, p, ScreenWidth*ScreenHeight)
	assert.True(t, p[1])
	assert.True(t, p[ScreenWidth])
	assert.True(t, p[len(p)-1])
	assert.False(t, p[0])

	s.Clear()
	for _, on := range s.Pixels() {
		assert.False(t, on)
	}
}

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.AnyPressed()
	assert.False(t, ok)

	k.Press(0xC)
	k.Press(0x3)

	key, ok := k.AnyPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x3), key)

	k.Release(0x3)
	key, _ = k.AnyPressed()
	assert.Equal(t, uint8(0xC), key)

	// out of range keys are ignored
	k.Press(0x10)
	assert.False(t, k.IsPressed(0x10))

	k.Reset()
	assert.False(t, k.IsPressed(0xC))
}
