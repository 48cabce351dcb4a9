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

/// Timer is an 8-bit counter that counts down to zero, one per tick.
///
type Timer struct {
	value byte
}

/// Set the timer.
///
func (t *Timer) Set(v byte) {
	t.value = v
}

/// Get the current count.
///
func (t *Timer) Get() byte {
	return t.value
}

/// Active is true while the count is above zero.
///
func (t *Timer) Active() bool {
	return t.value > 0
}

/// Tick decrements the timer, saturating at zero. It returns true only
/// on the tick that takes the timer from 1 to 0.
///
func (t *Timer) Tick() bool {
	if t.value == 0 {
		return false
	}

	t.value--

	return t.value == 0
}
