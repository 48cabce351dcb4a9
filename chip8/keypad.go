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

/// KeyCount is the number of keys on the hex keypad.
///
const KeyCount = 16

/// Keypad holds the current state for the 16-key pad keys.
///
type Keypad struct {
	keys [KeyCount]bool
}

/// SetPressed sets the state of a key. Keys outside 0-F are ignored.
///
func (k *Keypad) SetPressed(key uint8, pressed bool) {
	if key < KeyCount {
		k.keys[key] = pressed
	}
}

/// Press emulates a CHIP-8 key being pressed.
///
func (k *Keypad) Press(key uint8) {
	k.SetPressed(key, true)
}

/// Release emulates a CHIP-8 key being released.
///
func (k *Keypad) Release(key uint8) {
	k.SetPressed(key, false)
}

/// IsPressed reports whether key is down. Keys outside 0-F never are.
///
func (k *Keypad) IsPressed(key uint8) bool {
	return key < KeyCount && k.keys[key]
}

/// AnyPressed returns the lowest pressed key, scanning 0 to F.
///
func (k *Keypad) AnyPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}

	return 0, false
}

/// Reset releases every key.
///
func (k *Keypad) Reset() {
	k.keys = [KeyCount]bool{}
}
