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

/// StackDepth is the number of return addresses the stack can hold.
///
const StackDepth = 16

/// Stack of subroutine return addresses.
///
type Stack struct {
	values [StackDepth]uint16

	// pointer is the next free slot, in [0, StackDepth]
	pointer int
}

/// Push a return address.
///
func (s *Stack) Push(addr uint16) error {
	if s.pointer == StackDepth {
		return ErrStackOverflow
	}

	s.values[s.pointer] = addr
	s.pointer++

	return nil
}

/// Pop the most recently pushed return address.
///
func (s *Stack) Pop() (uint16, error) {
	if s.pointer == 0 {
		return 0, ErrStackUnderflow
	}

	s.pointer--

	return s.values[s.pointer], nil
}

/// Len returns how many addresses are on the stack.
///
func (s *Stack) Len() int {
	return s.pointer
}

/// Reset empties the stack.
///
func (s *Stack) Reset() {
	*s = Stack{}
}
