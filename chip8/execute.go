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

/// Execute a decoded instruction. Jumps, calls and returns set the PC
/// absolutely; everything else advances it by 2, or 4 when skipping.
/// Nothing is mutated when an error is returned.
///
func (vm *CPU) execute(ins Instruction) error {
	next := vm.pc + 2

	switch op := ins.(type) {
	case Cls:
		vm.screen.Clear()
	case Ret:
		addr, err := vm.stack.Pop()
		if err != nil {
			return err
		}
		next = addr
	case Sys:
		// there is no RCA 1802 to call into
	case Jump:
		next = op.Addr
	case Call:
		if err := vm.stack.Push(next); err != nil {
			return err
		}
		next = op.Addr
	case SkipIf:
		next += vm.skip(vm.v.Read(op.X) == op.Byte)
	case SkipIfNot:
		next += vm.skip(vm.v.Read(op.X) != op.Byte)
	case SkipIfXY:
		next += vm.skip(vm.v.Read(op.X) == vm.v.Read(op.Y))
	case SkipIfNotXY:
		next += vm.skip(vm.v.Read(op.X) != vm.v.Read(op.Y))
	case LoadX:
		vm.v.Write(op.X, op.Byte)
	case AddX:
		vm.v.AddImmediate(op.X, op.Byte)
	case LoadXY:
		vm.v.Copy(op.X, op.Y)
	case Or:
		vm.v.Or(op.X, op.Y)
	case And:
		vm.v.And(op.X, op.Y)
	case Xor:
		vm.v.Xor(op.X, op.Y)
	case AddXY:
		vm.v.AddWithCarry(op.X, op.Y)
	case SubXY:
		vm.v.SubWithBorrow(op.X, op.Y)
	case Shr:
		vm.v.ShiftRight(op.X)
	case SubYX:
		vm.v.SubReversed(op.X, op.Y)
	case Shl:
		vm.v.ShiftLeft(op.X)
	case LoadI:
		vm.i = op.Addr
	case JumpV0:
		next = op.Addr + uint16(vm.v.Read(0))
	case Rnd:
		vm.v.Write(op.X, byte(vm.rand.UintN(0x100))&op.Byte)
	case Drw:
		return vm.drw(op, next)
	case SkipIfPressed:
		next += vm.skip(vm.keypad.IsPressed(vm.v.Read(op.X)))
	case SkipIfNotPressed:
		next += vm.skip(!vm.keypad.IsPressed(vm.v.Read(op.X)))
	case LoadXDT:
		vm.v.Write(op.X, vm.delay.Get())
	case LoadXK:
		next = vm.loadXK(op.X, next)
	case LoadDTX:
		vm.delay.Set(vm.v.Read(op.X))
	case LoadSTX:
		vm.sound.Set(vm.v.Read(op.X))
	case AddIX:
		vm.i += uint16(vm.v.Read(op.X))
	case LoadF:
		vm.i = uint16(vm.v.Read(op.X)) * GlyphHeight
	case LoadB:
		if err := vm.memory.StoreBCD(vm.i, vm.v.Read(op.X)); err != nil {
			return err
		}
	case SaveRegs:
		if err := vm.memory.WriteBytes(vm.i, vm.v.Slice(op.X)); err != nil {
			return err
		}
	case LoadRegs:
		b, err := vm.memory.ReadBytes(vm.i, int(op.X)+1)
		if err != nil {
			return err
		}
		vm.v.Load(b)
	}

	vm.pc = next

	return nil
}

// skip returns the extra PC advance for a conditional skip.
func (vm *CPU) skip(cond bool) uint16 {
	if cond {
		return 2
	}

	return 0
}

/// draw a sprite at I to video memory at vx, vy and set the collision
/// flag.
///
func (vm *CPU) drw(op Drw, next uint16) error {
	sprite, err := vm.memory.ReadBytes(vm.i, int(op.N))
	if err != nil {
		return err
	}

	x := int(vm.v.Read(op.X))
	y := int(vm.v.Read(op.Y))

	vm.v.Write(VF, flag(vm.screen.Draw(x, y, sprite)))
	vm.pc = next

	return nil
}

/// load vx with the next key hit. While no key is down the PC stays put
/// so the instruction runs again on the next step.
///
func (vm *CPU) loadXK(x uint8, next uint16) uint16 {
	key, ok := vm.keypad.AnyPressed()
	if !ok {
		vm.state = WaitingForKey
		return vm.pc
	}

	vm.v.Write(x, key)
	vm.state = Running

	return next
}
