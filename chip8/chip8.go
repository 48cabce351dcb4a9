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
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// State of the CPU between steps.
///
type State int

const (
	Running State = iota
	WaitingForKey
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

/// CPU is the CHIP-8 virtual machine. It owns memory, registers, stack,
/// timers, screen and keypad, and advances them one instruction per Step.
///
type CPU struct {
	/// rom is the pristine program, reloaded on Reset.
	///
	rom []byte

	memory *Memory
	v      Registers
	stack  Stack
	screen Screen
	keypad Keypad

	// the delay and sound timers tick once per step
	delay Timer
	sound Timer

	/// PC is the program counter. All programs begin at 0x200.
	///
	pc uint16

	/// I is the address register.
	///
	i uint16

	/// opcode is the last instruction word fetched.
	///
	opcode uint16

	state State
	err   error

	/// cycles is how many steps have completed.
	///
	cycles int64

	// set when the last step took the sound timer from 1 to 0
	beeped bool

	rand  *rand.Rand
	trace *log.Logger
	beep  func()
}

/// Option configures a new CPU.
///
type Option func(*CPU)

/// WithRand sets the random source used by RND.
///
func WithRand(r *rand.Rand) Option {
	return func(vm *CPU) {
		vm.rand = r
	}
}

/// WithTrace logs every executed instruction at debug level.
///
func WithTrace(logger *log.Logger) Option {
	return func(vm *CPU) {
		vm.trace = logger
	}
}

/// WithBeep registers a callback run when the sound timer reaches 0.
///
func WithBeep(fn func()) Option {
	return func(vm *CPU) {
		vm.beep = fn
	}
}

/// New creates a CHIP-8 virtual machine with empty program memory.
///
func New(opts ...Option) *CPU {
	vm := &CPU{
		memory: NewMemory(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	// seed the random number generator
	if vm.rand == nil {
		seed := uint64(time.Now().UTC().UnixNano())
		vm.rand = rand.New(rand.NewPCG(seed, seed>>32))
	}

	vm.Reset()

	return vm
}

/// Load a ROM and return a new CHIP-8 virtual machine.
///
func Load(program []byte, opts ...Option) (*CPU, error) {
	vm := New(opts...)

	if err := vm.LoadProgram(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// LoadProgram replaces the program and resets the machine.
///
func (vm *CPU) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("loading %d bytes: %w", len(program), ErrProgramTooLarge)
	}

	vm.rom = append([]byte(nil), program...)
	vm.Reset()

	return nil
}

/// Reset the CHIP-8 virtual machine to the freshly loaded program.
///
func (vm *CPU) Reset() {
	vm.memory.Reset()

	// the program was validated when it was loaded
	_ = vm.memory.LoadProgram(vm.rom)

	vm.v = Registers{}
	vm.stack.Reset()
	vm.screen.Clear()
	vm.keypad.Reset()
	vm.delay.Set(0)
	vm.sound.Set(0)

	// reset program counter and address register
	vm.pc = ProgramStart
	vm.i = 0
	vm.opcode = 0

	vm.state = Running
	vm.err = nil
	vm.cycles = 0
	vm.beeped = false
}

/// Run executes up to n steps, stopping at the first error or when ctx
/// is done.
///
func (vm *CPU) Run(ctx context.Context, n int) error {
	for ; n > 0; n-- {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := vm.Step(); err != nil {
			return err
		}
	}

	return nil
}

/// Step the CHIP-8 virtual machine a single instruction: fetch, decode,
/// execute, then tick both timers. Any error halts the machine.
///
func (vm *CPU) Step() error {
	if vm.state == Halted {
		return fmt.Errorf("%w: %w", ErrHalted, vm.err)
	}

	// fetch the next instruction
	inst, err := vm.memory.ReadWord(vm.pc)
	if err != nil {
		return vm.halt(fmt.Errorf("fetching instruction: %w", err))
	}

	vm.opcode = inst

	ins, err := Decode(inst)
	if err != nil {
		var unknown *UnknownOpcodeError
		if errors.As(err, &unknown) {
			unknown.PC = vm.pc
		}

		return vm.halt(err)
	}

	if vm.trace != nil {
		vm.trace.Debug("exec",
			log.Hex("pc", vm.pc),
			log.Hex("opcode", inst),
			log.String("mnemonic", Mnemonic(inst)),
			log.String("asm", ins.String()))
	}

	if err := vm.execute(ins); err != nil {
		return vm.halt(fmt.Errorf("executing %s at #%04X: %w", ins, vm.pc, err))
	}

	// timers tick exactly once per step, even while waiting for a key
	vm.delay.Tick()
	vm.beeped = vm.sound.Tick()

	if vm.beeped && vm.beep != nil {
		vm.beep()
	}

	// increment the cycle count
	vm.cycles++

	return nil
}

func (vm *CPU) halt(err error) error {
	vm.state = Halted
	vm.err = err

	return err
}

/// PC returns the program counter.
///
func (vm *CPU) PC() uint16 { return vm.pc }

/// I returns the address register.
///
func (vm *CPU) I() uint16 { return vm.i }

/// V returns register Vx.
///
func (vm *CPU) V(x uint8) byte { return vm.v.Read(x & 0xF) }

/// SP returns the number of return addresses on the stack.
///
func (vm *CPU) SP() int { return vm.stack.Len() }

/// Opcode returns the last instruction word fetched.
///
func (vm *CPU) Opcode() uint16 { return vm.opcode }

/// DelayTimer returns the delay timer count.
///
func (vm *CPU) DelayTimer() byte { return vm.delay.Get() }

/// SoundTimer returns the sound timer count.
///
func (vm *CPU) SoundTimer() byte { return vm.sound.Get() }

/// SoundActive is true while the tone should be playing.
///
func (vm *CPU) SoundActive() bool { return vm.sound.Active() }

/// Beeped is true if the last step took the sound timer from 1 to 0.
///
func (vm *CPU) Beeped() bool { return vm.beeped }

/// State returns the current execution state.
///
func (vm *CPU) State() State { return vm.state }

/// Halted is true once an error has stopped the machine.
///
func (vm *CPU) Halted() bool { return vm.state == Halted }

/// Err returns the reason the machine halted, or nil.
///
func (vm *CPU) Err() error { return vm.err }

/// Cycles returns how many steps completed.
///
func (vm *CPU) Cycles() int64 { return vm.cycles }

/// Screen returns the display.
///
func (vm *CPU) Screen() *Screen { return &vm.screen }

/// Keypad returns the key pad fed by the frontend.
///
func (vm *CPU) Keypad() *Keypad { return &vm.keypad }

/// Memory returns the machine memory.
///
func (vm *CPU) Memory() *Memory { return vm.memory }
