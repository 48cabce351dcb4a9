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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/LarsSalembier/chip-8-emulator/chip8"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var (
	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			usageErr.showUsage(os.Stderr)
		}
		return 2
	}

	if opts.version {
		fmt.Printf("chip8 %s\n", buildinfo.Version(version, commit, date))
		return 0
	}

	logger := createLogger(opts.debug, opts.quiet)
	ctx := app.Context()

	program, err := readProgram(&opts)
	if err != nil {
		logger.Error("Loading program failed", log.Err(err))
		return 1
	}

	if opts.disasm {
		if err := printDisassembly(os.Stdout, program); err != nil {
			logger.Error("Disassembling failed", log.Err(err))
			return 1
		}
		return 0
	}

	emu, err := NewEmulator(program, opts, logger)
	if err != nil {
		logger.Error("Starting emulator failed", log.Err(err))
		return 1
	}

	logger.Info("Running", log.String("rom", opts.rom), log.Int("speed", opts.speed))

	if opts.term {
		err = runTerminal(ctx, emu)
	} else {
		err = runWindow(ctx, emu, opts.scale)
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case emu.VM.Halted():
		// already logged along with the history
	default:
		logger.Error("Emulation failed", log.Err(err))
	}

	if !opts.term {
		dialog.Message("%s", err).Title("CHIP-8").Error()
	}

	return 1
}

/// readProgram loads the ROM bytes, asking for a file when none was
/// given and assembling the file if requested.
///
func readProgram(opts *options) ([]byte, error) {
	if opts.rom == "" {
		if opts.term {
			return nil, errors.New("no ROM given")
		}

		path, err := dialog.File().
			Title("Load CHIP-8 ROM").
			Filter("CHIP-8 ROM", "ch8", "c8").
			Filter("CHIP-8 assembly", "asm", "c8s").
			Load()
		if err != nil {
			return nil, fmt.Errorf("selecting ROM: %w", err)
		}

		opts.rom = path
	}

	b, err := os.ReadFile(opts.rom)
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", opts.rom, err)
	}

	if !opts.asm {
		return b, nil
	}

	out, err := chip8.Assemble(b)
	if err != nil {
		return nil, fmt.Errorf("assembling '%s': %w", opts.rom, err)
	}

	return out.ROM, nil
}

/// printDisassembly writes a listing of every word in program.
///
func printDisassembly(w io.Writer, program []byte) error {
	vm, err := chip8.Load(program)
	if err != nil {
		return err
	}

	for i := 0; i < len(program); i += 2 {
		if _, err := fmt.Fprintln(w, vm.Disassemble(uint16(chip8.ProgramStart+i))); err != nil {
			return err
		}
	}

	return nil
}

/// runWindow runs the emulator in an SDL window until it is closed, the
/// context is done or the machine halts.
///
func runWindow(ctx context.Context, emu *Emulator, scale int) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	w := int32(chip8.ScreenWidth*scale + 116)
	h := int32(max(chip8.ScreenHeight*scale, 22*lineHeight) + 16)

	var err error

	// create the main window and renderer
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(w, h, uint32(sdl.WINDOW_SHOWN)); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer func() {
		_ = Renderer.Destroy()
		_ = Window.Destroy()
	}()

	// set the title
	Window.SetTitle("CHIP-8")

	if err := InitScreen(); err != nil {
		return fmt.Errorf("creating screen texture: %w", err)
	}
	defer func() {
		_ = Screen.Destroy()
	}()

	// the emulator still runs without sound
	audio, err := InitAudio()
	if err != nil {
		emu.logger.Error("Audio unavailable", log.Err(err))
	} else {
		defer audio.Close()
	}

	// set processor speed and refresh rate
	clock := time.NewTicker(emu.Period())
	video := time.NewTicker(time.Second / 60)
	defer clock.Stop()
	defer video.Stop()

	speed := emu.Speed

	// loop until window closed or user quit
	for {
		running, err := ProcessEvents(emu)
		if err != nil || !running {
			return err
		}

		if speed != emu.Speed {
			speed = emu.Speed
			clock.Reset(emu.Period())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-video.C:
			if err := Refresh(emu, int32(scale)); err != nil {
				return err
			}

			if audio != nil {
				if err := audio.Update(emu.VM.SoundActive() && !emu.Paused); err != nil {
					emu.logger.Error("Queueing audio failed", log.Err(err))
				}
			}
		case <-clock.C:
			if err := emu.Tick(); err != nil {
				return err
			}
		}
	}
}

/// Refresh draws a full frame: the video memory and the register overlay.
///
func Refresh(emu *Emulator, scale int32) error {
	_ = Renderer.SetDrawColor(32, 42, 53, 255)
	_ = Renderer.Clear()

	sw := chip8.ScreenWidth * scale
	sh := chip8.ScreenHeight * scale

	// frame various portions of the app
	Frame(7, 7, sw+1, sh+1)
	Frame(sw+15, 7, 96, 22*lineHeight+2)

	// update the video screen and copy it
	if err := RefreshScreen(emu.VM.Screen()); err != nil {
		return err
	}
	if err := CopyScreen(8, 8, sw, sh); err != nil {
		return err
	}

	DebugRegisters(emu, sw+20, 12)

	// show the new frame
	Renderer.Present()

	return nil
}

/// Frame draws a sunken bevel around a region.
///
func Frame(x, y, w, h int32) {
	_ = Renderer.SetDrawColor(0, 0, 0, 255)
	_ = Renderer.DrawLine(x, y, x+w, y)
	_ = Renderer.DrawLine(x, y, x, y+h)

	// highlight
	_ = Renderer.SetDrawColor(95, 112, 120, 255)
	_ = Renderer.DrawLine(x+w, y, x+w, y+h)
	_ = Renderer.DrawLine(x, y+h, x+w, y+h)
}
