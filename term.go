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

//go:build linux || darwin

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func enterRawTerm(fd int) (*unix.Termios, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	restore := *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	// block until at least one byte is typed
	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate); err != nil {
		return nil, err
	}

	return &restore, nil
}

func exitRawTerm(fd int, restore *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, restore)
}

// readKeys forwards every typed byte until r fails.
func readKeys(r io.Reader, keys chan<- byte) {
	defer close(keys)

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			keys <- b
		}

		if err != nil {
			return
		}
	}
}

/// runTerminal runs the emulator inside the terminal until ESC is typed,
/// the context is done or the machine halts.
///
func runTerminal(ctx context.Context, emu *Emulator) error {
	fd := int(os.Stdin.Fd())

	restore, err := enterRawTerm(fd)
	if err != nil {
		return fmt.Errorf("entering raw terminal mode: %w", err)
	}
	defer func() {
		_ = exitRawTerm(fd, restore)
	}()

	out := bufio.NewWriter(os.Stdout)

	// clear and hide the cursor, show it again on the way out
	_, _ = out.WriteString("\x1b[2J\x1b[?25l")
	defer func() {
		_, _ = out.WriteString("\x1b[?25h")
		_ = out.Flush()
	}()

	emu.OnBeep = func() {
		_ = out.WriteByte('\a')
	}

	keys := make(chan byte, 16)
	go readKeys(os.Stdin, keys)

	held := newKeyHolder(keyHold)

	clock := time.NewTicker(emu.Period())
	video := time.NewTicker(time.Second / 30)
	defer clock.Stop()
	defer video.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-keys:
			if !ok {
				return nil
			}

			if key, ok := termKeys[b|0x20]; ok {
				emu.VM.Keypad().Press(key)
				held.press(key, time.Now())
				continue
			}

			switch b {
			case 0x1B:
				return nil
			case 0x7F, 0x08:
				emu.Reset()
			case ' ':
				emu.TogglePause()
			case 'n':
				if emu.Paused {
					if err := emu.Step(); err != nil {
						return err
					}
				}
			case '[':
				emu.Slower()
				clock.Reset(emu.Period())
			case ']':
				emu.Faster()
				clock.Reset(emu.Period())
			}
		case now := <-video.C:
			for _, key := range held.expired(now) {
				emu.VM.Keypad().Release(key)
			}

			_, _ = out.WriteString(renderFrame(emu.VM.Screen()))
			_, _ = out.WriteString(statusLine(emu))

			if err := out.Flush(); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		case <-clock.C:
			if err := emu.Tick(); err != nil {
				return err
			}
		}
	}
}
