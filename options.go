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
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	/// Steps per second the emulator starts at.
	///
	defaultSpeed = 500

	/// Speed bounds for the [ and ] keys.
	///
	minSpeed = 50
	maxSpeed = 5000

	/// Amount the speed changes per key press.
	///
	speedStep = 50
)

/// options parsed from the command line.
///
type options struct {
	rom   string
	speed int
	scale int

	term   bool
	asm    bool
	disasm bool
	paused bool

	debug   bool
	trace   bool
	quiet   bool
	version bool
}

/// usageError is returned for invocations that should print the usage.
///
type usageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *usageError) Error() string {
	return e.msg
}

/// showUsage writes the usage line and every flag default.
///
func (e *usageError) showUsage(w io.Writer) {
	if e.msg != "" {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}

	fmt.Fprintf(w, "usage: chip8 [options] [rom]\n\n")

	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

/// parseOptions reads the flags and optional ROM path from args.
///
func parseOptions(args []string) (options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := options{}

	flags.StringVar(&opts.rom, "rom", "", "name of the ROM file to load, a file dialog opens if none is given")
	flags.IntVar(&opts.speed, "speed", defaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.term, "term", false, "run in the terminal instead of a window")
	flags.BoolVar(&opts.asm, "asm", false, "assemble the input file before running it")
	flags.BoolVar(&opts.disasm, "disasm", false, "print the disassembled ROM and exit")
	flags.BoolVar(&opts.paused, "paused", false, "start with emulation paused")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		return opts, &usageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		if opts.rom != "" {
			return opts, &usageError{flags: flags, msg: "ROM given twice"}
		}
		opts.rom = rest[0]
	default:
		return opts, &usageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected arguments: %s", strings.Join(rest[1:], " ")),
		}
	}

	if opts.speed < minSpeed || opts.speed > maxSpeed {
		return opts, &usageError{
			flags: flags,
			msg:   fmt.Sprintf("speed must be between %d and %d", minSpeed, maxSpeed),
		}
	}

	if opts.scale < 1 {
		return opts, &usageError{flags: flags, msg: "scale must be positive"}
	}

	if opts.trace {
		opts.debug = true
	}

	return opts, nil
}
