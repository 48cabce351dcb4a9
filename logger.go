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
	"github.com/retroenv/retrogolib/log"
)

// createLogger builds the process logger for the requested verbosity.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()

	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}

// History keeps the most recently executed instructions so they can be
// dumped when the machine halts.
type History struct {
	// buf is a ring of disassembled lines.
	buf []string

	// pos is where the next line is written.
	pos int

	// full is set once the ring has wrapped.
	full bool
}

// NewHistory creates a History holding up to n lines.
func NewHistory(n int) *History {
	if n < 1 {
		n = 1
	}

	return &History{
		buf: make([]string, n),
	}
}

// Add records a new line, dropping the oldest once full.
func (h *History) Add(s string) {
	h.buf[h.pos] = s
	h.pos++

	if h.pos == len(h.buf) {
		h.pos = 0
		h.full = true
	}
}

// Len returns the number of lines held.
func (h *History) Len() int {
	if h.full {
		return len(h.buf)
	}

	return h.pos
}

// Lines returns every held line, oldest first.
func (h *History) Lines() []string {
	if !h.full {
		return append([]string(nil), h.buf[:h.pos]...)
	}

	lines := make([]string, 0, len(h.buf))
	lines = append(lines, h.buf[h.pos:]...)

	return append(lines, h.buf[:h.pos]...)
}

// Window returns the last n lines, oldest first.
func (h *History) Window(n int) []string {
	lines := h.Lines()

	// don't scroll past the beginning
	if n >= len(lines) {
		return lines
	}

	return lines[len(lines)-n:]
}

// Clear drops every line.
func (h *History) Clear() {
	clear(h.buf)

	h.pos = 0
	h.full = false
}

// Dump writes every held line to the logger at error level.
func (h *History) Dump(logger *log.Logger) {
	for _, line := range h.Lines() {
		logger.Error("history", log.String("exec", line))
	}
}
