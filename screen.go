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
	"github.com/LarsSalembier/chip-8-emulator/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Render target holding the CHIP-8 video memory.
	///
	Screen *sdl.Texture
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() error {
	var err error

	// create a render target for the display
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.ScreenWidth, chip8.ScreenHeight)

	return err
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen(s *chip8.Screen) error {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return err
	}

	// the background color for the screen
	_ = Renderer.SetDrawColor(143, 145, 133, 255)
	_ = Renderer.Clear()

	// set the pixel color
	_ = Renderer.SetDrawColor(17, 29, 43, 255)

	// draw all the lit pixels
	for p, on := range s.Pixels() {
		if on {
			_ = Renderer.DrawPoint(int32(p%chip8.ScreenWidth), int32(p/chip8.ScreenWidth))
		}
	}

	// restore the render target
	return Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the window, stretched to w x h.
///
func CopyScreen(x, y, w, h int32) error {
	src := sdl.Rect{
		W: chip8.ScreenWidth,
		H: chip8.ScreenHeight,
	}

	return Renderer.Copy(Screen, &src, &sdl.Rect{X: x, Y: y, W: w, H: h})
}
