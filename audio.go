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
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Output sample rate.
	///
	sampleRate = 22050

	/// Pitch of the CHIP-8 buzzer.
	///
	toneFrequency = 440

	/// Unsigned 8-bit levels of the square wave.
	///
	toneHigh = 0xA0
	toneLow  = 0x60
)

/// tone generates a square wave across buffers without clicking.
///
type tone struct {
	// samples per full wave
	period int

	// position within the current wave
	phase int
}

func newTone(freq, rate int) *tone {
	return &tone{period: max(rate/freq, 2)}
}

/// fill buf with the next samples of the wave.
///
func (t *tone) fill(buf []byte) {
	for i := range buf {
		if t.phase < t.period/2 {
			buf[i] = toneHigh
		} else {
			buf[i] = toneLow
		}

		t.phase = (t.phase + 1) % t.period
	}
}

/// Audio device the tone is queued to while the sound timer runs.
///
type Audio struct {
	device sdl.AudioDeviceID
	tone   *tone

	// one video frame worth of samples
	frame []byte
}

/// InitAudio opens an audio device for the CHIP-8 virtual machine.
///
func InitAudio() (*Audio, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	// open the device and start playing it
	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, err
	}

	sdl.PauseAudioDevice(device, false)

	return &Audio{
		device: device,
		tone:   newTone(toneFrequency, sampleRate),
		frame:  make([]byte, sampleRate/60),
	}, nil
}

/// Update keeps about two frames of tone queued while active, letting
/// the queue drain otherwise.
///
func (a *Audio) Update(active bool) error {
	if !active {
		return nil
	}

	if sdl.GetQueuedAudioSize(a.device) > uint32(2*len(a.frame)) {
		return nil
	}

	a.tone.fill(a.frame)

	return sdl.QueueAudio(a.device, a.frame)
}

/// Close the audio device.
///
func (a *Audio) Close() {
	sdl.CloseAudioDevice(a.device)
}
