package main

import (
	"math"
	"sync/atomic"
)

// crushMaxBits is the resolution a barely-engaged bit reduction starts from.
const crushMaxBits = 16

// Mixer renders the voice: a primary oscillator, a secondary oscillator that
// carries the detune, and post-mix bit reduction.
type Mixer struct {
	Primary   Oscillator
	Secondary Oscillator

	// float32 bits of the bit reduction amount in [0,1]
	bitcrush atomic.Uint32
}

func (m *Mixer) SetBitcrush(amount float32) {
	m.bitcrush.Store(math.Float32bits(amount))
}

func (m *Mixer) Bitcrush() float32 {
	return math.Float32frombits(m.bitcrush.Load())
}

// SoftClip is the saturating stage applied once per mixed sample.
func SoftClip(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

// crushSteps returns the number of quantization steps per unit amplitude
// for a bit reduction amount. It never goes below 1.
func crushSteps(amount float32) float32 {
	steps := math.Floor(math.Exp2(crushMaxBits * (1 - float64(amount))))
	return float32(max(steps, 1))
}

// Crush quantizes x onto a grid of 1/steps and keeps it within [-1,1].
func Crush(x, steps float32) float32 {
	y := float32(math.Round(float64(x*steps))) / steps
	return max(-1, min(y, 1))
}

// Mix combines two oscillator samples. A secondary that is switched off is
// left out, otherwise both are halved before clipping.
func (m *Mixer) Mix(sig1, sig2 float32) float32 {
	if m.Secondary.Waveform() == WaveOff {
		return SoftClip(sig1)
	}
	return SoftClip(sig1/2 + sig2/2)
}

// RenderBlock fills out with len(out) mono samples at pitch. Pitch and the
// bit reduction amount are sampled once per block.
func (m *Mixer) RenderBlock(pitch Pitch, out []float32) {
	note, fine := pitch.Note(), pitch.Fine()
	m.Primary.SetPitch(note, fine)
	m.Secondary.SetPitch(note, fine)

	amount := m.Bitcrush()
	var steps float32
	if amount > 0 {
		steps = crushSteps(amount)
	}

	for i := range out {
		y := m.Mix(m.Primary.Render(), m.Secondary.Render())
		if amount > 0 {
			y = Crush(y, steps)
		}
		out[i] = y
		m.Primary.Tick()
		m.Secondary.Tick()
	}
}

// Reset clears oscillator phase state. Configuration is left alone.
func (m *Mixer) Reset() {
	m.Primary.Reset()
	m.Secondary.Reset()
}
