package main

import (
	"math"
	"sync/atomic"
)

type Waveform uint32

const (
	WaveSine Waveform = iota
	WaveSaw
	WaveSquare
	WaveOff

	numWaveforms
)

const MaxLevel = 6

// Oscillator is one phase-accumulating voice. phase and increment belong to
// the render goroutine; waveform, level and detune are configuration and may
// be stored from any goroutine.
type Oscillator struct {
	phase     float32
	increment float32

	waveform atomic.Uint32
	level    atomic.Uint32
	detune   atomic.Uint32
}

// SetPitch recomputes the phase increment for a note and its 1/256 semitone
// fraction, shifted up by the detune in cents.
func (o *Oscillator) SetPitch(note, fine uint8) {
	inc := incrementForNote(note, fine, o.detune.Load())
	o.increment = max(0, min(inc, maxIncrement))
}

func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform.Store(uint32(w))
}

func (o *Oscillator) Waveform() Waveform {
	return Waveform(o.waveform.Load())
}

// SetLevel stores the gain in sixths. The caller clamps to 0..MaxLevel.
func (o *Oscillator) SetLevel(level uint32) {
	o.level.Store(level)
}

func (o *Oscillator) Level() uint32 {
	return o.level.Load()
}

// SetDetune stores the pitch offset in cents applied on the next SetPitch.
func (o *Oscillator) SetDetune(detune uint32) {
	o.detune.Store(detune)
}

func (o *Oscillator) Detune() uint32 {
	return o.detune.Load()
}

func (o *Oscillator) Phase() float32 { return o.phase }

func (o *Oscillator) Increment() float32 { return o.increment }

func (o *Oscillator) signal() float32 {
	switch Waveform(o.waveform.Load()) {
	case WaveSine:
		return float32(math.Sin(2 * math.Pi * float64(o.phase)))
	case WaveSaw:
		return 2*o.phase - 1
	case WaveSquare:
		if o.phase < 0.5 {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// Render returns the sample at the current phase. It does not advance.
func (o *Oscillator) Render() float32 {
	return o.signal() * float32(o.level.Load()) / MaxLevel
}

// Tick advances the phase by one sample. Call it after Render.
func (o *Oscillator) Tick() {
	o.phase += o.increment
	o.phase -= float32(uint32(o.phase))
}

// Reset clears phase and increment. Waveform, level and detune are kept.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.increment = 0
}
