package main

import "errors"

// Init rejections. The unit is not constructed when any of these is returned.
var (
	ErrUndefined  = errors.New("unit: no runtime descriptor")
	ErrTarget     = errors.New("unit: runtime target mismatch")
	ErrAPIVersion = errors.New("unit: incompatible runtime API version")
	ErrSampleRate = errors.New("unit: unsupported samplerate (must be 48000)")
	ErrGeometry   = errors.New("unit: unsupported channel geometry (must be 2 in, 1 out)")
)

// RuntimeDesc is what the runtime negotiated with the unit.
type RuntimeDesc struct {
	Target         uint16
	API            uint32
	SampleRate     uint32
	FramesPerBuf   uint16
	InputChannels  uint8
	OutputChannels uint8
}

// DefaultRuntime is the runtime the unit is built against.
var DefaultRuntime = RuntimeDesc{
	Target:         UnitHeader.Target,
	API:            APIVersion,
	SampleRate:     SampleRate,
	FramesPerBuf:   64,
	InputChannels:  2,
	OutputChannels: 1,
}

// Unit is the oscillator unit as the runtime sees it: lifecycle callbacks,
// render, and the parameter table.
type Unit struct {
	desc  RuntimeDesc
	mixer Mixer
}

func NewUnit(desc *RuntimeDesc) (*Unit, error) {
	if desc == nil {
		return nil, ErrUndefined
	}
	if desc.Target != UnitHeader.Target {
		return nil, ErrTarget
	}
	if !apiCompatible(desc.API) {
		return nil, ErrAPIVersion
	}
	if desc.SampleRate != SampleRate {
		return nil, ErrSampleRate
	}
	if desc.InputChannels != 2 || desc.OutputChannels != 1 {
		return nil, ErrGeometry
	}

	u := &Unit{desc: *desc}
	u.Reset()
	return u, nil
}

func (u *Unit) Desc() RuntimeDesc { return u.desc }

func (u *Unit) Mixer() *Mixer { return &u.mixer }

// Reset zeroes phase state and puts every parameter back to its default.
// The runtime only calls it while render is inactive.
func (u *Unit) Reset() {
	for id := ParamID(0); id < NumParams; id++ {
		u.SetParam(id, paramTable[id].Default)
	}
	u.mixer.Reset()
}

func (u *Unit) Teardown() {
	u.Reset()
}

func (u *Unit) Resume() {}
func (u *Unit) Suspend() {}

// Render fills out with one mono block at pitch. The input buffer is unused.
func (u *Unit) Render(pitch Pitch, in, out []float32) {
	u.mixer.RenderBlock(pitch, out)
}

// SetParam clamps value to the parameter's range and applies it. Unknown ids
// are ignored.
func (u *Unit) SetParam(id ParamID, value int32) {
	desc, ok := id.Desc()
	if !ok {
		return
	}
	value = desc.Clamp(value)

	m := &u.mixer
	switch id {
	case ParamBitcrush:
		m.SetBitcrush(Param10BitToFloat(value))
	case ParamDetune:
		m.Secondary.SetDetune(uint32(value))
	case ParamType1:
		m.Primary.SetWaveform(WaveformFromValue(value))
	case ParamType2:
		m.Secondary.SetWaveform(WaveformFromValue(value))
	case ParamLevel1:
		m.Primary.SetLevel(uint32(value))
	case ParamLevel2:
		m.Secondary.SetLevel(uint32(value))
	}
}

// Param returns the current value of id in its parameter domain, or
// ParamInvalid.
func (u *Unit) Param(id ParamID) int32 {
	m := &u.mixer
	switch id {
	case ParamBitcrush:
		return ParamFloatTo10Bit(m.Bitcrush())
	case ParamDetune:
		return int32(m.Secondary.Detune())
	case ParamType1:
		return int32(m.Primary.Waveform())
	case ParamType2:
		return int32(m.Secondary.Waveform())
	case ParamLevel1:
		return int32(m.Primary.Level())
	case ParamLevel2:
		return int32(m.Secondary.Level())
	}
	return ParamInvalid
}

// ParamString returns the display label for a value of a strings parameter.
// ok is false for ids without a textual form and for values off the table.
func (u *Unit) ParamString(id ParamID, value int32) (s string, ok bool) {
	switch id {
	case ParamType1, ParamType2:
		if value >= 0 && value < int32(numWaveforms) {
			return waveformLabels[value], true
		}
	}
	return "", false
}

// Runtime events the oscillator accepts and ignores.

func (u *Unit) SetTempo(tempo uint32) {}
func (u *Unit) TempoTick(counter uint32) {}
func (u *Unit) NoteOn(note, velocity uint8) {}
func (u *Unit) NoteOff(note uint8) {}
func (u *Unit) AllNoteOff() {}
func (u *Unit) PitchBend(bend uint16) {}
func (u *Unit) ChannelPressure(pressure uint8) {}
func (u *Unit) Aftertouch(note, pressure uint8) {}
