package main

import (
	"errors"
	"testing"
)

func newTestUnit(t *testing.T) *Unit {
	t.Helper()
	desc := DefaultRuntime
	u, err := NewUnit(&desc)
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	return u
}

func TestNewUnitRejections(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *RuntimeDesc)
		want   error
	}{
		{"ok", func(d *RuntimeDesc) {}, nil},
		{"samplerate", func(d *RuntimeDesc) { d.SampleRate = 44100 }, ErrSampleRate},
		{"inputs", func(d *RuntimeDesc) { d.InputChannels = 1 }, ErrGeometry},
		{"outputs", func(d *RuntimeDesc) { d.OutputChannels = 2 }, ErrGeometry},
		{"target", func(d *RuntimeDesc) { d.Target = TargetPlatform }, ErrTarget},
		{"api", func(d *RuntimeDesc) { d.API = 0x00010000 }, ErrAPIVersion},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			desc := DefaultRuntime
			tc.modify(&desc)
			u, err := NewUnit(&desc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if (err == nil) != (u != nil) {
				t.Fatalf("unit %v with err %v", u, err)
			}
		})
	}

	if _, err := NewUnit(nil); !errors.Is(err, ErrUndefined) {
		t.Fatalf("nil desc: %v", err)
	}
}

func TestUnitDefaults(t *testing.T) {
	u := newTestUnit(t)
	want := map[ParamID]int32{
		ParamBitcrush: 0,
		ParamDetune:   0,
		ParamType1:    int32(WaveSine),
		ParamType2:    int32(WaveSine),
		ParamLevel1:   MaxLevel,
		ParamLevel2:   MaxLevel,
	}
	for id, v := range want {
		if got := u.Param(id); got != v {
			t.Errorf("%s = %d, want %d", paramTable[id].Name, got, v)
		}
	}
}

func TestUnitResetRestoresDefaults(t *testing.T) {
	u := newTestUnit(t)
	u.SetParam(ParamBitcrush, 700)
	u.SetParam(ParamDetune, 9)
	u.SetParam(ParamType1, 2)
	u.SetParam(ParamType2, 3)
	u.SetParam(ParamLevel1, 1)
	u.SetParam(ParamLevel2, 2)
	u.Render(NewPitch(60, 0), nil, make([]float32, 64))

	u.Reset()
	for id := ParamID(0); id < NumParams; id++ {
		if got := u.Param(id); got != paramTable[id].Default {
			t.Errorf("%s = %d after reset", paramTable[id].Name, got)
		}
	}
	m := u.Mixer()
	if m.Primary.Phase() != 0 || m.Secondary.Phase() != 0 {
		t.Fatal("reset kept phase")
	}
}

func TestUnitSetParamClamps(t *testing.T) {
	u := newTestUnit(t)
	tests := []struct {
		id       ParamID
		in, want int32
	}{
		{ParamBitcrush, -10, 0},
		{ParamBitcrush, 5000, 1023},
		{ParamBitcrush, 512, 512},
		{ParamDetune, 16, 15},
		{ParamDetune, -1, 0},
		{ParamType1, 7, int32(WaveOff)},
		{ParamType2, -3, int32(WaveSine)},
		{ParamLevel1, 10, MaxLevel},
		{ParamLevel2, -2, 0},
	}
	for _, tc := range tests {
		u.SetParam(tc.id, tc.in)
		if got := u.Param(tc.id); got != tc.want {
			t.Errorf("%s set %d: got %d, want %d", paramTable[tc.id].Name, tc.in, got, tc.want)
		}
	}
}

func TestUnitSetParamIsIndependent(t *testing.T) {
	u := newTestUnit(t)
	before := make([]int32, NumParams)
	for id := range before {
		before[id] = u.Param(ParamID(id))
	}

	changes := map[ParamID]int32{
		ParamBitcrush: 100,
		ParamDetune:   3,
		ParamType1:    int32(WaveSquare),
		ParamType2:    int32(WaveSaw),
		ParamLevel1:   2,
		ParamLevel2:   1,
	}
	for id, v := range changes {
		u.Reset()
		u.SetParam(id, v)
		for other := ParamID(0); other < NumParams; other++ {
			want := before[other]
			if other == id {
				want = v
			}
			if got := u.Param(other); got != want {
				t.Errorf("setting %s changed %s to %d", paramTable[id].Name, paramTable[other].Name, got)
			}
		}
	}
}

func TestUnitUnknownParam(t *testing.T) {
	u := newTestUnit(t)
	if got := u.Param(NumParams); got != ParamInvalid {
		t.Fatalf("unknown id = %d", got)
	}
	u.SetParam(NumParams, 3)
	u.SetParam(200, 3)
	for id := ParamID(0); id < NumParams; id++ {
		if got := u.Param(id); got != paramTable[id].Default {
			t.Errorf("%s = %d after unknown set", paramTable[id].Name, got)
		}
	}
}

func TestUnitParamString(t *testing.T) {
	u := newTestUnit(t)
	for v, want := range []string{"SIN", "SAW", "SQR", "OFF"} {
		for _, id := range []ParamID{ParamType1, ParamType2} {
			if s, ok := u.ParamString(id, int32(v)); !ok || s != want {
				t.Errorf("ParamString(%d, %d) = %q %v", id, v, s, ok)
			}
		}
	}
	if _, ok := u.ParamString(ParamType1, 4); ok {
		t.Error("value 4 has a label")
	}
	if _, ok := u.ParamString(ParamLevel1, 3); ok {
		t.Error("level has a label")
	}
}

func TestUnitMIDIEventsAreInert(t *testing.T) {
	u := newTestUnit(t)
	u.SetParam(ParamLevel2, 3)
	before := make([]int32, NumParams)
	for id := range before {
		before[id] = u.Param(ParamID(id))
	}

	u.NoteOn(60, 100)
	u.NoteOff(60)
	u.AllNoteOff()
	u.PitchBend(0x3FFF)
	u.ChannelPressure(90)
	u.Aftertouch(60, 90)
	u.SetTempo(120 << 16)
	u.TempoTick(3)
	u.Suspend()
	u.Resume()

	for id := range before {
		if got := u.Param(ParamID(id)); got != before[id] {
			t.Errorf("%s changed to %d", paramTable[id].Name, got)
		}
	}
}

// A4 on both sine oscillators for one second runs 440 cycles.
func TestUnitRendersA4(t *testing.T) {
	u := newTestUnit(t)
	block := make([]float32, DefaultRuntime.FramesPerBuf)

	var crossings int
	prev := float32(0)
	for frames := 0; frames < SampleRate; frames += len(block) {
		u.Render(NewPitch(noteA4, 0), nil, block)
		for _, y := range block {
			if prev < 0 && y >= 0 {
				crossings++
			}
			prev = y
		}
	}
	if crossings < 439 || crossings > 441 {
		t.Fatalf("%d cycles, want 440", crossings)
	}
}

func TestUnitRenderDoesNotAllocate(t *testing.T) {
	u := newTestUnit(t)
	u.SetParam(ParamBitcrush, 400)
	u.SetParam(ParamType2, int32(WaveSaw))
	out := make([]float32, 256)

	allocs := testing.AllocsPerRun(200, func() {
		u.Render(NewPitch(48, 17), nil, out)
	})
	if allocs != 0 {
		t.Fatalf("Render allocs/op = %.2f, want 0", allocs)
	}
}
