package main

import "math"

const (
	SampleRate = 48000

	noteA4    = 69
	hzA4      = 440.0
	maxNote   = 151
	maxNoteHz = 23679.643054

	// fine steps per semitone in a pitch word
	fineSteps = 256
)

// Pitch is the runtime pitch word: note number in the high byte, fraction of
// a semitone (1/256 steps) in the low byte.
type Pitch uint16

func NewPitch(note, fine uint8) Pitch {
	return Pitch(uint16(note)<<8 | uint16(fine))
}

func (p Pitch) Note() uint8 { return uint8(p >> 8) }

func (p Pitch) Fine() uint8 { return uint8(p & 0xFF) }

// PitchFromHz returns the nearest pitch word for a frequency. Frequencies
// below note 0 map to 0, above the note range to the top note.
func PitchFromHz(hz float64) Pitch {
	if hz <= 0 {
		return 0
	}
	semis := noteA4 + 12*math.Log2(hz/hzA4)
	steps := math.Round(semis * fineSteps)
	steps = max(0, min(steps, maxNote*fineSteps+fineSteps-1))
	return Pitch(uint16(steps))
}

// noteHz maps a (possibly fractional) note number to 12-TET frequency.
func noteHz(semis float64) float64 {
	return hzA4 * math.Exp2((semis-noteA4)/12)
}

// incrementForNote returns the per-sample phase step for note plus fine
// steps plus cents. Notes past maxNote are clamped, the frequency is capped
// at maxNoteHz so the result always stays in [0, maxIncrement].
func incrementForNote(note, fine uint8, cents uint32) float32 {
	n := min(int(note), maxNote)
	semis := float64(n) + float64(fine)/fineSteps + float64(cents)/100
	hz := min(noteHz(semis), maxNoteHz)
	return float32(hz / SampleRate)
}

// maxIncrement is the largest phase step incrementForNote can produce.
var maxIncrement = float32(maxNoteHz / SampleRate)
