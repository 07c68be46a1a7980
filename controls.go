package main

import (
	"strconv"

	log "github.com/rs/zerolog/log"
)

// piano row, one semitone per key starting at C
var pianoKeys = map[rune]int{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5, 't': 6,
	'g': 7, 'y': 8, 'h': 9, 'u': 10, 'j': 11, 'k': 12,
}

const (
	minOctave = -1
	maxOctave = 9
)

// Controls turns key presses into pitch and parameter changes on a host.
// It is used from a single input goroutine.
type Controls struct {
	host     *Host
	octave   int
	selected ParamID
}

func NewControls(h *Host) *Controls {
	return &Controls{host: h, octave: 4, selected: ParamType1}
}

func (c *Controls) Octave() int { return c.octave }

func (c *Controls) Selected() ParamID { return c.selected }

// Note plays semitone above the current octave's C.
func (c *Controls) Note(semitone int) {
	n := max(0, min((c.octave+1)*12+semitone, 127))
	c.host.SetPitch(NewPitch(uint8(n), 0))
	log.Debug().Int("note", n).Msg("note")
}

func (c *Controls) ShiftOctave(delta int) {
	c.octave = max(minOctave, min(c.octave+delta, maxOctave))
	log.Debug().Int("octave", c.octave).Msg("octave")
}

func (c *Controls) Select(id ParamID) {
	if id < NumParams {
		c.selected = id
	}
}

func (c *Controls) Step(delta int32) {
	v := c.host.StepParam(c.selected, delta)
	log.Info().Str("param", paramTable[c.selected].Name).Int32("value", v).Send()
}

func (c *Controls) Reset() {
	c.host.Reset()
}

// Rune handles the character keys shared by every input mode and reports
// whether the key meant anything.
func (c *Controls) Rune(r rune) bool {
	if semi, ok := pianoKeys[r]; ok {
		c.Note(semi)
		return true
	}
	switch {
	case r == 'z':
		c.ShiftOctave(-1)
	case r == 'x':
		c.ShiftOctave(1)
	case r >= '1' && r < '1'+rune(NumParams):
		c.Select(ParamID(r - '1'))
	case r == '+', r == '=':
		c.Step(1)
	case r == '-':
		c.Step(-1)
	case r == 'r':
		c.Reset()
	default:
		return false
	}
	return true
}

// coarseStep is the page up/down stride, sized for the 10-bit parameters.
func coarseStep(id ParamID) int32 {
	desc, _ := id.Desc()
	return max(1, (desc.Max-desc.Min+1)/16)
}

// ParamDisplay renders a parameter's current value for humans.
func ParamDisplay(u *Unit, id ParamID) string {
	v := u.Param(id)
	if s, ok := u.ParamString(id, v); ok {
		return s
	}
	return strconv.Itoa(int(v))
}
