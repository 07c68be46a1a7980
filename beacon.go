package main

import (
	"context"
	"strings"
	"time"

	log "github.com/rs/zerolog/log"
)

var morseTable = map[rune]string{
	'A': ".-",
	'B': "-...",
	'C': "-.-.",
	'D': "-..",
	'E': ".",
	'F': "..-.",
	'G': "--.",
	'H': "....",
	'I': "..",
	'J': ".---",
	'K': "-.-",
	'L': ".-..",
	'M': "--",
	'N': "-.",
	'O': "---",
	'P': ".--.",
	'Q': "--.-",
	'R': ".-.",
	'S': "...",
	'T': "-",
	'U': "..-",
	'V': "...-",
	'W': ".--",
	'X': "-..-",
	'Y': "-.--",
	'Z': "--..",
	'0': "-----",
	'1': ".----",
	'2': "..---",
	'3': "...--",
	'4': "....-",
	'5': ".....",
	'6': "-....",
	'7': "--...",
	'8': "---..",
	'9': "----.",
	'+': ".-.-.",
	',': "--..--",
	'-': "-....-",
	'.': ".-.-.-",
	'/': "-..-.",
	'=': "-...-",
	'?': "..--..",
	'@': ".--.-.",
}

// Element is one keyed or unkeyed stretch, in dit units.
type Element struct {
	Keyed bool
	Units int
}

// MorseSchedule turns text into key-down and key-up elements. Characters
// without a code are dropped; runs of spaces collapse to one word gap.
func MorseSchedule(text string) []Element {
	var out []Element
	gap := func(units int) {
		if len(out) == 0 {
			return
		}
		last := &out[len(out)-1]
		if !last.Keyed {
			last.Units = max(last.Units, units)
			return
		}
		out = append(out, Element{Units: units})
	}

	for _, word := range strings.Fields(strings.ToUpper(text)) {
		gap(7)
		for _, ch := range word {
			code, ok := morseTable[ch]
			if !ok {
				continue
			}
			gap(3)
			for i, sym := range code {
				if i > 0 {
					gap(1)
				}
				units := 1
				if sym == '-' {
					units = 3
				}
				out = append(out, Element{Keyed: true, Units: units})
			}
		}
	}
	return out
}

// Beacon keys the voice by gating both oscillator levels.
type Beacon struct {
	host     *Host
	ditlen   time.Duration
	schedule []Element
	idx      int
	levels   [2]int32

	timer        *time.Timer
	timerPending bool
}

func NewBeacon(h *Host, text string, wpm int) *Beacon {
	levels := [2]int32{h.Unit().Param(ParamLevel1), h.Unit().Param(ParamLevel2)}
	return &Beacon{
		host:         h,
		ditlen:       (1200 * time.Millisecond) / time.Duration(max(wpm, 1)),
		schedule:     MorseSchedule(text),
		levels:       levels,
		timer:        time.NewTimer(0),
		timerPending: true,
	}
}

func (b *Beacon) updateTimer(dur time.Duration) {
	timer := b.timer
	if b.timerPending && !timer.Stop() {
		<-timer.C
	}
	timer.Reset(dur)
	b.timerPending = true
}

func (b *Beacon) key(keyed bool) {
	if keyed {
		b.host.SetParam(ParamLevel1, b.levels[0])
		b.host.SetParam(ParamLevel2, b.levels[1])
	} else {
		b.host.SetParam(ParamLevel1, 0)
		b.host.SetParam(ParamLevel2, 0)
	}
}

// step applies the next element and returns how long it lasts. It wraps to
// the start with a word gap after the last element.
func (b *Beacon) step() time.Duration {
	if b.idx >= len(b.schedule) {
		b.idx = 0
		b.key(false)
		return 7 * b.ditlen
	}
	el := b.schedule[b.idx]
	b.idx++
	b.key(el.Keyed)
	return time.Duration(el.Units) * b.ditlen
}

// Run sends the text in a loop until ctx is done, then restores the levels.
func (b *Beacon) Run(ctx context.Context) {
	defer b.key(true)
	if len(b.schedule) == 0 {
		log.Warn().Msg("beacon text has nothing to send")
		return
	}
	log.Info().Dur("ditlen", b.ditlen).Int("elements", len(b.schedule)).Msg("beacon start")

	b.key(false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.timer.C:
			b.timerPending = false
			b.updateTimer(b.step())
		}
	}
}
