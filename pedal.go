package main

import (
	"fmt"
	"os"

	log "github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// Pedal switches wired to serial control lines.
const (
	PedalReset int = 1 << iota
	PedalCycle
)

type Pedal struct {
	file *os.File
	ch   chan int
}

func NewPedal(dev string) (*Pedal, error) {
	pedalDev, err := os.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("failed to open pedal device: %w", err)
	}

	fd := int(pedalDev.Fd())
	ch := make(chan int, 10)

	go func(ch chan int) {
		defer func() { close(ch) }()
		// Closing the device interrupts the wait with an I/O error.
		for {
			err := unix.IoctlSetInt(fd, unix.TIOCMIWAIT, unix.TIOCM_CD|unix.TIOCM_CTS)
			if err != nil {
				log.Error().Err(err).Msg("ioctl TIOCMIWAIT")
				return
			}
			bits, err := unix.IoctlGetInt(fd, unix.TIOCMGET)
			if err != nil {
				log.Error().Err(err).Msg("ioctl TIOCMGET")
				return
			}
			ch <- pedalState(bits)
		}
	}(ch)
	return &Pedal{
		file: pedalDev,
		ch:   ch,
	}, nil
}

func pedalState(bits int) int {
	var state int
	if bits&unix.TIOCM_CTS != 0 {
		state |= PedalReset
	}
	if bits&unix.TIOCM_CD != 0 {
		state |= PedalCycle
	}
	return state
}

// pressed returns the switches that went down between two states.
func pressed(prev, cur int) int {
	return cur &^ prev
}

// HandlePedal applies pedal presses to the host until the pedal closes.
func HandlePedal(p *Pedal, h *Host) {
	var prev int
	for state := range p.ch {
		down := pressed(prev, state)
		prev = state
		if down&PedalReset != 0 {
			h.Reset()
		}
		if down&PedalCycle != 0 {
			next := (h.Unit().Param(ParamType2) + 1) % int32(numWaveforms)
			h.SetParam(ParamType2, next)
			log.Info().Stringer("type2", Waveform(next)).Msg("pedal")
		}
	}
}

func (p *Pedal) Close() {
	p.file.Close()
}
