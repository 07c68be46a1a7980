package main

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jfreymuth/pulse"
	log "github.com/rs/zerolog/log"
)

// Host plays the runtime's part for a Unit: it holds the current pitch word
// and pulls audio blocks. Parameter changes go straight to the unit; reset
// takes the render lock so it never overlaps a block.
type Host struct {
	mu    sync.Mutex
	unit  *Unit
	pitch atomic.Uint32
	in    []float32
}

func NewHost(desc RuntimeDesc) (*Host, error) {
	unit, err := NewUnit(&desc)
	if err != nil {
		return nil, fmt.Errorf("unit init failed: %w", err)
	}
	h := &Host{
		unit: unit,
		in:   make([]float32, 2*int(desc.FramesPerBuf)),
	}
	h.SetPitch(NewPitch(noteA4, 0))
	return h, nil
}

func (h *Host) Unit() *Unit { return h.unit }

func (h *Host) SetPitch(p Pitch) {
	h.pitch.Store(uint32(p))
}

func (h *Host) Pitch() Pitch {
	return Pitch(h.pitch.Load())
}

func (h *Host) SetParam(id ParamID, value int32) {
	h.unit.SetParam(id, value)
}

// StepParam moves a parameter by delta and returns the clamped result.
func (h *Host) StepParam(id ParamID, delta int32) int32 {
	h.unit.SetParam(id, h.unit.Param(id)+delta)
	return h.unit.Param(id)
}

func (h *Host) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unit.Reset()
	log.Info().Msg("unit reset")
}

// Generate renders len(out) samples. It is the pull callback for every
// audio backend.
func (h *Host) Generate(out []float32) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unit.Render(h.Pitch(), h.in, out)
	return len(out), nil
}

func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unit.Teardown()
}

// Output is a running audio backend.
type Output interface {
	Close()
}

type pulseOutput struct {
	client *pulse.Client
	stream *pulse.PlaybackStream
}

func NewPulseOutput(h *Host, sinkName string) (Output, error) {
	pc, err := pulse.NewClient(
		pulse.ClientApplicationName("nOSC"),
	)
	if err != nil {
		return nil, fmt.Errorf("pulse.NewClient failed: %w", err)
	}

	opts := []pulse.PlaybackOption{
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackSampleRate(SampleRate),
		pulse.PlaybackMono,
	}
	if sinkName != "" && sinkName != "default" {
		sink, err := pc.SinkByID(sinkName)
		if err != nil {
			pc.Close()
			return nil, fmt.Errorf("sink %q: %w", sinkName, err)
		}
		opts = append(opts, pulse.PlaybackSink(sink))
	}

	playback, err := pc.NewPlayback(pulse.Float32Reader(h.Generate), opts...)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("pulse.NewPlayback failed: %w", err)
	}
	playback.Start()
	return &pulseOutput{client: pc, stream: playback}, nil
}

func (po *pulseOutput) Close() {
	po.stream.Close()
	po.client.Close()
}
