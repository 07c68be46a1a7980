package main

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
)

// otoOutput feeds the host through oto as mono float32 little-endian.
type otoOutput struct {
	host   *Host
	ctx    *oto.Context
	player *oto.Player
	buf    []float32
}

func NewOtoOutput(h *Host) (Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("oto.NewContext failed: %w", err)
	}
	<-ready

	o := &otoOutput{
		host: h,
		ctx:  ctx,
		buf:  make([]float32, 4096),
	}
	o.player = ctx.NewPlayer(o)
	o.player.Play()
	return o, nil
}

// Read implements io.Reader for the oto player.
func (o *otoOutput) Read(p []byte) (int, error) {
	n := min(len(p)/4, len(o.buf))
	if n == 0 {
		return 0, nil
	}
	samples := o.buf[:n]
	o.host.Generate(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

func (o *otoOutput) Close() {
	o.player.Close()
}
