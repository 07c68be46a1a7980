package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	wavFormatFloat = 3
	wavHeaderSize  = 44
)

func writeWavHeader(w io.Writer, frames int) error {
	dataSize := uint32(frames * 4)
	hdr := make([]byte, wavHeaderSize)
	copy(hdr[0:], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:], 36+dataSize)
	copy(hdr[8:], "WAVE")
	copy(hdr[12:], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:], 16)
	binary.LittleEndian.PutUint16(hdr[20:], wavFormatFloat)
	binary.LittleEndian.PutUint16(hdr[22:], 1)
	binary.LittleEndian.PutUint32(hdr[24:], SampleRate)
	binary.LittleEndian.PutUint32(hdr[28:], SampleRate*4)
	binary.LittleEndian.PutUint16(hdr[32:], 4)
	binary.LittleEndian.PutUint16(hdr[34:], 32)
	copy(hdr[36:], "data")
	binary.LittleEndian.PutUint32(hdr[40:], dataSize)
	_, err := w.Write(hdr)
	return err
}

// RenderWav writes frames samples of the host's voice as a mono 32-bit float
// WAV, rendering in runtime-sized blocks.
func RenderWav(w io.Writer, h *Host, frames int) error {
	if err := writeWavHeader(w, frames); err != nil {
		return fmt.Errorf("wav header: %w", err)
	}

	block := make([]float32, max(1, int(h.Unit().Desc().FramesPerBuf)))
	raw := make([]byte, 4*len(block))
	for left := frames; left > 0; {
		n := min(left, len(block))
		h.Generate(block[:n])
		for i, s := range block[:n] {
			binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(s))
		}
		if _, err := w.Write(raw[:n*4]); err != nil {
			return fmt.Errorf("wav data: %w", err)
		}
		left -= n
	}
	return nil
}

func RenderWavFile(path string, h *Host, frames int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := RenderWav(bw, h, frames); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
