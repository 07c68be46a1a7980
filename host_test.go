package main

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"
)

func TestHostRejectsBadRuntime(t *testing.T) {
	desc := DefaultRuntime
	desc.SampleRate = 44100
	if _, err := NewHost(desc); err == nil {
		t.Fatal("44.1 kHz runtime accepted")
	}
}

func TestHostStepParam(t *testing.T) {
	h, err := NewHost(DefaultRuntime)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.StepParam(ParamDetune, 20); got != 15 {
		t.Fatalf("D3TN = %d", got)
	}
	if got := h.StepParam(ParamDetune, -4); got != 11 {
		t.Fatalf("D3TN = %d", got)
	}
}

// Parameter writes from a control goroutine race with render by design;
// every field they touch is an atomic.
func TestHostConcurrentParams(t *testing.T) {
	h, err := NewHost(DefaultRuntime)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int32(0); ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			h.SetParam(ParamID(i%int32(NumParams)), i%1024)
			h.SetPitch(NewPitch(uint8(i%128), uint8(i)))
		}
	}()

	out := make([]float32, 64)
	for i := 0; i < 2000; i++ {
		h.Generate(out)
		for _, y := range out {
			if y < -1 || y > 1 || math.IsNaN(float64(y)) {
				t.Errorf("sample %v out of range", y)
			}
		}
	}
	close(stop)
	wg.Wait()
}

func TestOtoReaderEncodesSamples(t *testing.T) {
	h, err := NewHost(DefaultRuntime)
	if err != nil {
		t.Fatal(err)
	}
	ref, _ := NewHost(DefaultRuntime)

	o := &otoOutput{host: h, buf: make([]float32, 128)}
	p := make([]byte, 1024+3)
	n, err := o.Read(p)
	if err != nil || n != 512 {
		t.Fatalf("Read = %d, %v", n, err)
	}

	want := make([]float32, 128)
	ref.Generate(want)
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if got != w {
			t.Fatalf("sample %d: %v, want %v", i, got, w)
		}
	}
}
