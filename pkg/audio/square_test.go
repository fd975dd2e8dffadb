package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSquareSilentByDefault(t *testing.T) {
	s := NewSquare(8000, 0.5)
	buf := make([]float32, 64)
	s.Render(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v", i, v)
		}
	}
}

func TestSquarePeriod(t *testing.T) {
	s := NewSquare(8000, 0.5)
	s.Tone(1000) // 8 samples per cycle

	buf := make([]float32, 16)
	s.Render(buf)

	want := []float32{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5}
	for i, v := range buf {
		if v != want[i%8] {
			t.Fatalf("sample %d = %v, want %v (%v)", i, v, want[i%8], buf)
		}
	}

	s.NoTone()
	if s.Frequency() != 0 {
		t.Error("NoTone left a frequency")
	}
	s.Render(buf)
	if buf[0] != 0 {
		t.Error("sound after NoTone")
	}
}

func TestSquareClampsAmplitudeAndNyquist(t *testing.T) {
	s := NewSquare(8000, 3)
	s.Tone(15000)
	if s.Frequency() != 4000 {
		t.Errorf("frequency = %d, want 4000", s.Frequency())
	}

	buf := make([]float32, 4)
	s.Render(buf)
	for _, v := range buf {
		if v != 1 && v != -1 {
			t.Errorf("sample %v outside full scale", v)
		}
	}
}

func TestSquareReadEncodesFloat32LE(t *testing.T) {
	s := NewSquare(8000, 0.25)
	s.Tone(1000)

	p := make([]byte, 4*8+3)
	n, err := s.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 32 {
		t.Fatalf("n = %d", n)
	}
	if v := math.Float32frombits(binary.LittleEndian.Uint32(p[0:])); v != 0.25 {
		t.Errorf("first sample %v", v)
	}
	if v := math.Float32frombits(binary.LittleEndian.Uint32(p[16:])); v != -0.25 {
		t.Errorf("fifth sample %v", v)
	}
}

func TestSquareTap(t *testing.T) {
	s := NewSquare(8000, 0.5)
	var seen int
	s.SetTap(func(b []float32) { seen += len(b) })

	s.Render(make([]float32, 10))
	s.SetTap(nil)
	s.Render(make([]float32, 10))

	if seen != 10 {
		t.Errorf("tap saw %d samples", seen)
	}
}
