package encoders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	w := NewWAV(8000)
	if err := w.Open(path); err != nil {
		t.Fatal(err)
	}
	if !w.IsRunning() {
		t.Fatal("not running after Open")
	}

	w.Encode([]float32{0, 0.5, -0.5, 2})
	w.Encode([]float32{-2})
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatal("invalid wav file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}

	if d.SampleRate != 8000 || d.BitDepth != 16 || d.NumChans != 1 {
		t.Errorf("header: rate=%d depth=%d chans=%d", d.SampleRate, d.BitDepth, d.NumChans)
	}

	want := []int{0, 16383, -16383, 32767, -32767}
	if len(buf.Data) != len(want) {
		t.Fatalf("got %d samples: %v", len(buf.Data), buf.Data)
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestWAVStartUsesDir(t *testing.T) {
	dir := t.TempDir()

	w := NewWAV(8000)
	w.Dir = dir
	w.Start("cart")
	if !w.IsRunning() {
		t.Fatal("Start did not begin recording")
	}
	w.Encode([]float32{0.1})
	w.Stop()

	matches, err := filepath.Glob(filepath.Join(dir, "cart_*.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("files = %v", matches)
	}
}

func TestWAVEncodeWhileStoppedIsIgnored(t *testing.T) {
	w := NewWAV(8000)
	w.Encode([]float32{1})
	if err := w.Close(); err != nil {
		t.Errorf("Close on idle recorder: %v", err)
	}
}
