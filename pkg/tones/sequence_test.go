package tones

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		seq  []uint16
		want error
	}{
		{"end only", []uint16{End}, nil},
		{"single pair", []uint16{440, 100, End}, nil},
		{"loop", []uint16{440, 100, Repeat}, nil},
		{"leading repeat", []uint16{Repeat, 0, 300, End}, nil},
		{"leading repeat then end", []uint16{Repeat, End}, nil},
		{"end in duration slot is data", []uint16{440, End, End}, nil},
		{"empty", nil, ErrOutOfBounds},
		{"missing terminator", []uint16{440, 100, 550, 100}, ErrOutOfBounds},
		{"missing duration", []uint16{440}, ErrOutOfBounds},
		{"repeat with nothing to loop", []uint16{Repeat, Repeat}, ErrEmptyLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(RAM(tt.seq), 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate(%v) = %v, want %v", tt.seq, err, tt.want)
			}
		})
	}
}

func TestValidateScanLimit(t *testing.T) {
	seq := make([]uint16, 0, 101)
	for i := 0; i < 50; i++ {
		seq = append(seq, 440, 10)
	}
	seq = append(seq, End)

	if err := Validate(RAM(seq), 50); !errors.Is(err, ErrUnterminated) {
		t.Errorf("got %v, want ErrUnterminated", err)
	}
	if err := Validate(RAM(seq), len(seq)); err != nil {
		t.Errorf("full scan failed: %v", err)
	}
}

func TestValidateROMBounds(t *testing.T) {
	img := ImageOf(440, 100, 550, 100)
	if err := Validate(NewROM(img, 0), 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got %v", err)
	}

	img = ImageOf(0xdead, 440, 100, End)
	if err := Validate(NewROM(img, 2), 0); err != nil {
		t.Errorf("offset sequence rejected: %v", err)
	}
}

func TestCursorReadsBothKinds(t *testing.T) {
	words := []uint16{1, 2, 3, End}
	for _, src := range []Source{RAM(words), NewROM(ImageOf(words...), 0)} {
		c := cursor{src: src}
		for i, want := range words {
			if got := c.next(); got != want {
				t.Errorf("%s word %d = %#x, want %#x", src.kind(), i, got, want)
			}
		}
		if got := c.next(); got != End {
			t.Errorf("%s read past the region: %#x", src.kind(), got)
		}
		c.rewind()
		if c.next() != 1 {
			t.Errorf("%s rewind failed", src.kind())
		}
	}
}

func TestClassifyAndPitch(t *testing.T) {
	if Classify(End) != MarkEnd || Classify(Repeat) != MarkRepeat || Classify(440) != MarkNote {
		t.Error("Classify mislabels markers")
	}
	if Classify(High(440)) != MarkNote {
		t.Error("flagged note read as a marker")
	}
	if Pitch(High(440)) != 440 || Pitch(440) != 440 {
		t.Error("Pitch does not strip the flag")
	}
	if !IsHigh(High(440)) || IsHigh(440) || IsHigh(End) {
		t.Error("IsHigh wrong")
	}
}

func TestImageReadsLittleEndian(t *testing.T) {
	img := Image{0x34, 0x12, 0xff}
	if w, ok := img.ReadUint16Le(0); !ok || w != 0x1234 {
		t.Errorf("got %#x %t", w, ok)
	}
	if _, ok := img.ReadUint16Le(2); ok {
		t.Error("read a half word")
	}
}
