package tones

import (
	"encoding/binary"
	"errors"
)

// Reserved words of the sequence encoding.
//
// End and Repeat are only recognised in the frequency slot of a pair and are
// compared before HighVolume is stripped, so a flagged frequency can never be
// 0 (that would read as End) or 1 (that would read as Repeat).
const (
	End        uint16 = 0x8000
	Repeat     uint16 = 0x8001
	HighVolume uint16 = 0x8000
)

// MaxTones is the number of pairs the Play convenience calls accept.
const MaxTones = 3

// DefaultScanLimit bounds the terminator scan done before a sequence is
// installed.
const DefaultScanLimit = 4096

var (
	ErrUnterminated = errors.New("sequence has no END or REPEAT marker")
	ErrEmptyLoop    = errors.New("sequence repeats without any note")
	ErrOutOfBounds  = errors.New("sequence runs past the end of its region")
)

// Marker classifies a word read from a frequency slot.
type Marker uint8

const (
	MarkNote Marker = iota
	MarkEnd
	MarkRepeat
)

func (m Marker) String() string {
	switch m {
	case MarkEnd:
		return "END"
	case MarkRepeat:
		return "REPEAT"
	default:
		return "note"
	}
}

// Classify is the single place sentinel values are interpreted.
func Classify(word uint16) Marker {
	switch word {
	case End:
		return MarkEnd
	case Repeat:
		return MarkRepeat
	}
	return MarkNote
}

// Pitch strips the volume flag from a frequency word.
func Pitch(freq uint16) uint16 {
	return freq &^ HighVolume
}

// High sets the volume flag on a frequency.
func High(freq uint16) uint16 {
	return freq | HighVolume
}

// IsHigh reports whether the volume flag is set on a frequency word.
func IsHigh(freq uint16) bool {
	return freq != End && freq != Repeat && freq&HighVolume != 0
}

// Source is a sequence the player can read from. It is either RAM or ROM.
type Source interface {
	// word returns the word at index and false when the backing region ends.
	word(index int) (uint16, bool)
	kind() SourceKind
}

type SourceKind uint8

const (
	KindRAM SourceKind = iota
	KindROM
)

func (k SourceKind) String() string {
	if k == KindROM {
		return "rom"
	}
	return "ram"
}

// RAM is a caller-owned sequence buffer. The caller keeps ownership; the
// buffer must stay valid and unmodified while it is playing. The player never
// writes into it.
type RAM []uint16

func (r RAM) word(index int) (uint16, bool) {
	if index < 0 || index >= len(r) {
		return End, false
	}
	return r[index], true
}

func (RAM) kind() SourceKind { return KindRAM }

// WordReader reads little-endian 16-bit words from a separately addressed
// region. wazero's api.Memory satisfies it.
type WordReader interface {
	ReadUint16Le(offset uint32) (uint16, bool)
}

// ROM is a read-only sequence living at Base inside a WordReader.
type ROM struct {
	Mem  WordReader
	Base uint32
}

// NewROM points a ROM at base inside mem.
func NewROM(mem WordReader, base uint32) ROM {
	return ROM{Mem: mem, Base: base}
}

func (r ROM) word(index int) (uint16, bool) {
	if r.Mem == nil || index < 0 {
		return End, false
	}
	return r.Mem.ReadUint16Le(r.Base + uint32(index)*2)
}

func (ROM) kind() SourceKind { return KindROM }

// Image is static sequence data baked into the program, typically embedded
// with go:embed. Words are little-endian.
type Image []byte

func (img Image) ReadUint16Le(offset uint32) (uint16, bool) {
	if uint64(offset)+2 > uint64(len(img)) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(img[offset:]), true
}

// ImageOf encodes words as an Image.
func ImageOf(words ...uint16) Image {
	img := make(Image, len(words)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(img[i*2:], w)
	}
	return img
}

// Validate walks the frequency slots of src until it finds the marker that
// ends or loops the sequence. It looks at no more than limit words.
func Validate(src Source, limit int) error {
	if limit <= 0 {
		limit = DefaultScanLimit
	}

	notes := 0
	for i := 0; i < limit; {
		freq, ok := src.word(i)
		if !ok {
			return ErrOutOfBounds
		}

		switch Classify(freq) {
		case MarkEnd:
			return nil
		case MarkRepeat:
			if i == 0 {
				i++
				continue
			}
			if notes == 0 {
				return ErrEmptyLoop
			}
			return nil
		}

		if _, ok := src.word(i + 1); !ok {
			return ErrOutOfBounds
		}
		notes++
		i += 2
	}

	return ErrUnterminated
}

// cursor is the read position inside the active sequence.
type cursor struct {
	src   Source
	index int
}

// next returns the word under the cursor and moves past it. Past the end of
// the region it yields End; a sequence that gets there without a marker was
// installed in violation of its contract.
func (c *cursor) next() uint16 {
	if c.src == nil {
		return End
	}
	w, ok := c.src.word(c.index)
	c.index++
	if !ok {
		return End
	}
	return w
}

func (c *cursor) rewind() {
	c.index = 0
}
