package tones

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadToken = errors.New("bad sequence token")

// ParseSequence reads a sequence typed on the command line. Tokens are
// separated by commas or white space:
//
//	440 200 A4! 100 REST 50 REPEAT
//
// Numbers may be decimal or 0x hex. Note names resolve through LookupNote.
// A trailing "!" sets the high volume flag. END and REPEAT are the markers.
// Nothing is appended; use Terminate for that.
func ParseSequence(s string) ([]uint16, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ';'
	})

	seq := make([]uint16, 0, len(fields))
	for i, field := range fields {
		w, err := parseToken(field)
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i+1, field, err)
		}
		seq = append(seq, w)
	}

	return seq, nil
}

func parseToken(tok string) (uint16, error) {
	switch strings.ToUpper(tok) {
	case "END":
		return End, nil
	case "REPEAT":
		return Repeat, nil
	case "REST":
		return NoteRest, nil
	}

	high := strings.HasSuffix(tok, "!")
	tok = strings.TrimSuffix(tok, "!")

	var w uint16
	if n, err := strconv.ParseUint(tok, 0, 16); err == nil {
		w = uint16(n)
	} else if f, ok := LookupNote(tok); ok {
		w = f
	} else {
		return 0, ErrBadToken
	}

	if high {
		if w == 0 || w == 1 || w&HighVolume != 0 {
			return 0, fmt.Errorf("%w: %d cannot carry the volume flag", ErrBadToken, w)
		}
		w = High(w)
	}

	return w, nil
}

// Terminate appends End unless seq already stops or loops at a frequency
// slot.
func Terminate(seq []uint16) []uint16 {
	if Validate(RAM(seq), len(seq)+1) == nil {
		return seq
	}
	return append(seq, End)
}
