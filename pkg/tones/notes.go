package tones

import (
	"fmt"
	"strconv"
	"strings"
)

// Pitches of the equal tempered scale, A4 = 440 Hz, rounded to whole Hz.
// Combine with High for the loud variant.
const (
	NoteRest uint16 = 0

	NoteC0  uint16 = 16
	NoteCS0 uint16 = 17
	NoteD0  uint16 = 18
	NoteDS0 uint16 = 19
	NoteE0  uint16 = 21
	NoteF0  uint16 = 22
	NoteFS0 uint16 = 23
	NoteG0  uint16 = 24
	NoteGS0 uint16 = 26
	NoteA0  uint16 = 28
	NoteAS0 uint16 = 29
	NoteB0  uint16 = 31
	NoteC1  uint16 = 33
	NoteCS1 uint16 = 35
	NoteD1  uint16 = 37
	NoteDS1 uint16 = 39
	NoteE1  uint16 = 41
	NoteF1  uint16 = 44
	NoteFS1 uint16 = 46
	NoteG1  uint16 = 49
	NoteGS1 uint16 = 52
	NoteA1  uint16 = 55
	NoteAS1 uint16 = 58
	NoteB1  uint16 = 62
	NoteC2  uint16 = 65
	NoteCS2 uint16 = 69
	NoteD2  uint16 = 73
	NoteDS2 uint16 = 78
	NoteE2  uint16 = 82
	NoteF2  uint16 = 87
	NoteFS2 uint16 = 92
	NoteG2  uint16 = 98
	NoteGS2 uint16 = 104
	NoteA2  uint16 = 110
	NoteAS2 uint16 = 117
	NoteB2  uint16 = 123
	NoteC3  uint16 = 131
	NoteCS3 uint16 = 139
	NoteD3  uint16 = 147
	NoteDS3 uint16 = 156
	NoteE3  uint16 = 165
	NoteF3  uint16 = 175
	NoteFS3 uint16 = 185
	NoteG3  uint16 = 196
	NoteGS3 uint16 = 208
	NoteA3  uint16 = 220
	NoteAS3 uint16 = 233
	NoteB3  uint16 = 247
	NoteC4  uint16 = 262
	NoteCS4 uint16 = 277
	NoteD4  uint16 = 294
	NoteDS4 uint16 = 311
	NoteE4  uint16 = 330
	NoteF4  uint16 = 349
	NoteFS4 uint16 = 370
	NoteG4  uint16 = 392
	NoteGS4 uint16 = 415
	NoteA4  uint16 = 440
	NoteAS4 uint16 = 466
	NoteB4  uint16 = 494
	NoteC5  uint16 = 523
	NoteCS5 uint16 = 554
	NoteD5  uint16 = 587
	NoteDS5 uint16 = 622
	NoteE5  uint16 = 659
	NoteF5  uint16 = 698
	NoteFS5 uint16 = 740
	NoteG5  uint16 = 784
	NoteGS5 uint16 = 831
	NoteA5  uint16 = 880
	NoteAS5 uint16 = 932
	NoteB5  uint16 = 988
	NoteC6  uint16 = 1047
	NoteCS6 uint16 = 1109
	NoteD6  uint16 = 1175
	NoteDS6 uint16 = 1245
	NoteE6  uint16 = 1319
	NoteF6  uint16 = 1397
	NoteFS6 uint16 = 1480
	NoteG6  uint16 = 1568
	NoteGS6 uint16 = 1661
	NoteA6  uint16 = 1760
	NoteAS6 uint16 = 1865
	NoteB6  uint16 = 1976
	NoteC7  uint16 = 2093
	NoteCS7 uint16 = 2217
	NoteD7  uint16 = 2349
	NoteDS7 uint16 = 2489
	NoteE7  uint16 = 2637
	NoteF7  uint16 = 2794
	NoteFS7 uint16 = 2960
	NoteG7  uint16 = 3136
	NoteGS7 uint16 = 3322
	NoteA7  uint16 = 3520
	NoteAS7 uint16 = 3729
	NoteB7  uint16 = 3951
	NoteC8  uint16 = 4186
	NoteCS8 uint16 = 4435
	NoteD8  uint16 = 4699
	NoteDS8 uint16 = 4978
	NoteE8  uint16 = 5274
	NoteF8  uint16 = 5588
	NoteFS8 uint16 = 5920
	NoteG8  uint16 = 6272
	NoteGS8 uint16 = 6645
	NoteA8  uint16 = 7040
	NoteAS8 uint16 = 7459
	NoteB8  uint16 = 7902
	NoteC9  uint16 = 8372
	NoteCS9 uint16 = 8870
	NoteD9  uint16 = 9397
	NoteDS9 uint16 = 9956
	NoteE9  uint16 = 10548
	NoteF9  uint16 = 11175
	NoteFS9 uint16 = 11840
	NoteG9  uint16 = 12544
	NoteGS9 uint16 = 13290
	NoteA9  uint16 = 14080
	NoteAS9 uint16 = 14917
	NoteB9  uint16 = 15804
)

var noteNames = [12]string{"C", "CS", "D", "DS", "E", "F", "FS", "G", "GS", "A", "AS", "B"}

var noteTable = [...]uint16{
	16, 17, 18, 19, 21, 22, 23, 24, 26, 28, 29, 31,
	33, 35, 37, 39, 41, 44, 46, 49, 52, 55, 58, 62,
	65, 69, 73, 78, 82, 87, 92, 98, 104, 110, 117, 123,
	131, 139, 147, 156, 165, 175, 185, 196, 208, 220, 233, 247,
	262, 277, 294, 311, 330, 349, 370, 392, 415, 440, 466, 494,
	523, 554, 587, 622, 659, 698, 740, 784, 831, 880, 932, 988,
	1047, 1109, 1175, 1245, 1319, 1397, 1480, 1568, 1661, 1760, 1865, 1976,
	2093, 2217, 2349, 2489, 2637, 2794, 2960, 3136, 3322, 3520, 3729, 3951,
	4186, 4435, 4699, 4978, 5274, 5588, 5920, 6272, 6645, 7040, 7459, 7902,
	8372, 8870, 9397, 9956, 10548, 11175, 11840, 12544, 13290, 14080, 14917, 15804,
}

// NoteFrequency returns the pitch of semitone (0 = C) in octave.
func NoteFrequency(octave, semitone int) (uint16, bool) {
	if octave < 0 || octave > 9 || semitone < 0 || semitone > 11 {
		return 0, false
	}
	return noteTable[octave*12+semitone], true
}

// NoteName formats a table index the way the constants are named, e.g. "CS4".
func NoteName(octave, semitone int) string {
	if semitone < 0 || semitone > 11 {
		return "?"
	}
	return fmt.Sprintf("%s%d", noteNames[semitone], octave)
}

// LookupNote resolves names like "A4", "C#5", "CS5" or "Bb3".
func LookupNote(name string) (uint16, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) < 2 {
		return 0, false
	}

	semitone := strings.Index("C D EF G A B", name[:1])
	if semitone < 0 {
		return 0, false
	}
	rest := name[1:]

	switch rest[0] {
	case '#', 'S':
		semitone++
		rest = rest[1:]
	case 'B':
		if len(rest) > 1 {
			semitone--
			rest = rest[1:]
		}
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}

	if semitone < 0 {
		semitone += 12
		octave--
	} else if semitone > 11 {
		semitone -= 12
		octave++
	}

	return NoteFrequency(octave, semitone)
}
