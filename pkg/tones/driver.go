package tones

// Driver is the tone output the player commands. Only the player should call
// it while a sequence is installed.
//
// Calls happen with the player's lock held, so implementations must not call
// back into the Player.
type Driver interface {
	// Tone starts a square wave at freq Hz and keeps it going until the next
	// call.
	Tone(freq uint16)
	// NoTone silences the output.
	NoTone()
}

type multi []Driver

// Multi fans every call out to all drivers in order.
func Multi(drivers ...Driver) Driver {
	out := make(multi, 0, len(drivers))
	for _, d := range drivers {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (m multi) Tone(freq uint16) {
	for _, d := range m {
		d.Tone(freq)
	}
}

func (m multi) NoTone() {
	for _, d := range m {
		d.NoTone()
	}
}

type nopDriver struct{}

func (nopDriver) Tone(uint16) {}
func (nopDriver) NoTone() {}
