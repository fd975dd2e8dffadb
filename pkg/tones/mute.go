package tones

// audible decides whether a step sounds. A rest is always silent; any other
// pitch sounds only while enabled reports true. enabled is asked every time.
func audible(pitch uint16, enabled func() bool) bool {
	on := enabled == nil || enabled()
	return pitch != 0 && on
}
