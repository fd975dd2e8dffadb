package encoders

// Encoder records blocks of mono float samples in [-1, 1].
type Encoder interface {
	Encode(samples []float32)
	IsRunning() bool
	Start(name string)
	Stop()
}
