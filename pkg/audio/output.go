package audio

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Output streams a Square to the sound card.
type Output struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex
}

// NewOutput opens the audio device. It blocks until the device is ready.
func NewOutput(sampleRate int) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Output{ctx: ctx}, nil
}

// Start begins pulling samples from src.
func (o *Output) Start(src io.Reader) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started {
		return
	}
	o.player = o.ctx.NewPlayer(src)
	o.player.Play()
	o.started = true
}

func (o *Output) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	o.started = false
	return err
}
