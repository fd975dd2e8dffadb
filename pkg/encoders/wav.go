package encoders

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/tools"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

type WAV struct {
	mu         sync.Mutex
	running    bool
	file       *os.File
	enc        *wav.Encoder
	buf        *audio.IntBuffer
	SampleRate int
	Dir        string
	err        error
}

// NewWAV returns a recorder that writes into the home directory.
func NewWAV(sampleRate int) *WAV {
	return &WAV{
		running:    false,
		SampleRate: sampleRate,
	}
}

// Open starts writing to path right away.
func (w *WAV) Open(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("already recording to %s", w.file.Name())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w.file = f
	w.enc = wav.NewEncoder(f, w.SampleRate, bitDepth, 1, 1)
	w.buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: w.SampleRate},
		SourceBitDepth: bitDepth,
	}
	w.err = nil
	w.running = true

	return nil
}

func (w *WAV) Encode(samples []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running || w.err != nil {
		return
	}

	data := w.buf.Data[:0]
	for _, v := range samples {
		data = append(data, int(tools.Clamp(v, -1, 1)*32767))
	}
	w.buf.Data = data

	w.err = w.enc.Write(w.buf)
}

func (w *WAV) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Start records into <dir>/<name>_<timestamp>.wav, dir defaulting to the
// home directory. Failures are logged.
func (w *WAV) Start(name string) {
	dir := w.Dir
	if dir == "" {
		udir, err := os.UserHomeDir()
		if err != nil {
			log.Println(err)
			return
		}
		dir = udir
	}

	fname := fmt.Sprintf("%s_%v.wav", name, time.Now().Format("2006-01-02_15-04-05"))
	if err := w.Open(filepath.Join(dir, fname)); err != nil {
		log.Println(err)
	}
}

func (w *WAV) Stop() {
	if err := w.Close(); err != nil {
		log.Println(err)
	}
}

// Close finishes the WAV header and closes the file. It reports the first
// error seen while encoding.
func (w *WAV) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false

	err := w.err
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}
