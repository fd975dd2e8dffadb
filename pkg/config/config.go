package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// MIDIConfig selects an optional MIDI output that mirrors the tone channel
type MIDIConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  uint8  `json:"channel,omitempty"`
	Velocity uint8  `json:"velocity,omitempty"`
}

// AudioConfig describes the square wave output
type AudioConfig struct {
	SampleRate int     `json:"sampleRate,omitempty"`
	Amplitude  float64 `json:"amplitude,omitempty"`
	Disabled   bool    `json:"disabled,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	TickMillis int         `json:"tickMillis,omitempty"`
	ScanLimit  int         `json:"scanLimit,omitempty"`
	Muted      bool        `json:"muted,omitempty"`
	Audio      AudioConfig `json:"audio,omitempty"`
	MIDI       MIDIConfig  `json:"midi,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		TickMillis: 10,
		ScanLimit:  4096,
		Audio: AudioConfig{
			SampleRate: 44100,
			Amplitude:  0.25,
		},
		MIDI: MIDIConfig{
			Velocity: 100,
		},
	}
}

// TickPeriod returns the scheduler period
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "w4tones"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path on top of the defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.fill()
	return cfg, nil
}

// fill puts defaults back into fields a file zeroed out
func (c *Config) fill() {
	def := DefaultConfig()
	if c.TickMillis <= 0 {
		c.TickMillis = def.TickMillis
	}
	if c.ScanLimit <= 0 {
		c.ScanLimit = def.ScanLimit
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Audio.Amplitude <= 0 {
		c.Audio.Amplitude = def.Audio.Amplitude
	}
	if c.MIDI.Velocity == 0 {
		c.MIDI.Velocity = def.MIDI.Velocity
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
