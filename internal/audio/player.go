// Package audio plays game sound cues through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Player plays sound cues. Implementations never block the frame loop.
type Player interface {
	Play(c core.Cue)
	Close()
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(core.Cue) {}
func (Nop) Close()        {}

// Config controls the speaker.
type Config struct {
	SampleRate int
	Volume     float64 // 0..1
}

// DefaultConfig returns 44.1kHz at 40% volume.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Volume: 0.4}
}

// Beep mixes cue sounds into a single speaker stream.
type Beep struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	closed bool
}

// speaker.Init may only run once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewBeep opens the speaker and starts the mixer.
func NewBeep(cfg Config) (*Beep, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	rate := beep.SampleRate(cfg.SampleRate)

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", speakerErr)
	}

	b := &Beep{rate: rate, volume: cfg.Volume, mixer: &beep.Mixer{}}
	speaker.Play(b.mixer)
	return b, nil
}

// Open returns a Beep player, or Nop when the speaker is unavailable.
func Open(cfg Config, logger *log.Logger) Player {
	b, err := NewBeep(cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("sound disabled", "err", err)
		}
		return Nop{}
	}
	return b
}

// Play queues the sound for c.
func (b *Beep) Play(c core.Cue) {
	s := CueStreamer(c, b.rate, b.volume)
	if s == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer. The speaker stays open for later players.
func (b *Beep) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
}
