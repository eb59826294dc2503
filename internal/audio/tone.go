package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone is a fixed-length oscillator with a linear attack/release envelope.
type tone struct {
	freq    float64
	wave    Wave
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// Tone returns a streamer playing freq for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	edge := rate.N(5 * time.Millisecond)
	if 2*edge > total {
		edge = total / 2
	}
	return &tone{
		freq:    freq,
		wave:    wave,
		rate:    rate,
		total:   total,
		attack:  edge,
		release: total / 3,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.gain()

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

// note is one step of a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave Wave
}

// cueNotes holds the arpeggio played for each cue.
var cueNotes = map[core.Cue][]note{
	core.CueShoot:   {{880, 40 * time.Millisecond, WaveSquare}},
	core.CueHit:     {{300, 60 * time.Millisecond, WaveSquare}},
	core.CueExplode: {{120, 180 * time.Millisecond, WaveSaw}},
	core.CueFlip:    {{400, 50 * time.Millisecond, WaveSine}, {600, 50 * time.Millisecond, WaveSine}},
	core.CueCoin:    {{800, 50 * time.Millisecond, WaveSine}, {1000, 80 * time.Millisecond, WaveSine}},
	core.CueCrash:   {{150, 200 * time.Millisecond, WaveSaw}},
	core.CueLevelUp: {{523, 100 * time.Millisecond, WaveSine}, {659, 100 * time.Millisecond, WaveSine}, {784, 150 * time.Millisecond, WaveSine}},
	core.CueMatch:   {{660, 60 * time.Millisecond, WaveSine}, {880, 60 * time.Millisecond, WaveSine}},
	core.CueWin:     {{600, 100 * time.Millisecond, WaveSine}, {800, 100 * time.Millisecond, WaveSine}, {1000, 200 * time.Millisecond, WaveSine}},
}

// CueStreamer builds the sound for c at the given volume (0..1).
// CueNone and unknown cues return nil.
func CueStreamer(c core.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, Tone(n.freq, n.dur, n.wave, rate))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// CueLength is the total duration of the sound for c.
func CueLength(c core.Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}
