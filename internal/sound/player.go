// Package sound plays short synthesized cues for game events.
package sound

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player implements ports.Sounds on the default audio device. Every cue
// is a no-op until Init succeeds, so a machine without audio still plays.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer returns a player at the given volume in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: math.Max(0, math.Min(1, volume))}
}

func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending cues. The speaker itself stays open; beep offers
// no way to reopen it once closed.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) Reveal()  { p.play(tone(1320, 25*time.Millisecond)) }
func (p *Player) Flag()    { p.play(tone(660, 60*time.Millisecond)) }
func (p *Player) Explode() { p.play(beep.Take(sampleRate.N(400*time.Millisecond), newRumble(sampleRate))) }

func (p *Player) Win() {
	p.play(beep.Seq(
		tone(523, 90*time.Millisecond),
		tone(659, 90*time.Millisecond),
		tone(784, 180*time.Millisecond),
	))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return beep.Take(sampleRate.N(d), sine)
}

// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// rumble is decaying noise over a low sine, used for the explosion.
type rumble struct {
	sr  beep.SampleRate
	pos int
	rng *rand.Rand
}

func newRumble(sr beep.SampleRate) *rumble {
	return &rumble{sr: sr, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(r.pos) / float64(r.sr)
		env := math.Exp(-t * 9)
		v := env * (0.3*(r.rng.Float64()*2-1) + 0.35*math.Sin(2*math.Pi*70*t))
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// Mute satisfies ports.Sounds without touching the audio device.
type Mute struct{}

func (Mute) Reveal()  {}
func (Mute) Flag()    {}
func (Mute) Explode() {}
func (Mute) Win()     {}
