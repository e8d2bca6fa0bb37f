package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/honly-helper/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq over duration
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound effect generators

// CreateWhistleSound is the looping in-flight bullet tone
func CreateWhistleSound(rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, 1760)
	if err != nil {
		return nil
	}
	over, err := generators.SineTone(rate, 2637)
	if err != nil {
		return nil
	}
	return newVolume(beep.Mix(newVolume(tone, 0.7), newVolume(over, 0.3)), 0.08)
}

// CreateImpactSound is a dull noise thud
func CreateImpactSound(rate beep.SampleRate) beep.Streamer {
	const d = 120 * time.Millisecond
	noise := NewOscillator(0, d, WaveNoise, rate)
	thud := NewSweep(140, 60, d, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.4), newVolume(thud, 0.6))
	return newVolume(NewEnvelope(mixed, d, 2*time.Millisecond, 90*time.Millisecond, rate), 0.5)
}

// CreateSplitSound is a rising glide for the companion appearing
func CreateSplitSound(rate beep.SampleRate) beep.Streamer {
	const d = 250 * time.Millisecond
	glide := NewSweep(220, 660, d, WaveSaw, rate)
	return newVolume(NewEnvelope(glide, d, 20*time.Millisecond, 120*time.Millisecond, rate), 0.25)
}

// CreateJoinSound is a quick falling glide for the companion merging back
func CreateJoinSound(rate beep.SampleRate) beep.Streamer {
	const d = 200 * time.Millisecond
	glide := NewSweep(660, 220, d, WaveSaw, rate)
	return newVolume(NewEnvelope(glide, d, 5*time.Millisecond, 120*time.Millisecond, rate), 0.25)
}

// CreateBreakSound is a crackle for shattering blocks
func CreateBreakSound(rate beep.SampleRate) beep.Streamer {
	const d = 300 * time.Millisecond
	noise := NewOscillator(0, d, WaveNoise, rate)
	rumble := NewOscillator(80, d, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.5))
	return newVolume(NewEnvelope(mixed, d, 2*time.Millisecond, 250*time.Millisecond, rate), 0.5)
}

// GetSoundEffect returns the streamer for a sound event and whether it loops
// Unknown events return nil
func GetSoundEffect(name string, rate beep.SampleRate) (s beep.Streamer, looping bool) {
	switch name {
	case parameter.SoundBulletWhistle:
		return CreateWhistleSound(rate), true
	case parameter.SoundBulletImpact:
		return CreateImpactSound(rate), false
	case parameter.SoundCompanionSplit:
		return CreateSplitSound(rate), false
	case parameter.SoundCompanionJoin:
		return CreateJoinSound(rate), false
	case parameter.SoundDashBlockBreak:
		return CreateBreakSound(rate), false
	default:
		return nil, false
	}
}
