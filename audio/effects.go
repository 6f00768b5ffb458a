package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave, gliding linearly from freq to freqEnd
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a constant-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end Hz over duration
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		freqEnd:  end,
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
		freq := o.freq + (o.freqEnd-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack and release ramps inside duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) gain() float64 {
	vol := 1.0
	if e.attackSamples > 0 && e.position < e.attackSamples {
		vol = float64(e.position) / float64(e.attackSamples)
	}
	if remaining := e.totalSamples - e.position; e.releaseSamples > 0 && remaining < e.releaseSamples {
		vol = math.Min(vol, math.Max(0, float64(remaining)/float64(e.releaseSamples)))
	}
	return vol
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := e.gain()
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CueStreamer builds the finite streamer for cue, or nil for an unknown cue
func CueStreamer(cue Cue, cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch cue {
	case CueGrow:
		// Rising E4 -> E5
		osc := NewSweep(329.63, 659.25, sweepDuration, WaveSine, rate)
		s = NewEnvelope(osc, sweepDuration, sweepAttack, sweepRelease, rate)
	case CueShrink:
		osc := NewSweep(659.25, 329.63, sweepDuration, WaveSine, rate)
		s = NewEnvelope(osc, sweepDuration, sweepAttack, sweepRelease, rate)
	case CuePlasma:
		noise := NewOscillator(0, plasmaDuration, WaveNoise, rate)
		hum := NewOscillator(55, plasmaDuration, WaveSaw, rate)
		mixed := beep.Mix(newVolume(noise, 0.5), newVolume(hum, 0.3))
		s = NewEnvelope(mixed, plasmaDuration, plasmaAttack, plasmaRelease, rate)
	case CueReset:
		// C5 then G4
		n1 := NewEnvelope(NewOscillator(523.25, resetNote, WaveSquare, rate), resetNote, resetAttack, resetRelease, rate)
		n2 := NewEnvelope(NewOscillator(392.0, resetNote, WaveSquare, rate), resetNote, resetAttack, resetRelease, rate)
		s = beep.Seq(n1, n2)
	case CueBanish:
		osc := NewSweep(220, 55, banishDuration, WaveSaw, rate)
		s = NewEnvelope(osc, banishDuration, banishAttack, banishRelease, rate)
	default:
		return nil
	}

	return newVolume(s, cfg.cueVolume(cue))
}
