package audio

import (
	"sync"
	"time"
)

// Graph is one rendering of the noise chain: looping source, low-pass
// filter, gain. Its clock is the number of frames rendered so far.
type Graph struct {
	mu         sync.Mutex
	sampleRate int
	source     []float64
	pos        int
	filter     *Biquad
	gain       *Param
	frame      int64
}

func newGraph(sampleRate int, source []float64, filter *Biquad, gain float64) *Graph {
	return &Graph{
		sampleRate: sampleRate,
		source:     source,
		filter:     filter,
		gain:       NewParam(gain),
	}
}

// Render fills out with the next len(out) samples and advances the clock.
func (g *Graph) Render(out []float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range out {
		s := g.filter.Process(g.source[g.pos])
		g.pos++
		if g.pos == len(g.source) {
			g.pos = 0
		}
		out[i] = s * g.gain.At(g.frame)
		g.frame++
	}
}

// RampGain ramps the gain linearly to target, finishing d of rendered audio
// from now.
func (g *Graph) RampGain(target float64, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gain.LinearRampTo(target, g.frame, g.frame+g.frames(d))
}

// Gain returns the gain at the current frame.
func (g *Graph) Gain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gain.At(g.frame)
}

// GainTarget is the level the gain is settling on.
func (g *Graph) GainTarget() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gain.Target()
}

// Frame is the graph clock in samples.
func (g *Graph) Frame() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frame
}

func (g *Graph) frames(d time.Duration) int64 {
	return int64(d.Seconds() * float64(g.sampleRate))
}
