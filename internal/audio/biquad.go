package audio

import (
	"fmt"
	"math"
)

// ButterworthQ is the quality factor of a maximally flat second-order filter.
var ButterworthQ = 1 / math.Sqrt2

// Biquad is a second-order IIR filter in transposed direct form II.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

// NewLowPass returns a low-pass filter with the given cutoff and Q using the
// RBJ cookbook coefficients.
func NewLowPass(sampleRate int, cutoffHz, q float64) (*Biquad, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, sampleRate)
	}
	nyquist := float64(sampleRate) / 2
	if cutoffHz <= 0 || cutoffHz >= nyquist {
		return nil, fmt.Errorf("%w: cutoff %.1f Hz outside (0, %.1f)", ErrInvalidConfig, cutoffHz, nyquist)
	}
	if q <= 0 {
		return nil, fmt.Errorf("%w: Q %.3f", ErrInvalidConfig, q)
	}

	w0 := 2 * math.Pi * cutoffHz / float64(sampleRate)
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	return &Biquad{
		b0: (1 - cosW0) / 2 / a0,
		b1: (1 - cosW0) / a0,
		b2: (1 - cosW0) / 2 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

// Process filters one sample.
func (f *Biquad) Process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// Reset clears the filter's memory.
func (f *Biquad) Reset() {
	f.z1, f.z2 = 0, 0
}
