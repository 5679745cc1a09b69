package audio

// Param is an automatable value on the sample clock. A linear ramp runs from
// the value at the moment it is scheduled to the target at the end frame and
// holds the target afterwards.
type Param struct {
	value      float64
	startValue float64
	startFrame int64
	endFrame   int64
	ramping    bool
}

// NewParam returns a param holding v.
func NewParam(v float64) *Param {
	return &Param{value: v}
}

// At returns the value at frame.
func (p *Param) At(frame int64) float64 {
	if !p.ramping || frame >= p.endFrame {
		return p.value
	}
	if frame <= p.startFrame {
		return p.startValue
	}
	t := float64(frame-p.startFrame) / float64(p.endFrame-p.startFrame)
	return p.startValue + (p.value-p.startValue)*t
}

// Set jumps to v immediately, cancelling any ramp.
func (p *Param) Set(v float64) {
	p.value = v
	p.ramping = false
}

// LinearRampTo schedules a ramp that starts at frame now from the current
// value and reaches target at frame end. A ramp that would end at or before
// now jumps straight to target.
func (p *Param) LinearRampTo(target float64, now, end int64) {
	if end <= now {
		p.Set(target)
		return
	}
	p.startValue = p.At(now)
	p.startFrame = now
	p.endFrame = end
	p.value = target
	p.ramping = true
}

// Target is the value the param settles on.
func (p *Param) Target() float64 {
	return p.value
}
