// Package pcg implements the PCG-XSH-RR 64/32 pseudo-random generator
// (O'Neill, pcg-random.org).
//
// The generator is a small value with no hidden shared state: each render
// worker owns its own stream, selected by the stream parameter, so results
// are reproducible regardless of how work is scheduled.
package pcg

import "math/bits"

const multiplier = 6364136223846793005

// PCG is a single generator stream.  Not safe for concurrent use; give
// every worker its own.
type PCG struct {
	state uint64
	inc   uint64
}

// New seeds a generator.  initState selects the starting point within the
// stream, initSeq selects the stream.
func New(initState, initSeq uint64) *PCG {
	p := &PCG{state: 0, inc: (initSeq << 1) | 1}
	p.Random()
	p.state += initState
	p.Random()
	return p
}

// Random returns the next 32 uniformly distributed bits.
func (p *PCG) Random() uint32 {
	oldState := p.state
	p.state = oldState*multiplier + p.inc

	xorShifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := int(oldState >> 59)
	return bits.RotateLeft32(xorShifted, -rot)
}

// Float returns a uniform sample from [0, 1).
func (p *PCG) Float() float64 {
	return float64(p.Random()) / (1 << 32)
}
