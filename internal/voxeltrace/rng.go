package voxeltrace

import "math"

// Rng is a tiny deterministic LCG. It is not safe for concurrent use.
type Rng struct{ state uint64 }

// NewRng seeds the generator; a zero seed is bumped to 1.
func NewRng(seed uint64) *Rng {
	if seed == 0 {
		seed = 1
	}
	return &Rng{state: seed}
}

func (r *Rng) NextU32() uint32 {
	r.state = r.state*6364136223846793005 + 1
	return uint32(r.state >> 32)
}

// NextF64 returns a value in [0,1].
func (r *Rng) NextF64() Real { return Real(r.NextU32()) / Real(math.MaxUint32) }

// pixelSeed mixes pixel coordinates and sample index into a seed.
func pixelSeed(x, y, s int) uint64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f ^ uint64(s)*0x165667b19e3779f9
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}
