package devices

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// jitter draws zero-mean Gaussian noise with the given standard deviation,
// matching the teacher's use of gonum for numerically sensitive work
// (there: SVD pseudo-inverse; here: the firmware-accurate "real servos and
// motors are slightly inaccurate" noise called for in spec.md §4.2).
//
// A zero Sigma (the default zero value) always returns 0, which is how
// tests get deterministic set/get round-trips without needing a seam to
// disable jitter entirely.
type jitter struct {
	dist distuv.Normal
}

// newJitter builds a jitter source with standard deviation sigma. Pass a
// *rand.Rand built from a fixed seed for reproducible tests that still
// exercise the noise path.
func newJitter(sigma float64, src rand.Source) *jitter {
	return &jitter{dist: distuv.Normal{Mu: 0, Sigma: sigma, Src: src}}
}

func (j *jitter) apply(value float64) float64 {
	if j == nil || j.dist.Sigma == 0 {
		return value
	}
	return value + j.dist.Rand()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
