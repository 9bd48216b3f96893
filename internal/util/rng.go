package util

import "math/rand"

// New returns a seeded generator. Zero maps to 1 so an unset seed is still
// reproducible.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// ForRun derives the generator for the run-th job of a batch so the draws
// do not depend on which worker picks the job up.
func ForRun(seed int64, run int) *rand.Rand {
	return New(seed + int64(run)*7919)
}
