package workout

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
)

// Deterministic choice machinery. Every pseudo-random decision in a
// generation call flows through a PCG stream keyed by the request seed and
// the position of the decision, so identical inputs replay identical
// workouts on any platform. No global or time-based randomness is
// consulted anywhere in this package.

// hashSeedParts folds the given parts into a 64-bit FNV-1a hash. Parts are
// separated by a unit separator so that ("ab","c") and ("a","bc") differ.
func hashSeedParts(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

// newChoiceRand returns the PCG stream for one selection: the same
// (seed, block, selection) triple always yields the same stream.
func newChoiceRand(seed string, block, selection int) *rand.Rand {
	lo := hashSeedParts(seed, "block", strconv.Itoa(block), "selection", strconv.Itoa(selection))
	hi := hashSeedParts("wodgen", seed, strconv.Itoa(block), strconv.Itoa(selection))
	return rand.New(rand.NewPCG(hi, lo))
}

// pickDistinct draws count distinct movements from candidates using a
// partial Fisher-Yates walk. When the pool is smaller than count, the whole
// pool is returned; the caller reports the shortfall instead of failing.
func pickDistinct(rng *rand.Rand, candidates []Movement, count int) []Movement {
	if count <= 0 {
		return nil
	}
	if count >= len(candidates) {
		picked := make([]Movement, len(candidates))
		copy(picked, candidates)
		return picked
	}

	indices := make([]int, len(candidates))
	for i := range indices {
		indices[i] = i
	}
	picked := make([]Movement, 0, count)
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		picked = append(picked, candidates[indices[i]])
	}
	return picked
}
