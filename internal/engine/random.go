package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// NewRand returns a deterministic generator for seed. Seed 0 picks a random seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = randomSeed()
	}
	// Non-cryptographic PRNG is intentional: games replay from their seed.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

func randomSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	if s := int64(binary.LittleEndian.Uint64(b[:])); s != 0 {
		return s
	}
	return 1
}
