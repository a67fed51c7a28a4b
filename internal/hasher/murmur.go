package hasher

import (
	"strconv"

	"github.com/spaolacci/murmur3"
)

// Murmur32Base36 reads the 32-bit Murmur3 hash as a signed integer and
// encodes its absolute value in base-36. Perturbation increments the integer.
type Murmur32Base36 struct{}

func (Murmur32Base36) Name() string { return "murmur36" }

func (Murmur32Base36) Derive(longURL string) Candidate {
	h := int32(murmur3.Sum32([]byte(longURL)))

	return intCandidate{value: int64(h)}
}

// Murmur32Int uses the decimal form of the 32-bit Murmur3 hash directly as
// the code. It is the only strategy that perturbs the source URL itself:
// on collision it appends "1" to the input and re-hashes.
type Murmur32Int struct{}

func (Murmur32Int) Name() string { return "murmur10" }

func (Murmur32Int) Derive(longURL string) Candidate {
	return inputCandidate{input: longURL}
}

type inputCandidate struct {
	input string
}

func (c inputCandidate) Code() string {
	return strconv.FormatUint(uint64(murmur3.Sum32([]byte(c.input))), 10)
}

func (c inputCandidate) Next() Candidate {
	return inputCandidate{input: c.input + "1"}
}
