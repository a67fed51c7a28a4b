package hasher

import "strconv"

// RollingBitHash folds the URL into a 32-bit integer one character at a time:
// hash = (hash << 5) - hash + charCode, with wraparound keeping the value in
// 32 bits. The candidate is the absolute value encoded in base-36.
type RollingBitHash struct{}

func (RollingBitHash) Name() string { return "rolling" }

func (RollingBitHash) Derive(longURL string) Candidate {
	var h int32
	for _, r := range longURL {
		h = (h << 5) - h + int32(r)
	}

	return intCandidate{value: int64(h)}
}

// intCandidate encodes abs(value) in base-36 and perturbs by incrementing the
// integer. Shared by RollingBitHash and Murmur32Base36.
type intCandidate struct {
	value int64
}

func (c intCandidate) Code() string {
	v := c.value
	if v < 0 {
		v = -v
	}

	return strconv.FormatInt(v, 36)
}

func (c intCandidate) Next() Candidate {
	return intCandidate{value: c.value + 1}
}
