// Package hasher contains the code-derivation strategies that turn a long URL
// into a short code candidate, together with each strategy's perturbation rule
// for walking to the next candidate after a collision.
package hasher

import "sort"

// Candidate is one position in a strategy's candidate sequence.
type Candidate interface {
	// Code returns the short code at this position.
	Code() string

	// Next applies the strategy's perturbation and returns the following
	// candidate. It is only meaningful after Code collided.
	Next() Candidate
}

// Strategy derives the initial candidate for a long URL.
type Strategy interface {
	Name() string
	Derive(longURL string) Candidate
}

// Registry maps strategy names to implementations.
type Registry map[string]Strategy

// DefaultRegistry returns all built-in strategies keyed by name.
func DefaultRegistry() Registry {
	all := []Strategy{
		RollingBitHash{},
		Md5Digest{},
		Sha256Digest{},
		Murmur32Base36{},
		Murmur32Int{},
	}

	r := make(Registry, len(all))
	for _, s := range all {
		r[s.Name()] = s
	}

	return r
}

// Names returns the registered strategy names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
