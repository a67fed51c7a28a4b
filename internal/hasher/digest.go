package hasher

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
)

// Md5Digest hashes the URL with MD5 and encodes the digest as unpadded
// URL-safe base64. On collision it re-digests the previous candidate with a
// "1" suffix, chaining hashes of the digest rather than touching the input.
type Md5Digest struct{}

func (Md5Digest) Name() string { return "md5" }

func (Md5Digest) Derive(longURL string) Candidate {
	return digestCandidate{code: md5Code(longURL), digest: md5Code}
}

// Sha256Digest is the SHA-256 counterpart of Md5Digest, with the same chained
// perturbation.
type Sha256Digest struct{}

func (Sha256Digest) Name() string { return "sha256" }

func (Sha256Digest) Derive(longURL string) Candidate {
	return digestCandidate{code: sha256Code(longURL), digest: sha256Code}
}

type digestCandidate struct {
	code   string
	digest func(string) string
}

func (c digestCandidate) Code() string { return c.code }

func (c digestCandidate) Next() Candidate {
	return digestCandidate{code: c.digest(c.code + "1"), digest: c.digest}
}

func md5Code(s string) string {
	sum := md5.Sum([]byte(s))

	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func sha256Code(s string) string {
	sum := sha256.Sum256([]byte(s))

	return base64.RawURLEncoding.EncodeToString(sum[:])
}
