package checksum

import (
	"crypto/sha256"
	"crypto/subtle"
)

type sha256Digest struct {
	name string
}

func NewSHA256() *sha256Digest {
	return &sha256Digest{name: string(SHA256)}
}

func (s *sha256Digest) Sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

func (s *sha256Digest) Verify(data []byte, expected []byte) bool {
	sum := s.Sum(data)
	return subtle.ConstantTimeCompare(sum, expected) == 1
}

func (s *sha256Digest) Size() int {
	return sha256.Size
}

func (s *sha256Digest) Name() string {
	return s.name
}
