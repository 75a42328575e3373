// Package hash provides a way for managing the
// underlying hash implementations used across go-treedelta.
package hash

import (
	"crypto"
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/pjbgf/sha1cd"
)

const (
	// SHA1Size is the amount of bytes a SHA1 hash yields.
	SHA1Size = 20
	// SHA1HexSize is the size of a SHA1 hash when represented in hexadecimal.
	SHA1HexSize = SHA1Size * 2
	// SHA256Size is the amount of bytes a SHA256 hash yields.
	SHA256Size = 32
	// SHA256HexSize is the size of a SHA256 hash when represented in hexadecimal.
	SHA256HexSize = SHA256Size * 2
)

var algos = map[crypto.Hash]func() hash.Hash{}

func init() {
	// SHA1 default is collision-detecting, as object ids are the sole
	// basis for assuming two subtrees are identical.
	algos[crypto.SHA1] = sha1cd.New
	algos[crypto.SHA256] = sha256.New
}

// RegisterHash allows for the hash algorithm used to be overridden.
// This ensures the hash selection for go-treedelta must be explicit,
// when overriding the default implementation.
func RegisterHash(h crypto.Hash, f func() hash.Hash) error {
	if f == nil {
		return fmt.Errorf("cannot register hash: f is nil")
	}

	switch h {
	case crypto.SHA1, crypto.SHA256:
		algos[h] = f
		return nil
	default:
		return fmt.Errorf("unsupported hash function: %v", h)
	}
}

// Hash is the same as hash.Hash. This allows consumers
// to not having to import this package alongside "hash".
type Hash interface {
	hash.Hash
}

// New returns a new Hash for the given hash function.
// It panics if the hash function is not registered.
func New(h crypto.Hash) Hash {
	hh, ok := algos[h]
	if !ok {
		panic(fmt.Sprintf("hash algorithm not registered: %v", h))
	}
	return hh()
}
