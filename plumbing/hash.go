package plumbing

import (
	"bytes"
	"encoding/hex"
	"sort"
	"strconv"

	"github.com/go-treedelta/go-treedelta/plumbing/hash"
)

// Hash is the content address of an immutable object. Two equal hashes
// reference byte-identical content; that equivalence is what allows
// identical subtrees to be skipped without being read.
type Hash [hash.Size]byte

// ZeroHash is Hash with value zero. It stands for "no object"; note that
// the empty tree has a regular, non-zero hash.
var ZeroHash Hash

// ComputeHash computes the hash for a given ObjectType and content.
func ComputeHash(t ObjectType, content []byte) Hash {
	h := NewHasher(t, int64(len(content)))
	h.Write(content)
	return h.Sum()
}

// NewHash returns a new Hash from a hexadecimal hash representation.
func NewHash(s string) Hash {
	b, _ := hex.DecodeString(s)

	var h Hash
	copy(h[:], b)
	return h
}

// IsZero returns true if the hash is the zero value.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the slice of bytes containing the hash.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Compare compares the hash's sum with a slice of bytes.
func (h Hash) Compare(b []byte) int {
	return bytes.Compare(h[:], b)
}

// Hasher computes object hashes using the canonical "<type> <size>\0"
// header, so the id of an object only depends on its type and content,
// never on which storer wrote it.
type Hasher struct {
	hash.Hash
}

func NewHasher(t ObjectType, size int64) Hasher {
	h := Hasher{hash.New(hash.CryptoType)}
	h.Reset(t, size)
	return h
}

func (h Hasher) Reset(t ObjectType, size int64) {
	h.Hash.Reset()
	h.Write(t.Bytes())
	h.Write([]byte(" "))
	h.Write([]byte(strconv.FormatInt(size, 10)))
	h.Write([]byte{0})
}

func (h Hasher) Sum() (hash Hash) {
	copy(hash[:], h.Hash.Sum(nil))
	return
}

// HashesSort sorts a slice of Hashes in increasing order.
func HashesSort(a []Hash) {
	sort.Sort(HashSlice(a))
}

// HashSlice attaches the methods of sort.Interface to []Hash, sorting in
// increasing order.
type HashSlice []Hash

func (p HashSlice) Len() int           { return len(p) }
func (p HashSlice) Less(i, j int) bool { return p[i].Compare(p[j].Bytes()) < 0 }
func (p HashSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
