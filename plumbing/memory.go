package plumbing

import (
	"bytes"
	"io"
)

// MemoryObject is an EncodedObject held fully in memory. It is the default
// object implementation used by storers when building new objects.
type MemoryObject struct {
	t    ObjectType
	h    Hash
	cont []byte
	sz   int64
}

// Hash returns the object Hash. The hash is calculated on-the-fly the first
// time it's called and cached for the subsequent calls, but only once the
// written content has reached the announced Size.
func (o *MemoryObject) Hash() Hash {
	if o.h == ZeroHash && int64(len(o.cont)) == o.sz {
		o.h = ComputeHash(o.t, o.cont)
	}

	return o.h
}

// Type returns the ObjectType.
func (o *MemoryObject) Type() ObjectType { return o.t }

// SetType sets the ObjectType.
func (o *MemoryObject) SetType(t ObjectType) { o.t = t }

// Size returns the size of the object.
func (o *MemoryObject) Size() int64 { return o.sz }

// SetSize sets the object size, the given size should be written afterwards.
func (o *MemoryObject) SetSize(s int64) { o.sz = s }

// Contents returns the raw contents of the object.
func (o *MemoryObject) Contents() []byte { return o.cont }

// Reader returns an io.ReadCloser used to read the object's content.
func (o *MemoryObject) Reader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(o.cont)), nil
}

// Writer returns an io.WriteCloser used to write the object's content.
func (o *MemoryObject) Writer() (io.WriteCloser, error) {
	return o, nil
}

func (o *MemoryObject) Write(p []byte) (n int, err error) {
	o.cont = append(o.cont, p...)
	o.sz = int64(len(o.cont))

	return len(p), nil
}

// Close releases any resources consumed by the object when it is acting as an
// io.WriteCloser.
func (o *MemoryObject) Close() error { return nil }
