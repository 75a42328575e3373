// Package filesystem is a storage backend that keeps loose objects on a
// billy filesystem, one zlib-compressed file per object under
// objects/<2 hex>/<remaining hex>, each prefixed with the canonical
// "<type> <size>\0" header. The layout is append-only: an object file is
// never rewritten once it exists, which is what makes writes idempotent.
package filesystem

import (
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/go-treedelta/go-treedelta/config"
	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/cache"
	"github.com/go-treedelta/go-treedelta/utils/sync"
)

const (
	objectsDir = "objects"
	configFile = "config"
)

// ObjectStorage is a storer.EncodedObjectStorer backed by a billy
// filesystem, with an LRU cache in front of the read path.
type ObjectStorage struct {
	fs    billy.Filesystem
	cache cache.Object

	compression int
}

// NewObjectStorage returns an ObjectStorage over fs, tuned by the "config"
// file at the root of fs when one exists.
func NewObjectStorage(fs billy.Filesystem) (*ObjectStorage, error) {
	cfg := config.NewConfig()

	f, err := fs.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		defer f.Close()
		if cfg, err = config.ReadConfig(f); err != nil {
			return nil, err
		}
	}

	return NewObjectStorageWithConfig(fs, cfg), nil
}

// NewObjectStorageWithConfig returns an ObjectStorage over fs with the
// given configuration.
func NewObjectStorageWithConfig(fs billy.Filesystem, cfg *config.Config) *ObjectStorage {
	s := &ObjectStorage{
		fs:          fs,
		compression: cfg.Core.Compression,
	}

	if cfg.Cache.MaxSize > 0 {
		s.cache = cache.NewObjectLRU(cache.FileSize(cfg.Cache.MaxSize))
	}

	return s
}

// NewEncodedObject returns a new plumbing.MemoryObject.
func (s *ObjectStorage) NewEncodedObject() plumbing.EncodedObject {
	return &plumbing.MemoryObject{}
}

// SetEncodedObject writes the object as a loose object file and returns
// its hash. Writing an object that already exists is a no-op.
func (s *ObjectStorage) SetEncodedObject(o plumbing.EncodedObject) (plumbing.Hash, error) {
	if o.Type() != plumbing.TreeObject && o.Type() != plumbing.BlobObject {
		return plumbing.ZeroHash, plumbing.ErrInvalidType
	}

	h := o.Hash()
	path := s.objectPath(h)

	if _, err := s.fs.Stat(path); err == nil {
		// Content addressed: the existing file is byte-identical.
		return h, nil
	} else if !os.IsNotExist(err) {
		return plumbing.ZeroHash, err
	}

	// The object goes through a temp file and is renamed into place only
	// once fully written, so a failed write never leaves a truncated file
	// at the final path that the Stat fast path above would mistake for
	// the object.
	w, err := s.fs.TempFile(objectsDir, "tmp_obj_")
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := s.writeLoose(w, o); err != nil {
		w.Close()
		s.fs.Remove(w.Name())
		return plumbing.ZeroHash, err
	}

	if err := w.Close(); err != nil {
		s.fs.Remove(w.Name())
		return plumbing.ZeroHash, err
	}

	if err := s.fs.Rename(w.Name(), path); err != nil {
		s.fs.Remove(w.Name())
		return plumbing.ZeroHash, err
	}

	if s.cache != nil {
		s.cache.Put(o)
	}

	return h, nil
}

func (s *ObjectStorage) writeLoose(w io.Writer, o plumbing.EncodedObject) (err error) {
	var zw *zlib.Writer
	if s.compression == zlib.DefaultCompression {
		zw = sync.GetZlibWriter(w)
		defer sync.PutZlibWriter(zw)
	} else {
		if zw, err = zlib.NewWriterLevel(w, s.compression); err != nil {
			return err
		}
	}

	if _, err = fmt.Fprintf(zw, "%s %d", o.Type(), o.Size()); err != nil {
		return err
	}

	if _, err = zw.Write([]byte{0x00}); err != nil {
		return err
	}

	r, err := o.Reader()
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err = io.Copy(zw, r); err != nil {
		return err
	}

	return zw.Close()
}

// EncodedObject returns the object with the given hash, checking its type
// unless plumbing.AnyObject is given.
func (s *ObjectStorage) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	o, err := s.looseObject(h)
	if err != nil {
		return nil, err
	}

	if t != plumbing.AnyObject && o.Type() != t {
		return nil, plumbing.ErrObjectNotFound
	}

	return o, nil
}

// HasEncodedObject returns nil if the object exists.
func (s *ObjectStorage) HasEncodedObject(h plumbing.Hash) error {
	if s.cache != nil {
		if _, ok := s.cache.Get(h); ok {
			return nil
		}
	}

	if _, err := s.fs.Stat(s.objectPath(h)); err != nil {
		if os.IsNotExist(err) {
			return plumbing.ErrObjectNotFound
		}

		return err
	}

	return nil
}

func (s *ObjectStorage) looseObject(h plumbing.Hash) (plumbing.EncodedObject, error) {
	if s.cache != nil {
		if o, ok := s.cache.Get(h); ok {
			return o, nil
		}
	}

	f, err := s.fs.Open(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, plumbing.ErrObjectNotFound
		}

		return nil, err
	}
	defer f.Close()

	o, err := s.readLoose(f)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}

	if s.cache != nil {
		s.cache.Put(o)
	}

	return o, nil
}

func (s *ObjectStorage) readLoose(r io.Reader) (plumbing.EncodedObject, error) {
	zr, err := sync.GetZlibReader(r)
	if err != nil {
		return nil, err
	}
	defer sync.PutZlibReader(zr)

	buf := sync.GetBytesBuffer()
	defer sync.PutBytesBuffer(buf)

	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	header, content, ok := strings.Cut(string(data), "\x00")
	if !ok {
		return nil, fmt.Errorf("malformed loose object header")
	}

	typeName, sizeText, ok := strings.Cut(header, " ")
	if !ok {
		return nil, fmt.Errorf("malformed loose object header")
	}

	typ, err := plumbing.ParseObjectType(typeName)
	if err != nil {
		return nil, err
	}

	size, err := strconv.ParseInt(sizeText, 10, 64)
	if err != nil || size != int64(len(content)) {
		return nil, fmt.Errorf("loose object size mismatch")
	}

	o := &plumbing.MemoryObject{}
	o.SetType(typ)
	if _, err := o.Write([]byte(content)); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *ObjectStorage) objectPath(h plumbing.Hash) string {
	hex := h.String()
	return s.fs.Join(objectsDir, hex[0:2], hex[2:])
}
