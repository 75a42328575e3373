package plumbing

import (
	"io"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryObjectSuite struct {
	suite.Suite
}

func TestMemoryObjectSuite(t *testing.T) {
	suite.Run(t, new(MemoryObjectSuite))
}

func (s *MemoryObjectSuite) TestHash() {
	o := &MemoryObject{}
	o.SetType(BlobObject)
	o.SetSize(14)

	_, err := o.Write([]byte("Hello, World!\n"))
	s.NoError(err)

	s.Equal("8ab686eafeb1f44702738c8b0f24f2567c36da6d", o.Hash().String())

	o.SetType(CommitObject)
	s.Equal("8ab686eafeb1f44702738c8b0f24f2567c36da6d", o.Hash().String())
}

func (s *MemoryObjectSuite) TestHashNotFilled() {
	o := &MemoryObject{}
	o.SetType(BlobObject)
	o.SetSize(14)

	s.Equal(ZeroHash, o.Hash())
}

func (s *MemoryObjectSuite) TestType() {
	o := &MemoryObject{}
	o.SetType(BlobObject)
	s.Equal(BlobObject, o.Type())
}

func (s *MemoryObjectSuite) TestSize() {
	o := &MemoryObject{}
	o.SetSize(42)
	s.Equal(int64(42), o.Size())
}

func (s *MemoryObjectSuite) TestReader() {
	o := &MemoryObject{}
	_, err := o.Write([]byte("foo"))
	s.NoError(err)

	reader, err := o.Reader()
	s.NoError(err)
	defer func() { s.NoError(reader.Close()) }()

	b, err := io.ReadAll(reader)
	s.NoError(err)
	s.Equal([]byte("foo"), b)
}

func (s *MemoryObjectSuite) TestWriter() {
	o := &MemoryObject{}

	writer, err := o.Writer()
	s.NoError(err)
	defer func() { s.NoError(writer.Close()) }()

	n, err := writer.Write([]byte("foo"))
	s.NoError(err)
	s.Equal(3, n)

	s.Equal([]byte("foo"), o.Contents())
	s.Equal(int64(3), o.Size())
}
