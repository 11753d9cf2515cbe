package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
// It aliases os.ErrNotExist so filesystem errors match without translation.
var ErrNotFound = os.ErrNotExist

// Store is a flat namespace of immutable blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob. Readers never observe a partial write.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is implemented by blobs whose contents are already in memory.
type Mappable interface {
	// Bytes returns the contents. The slice is valid until the Blob is
	// closed.
	Bytes() ([]byte, error)
}

// ReadChunkSize bounds the bytes requested by a single ReadAt of a Reader.
const ReadChunkSize = 4 << 20

// ReadAll returns a copy of the full contents of b.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}
	return ReadFull(b, NewReader(ctx, b))
}

// ReadFull reads exactly b.Size() bytes from r, which reads the contents of
// b, e.g. a throttled NewReader.
func ReadFull(b Blob, r io.Reader) ([]byte, error) {
	size := b.Size()
	if size < 0 || int64(int(size)) != size {
		return nil, fmt.Errorf("blobstore: invalid blob size %d", size)
	}
	buf := make([]byte, size)
	if n, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("blobstore: short read: %d of %d bytes", n, size)
		}
		return nil, err
	}
	return buf, nil
}

// NewReader returns a sequential reader over b. Each Read issues one ReadAt
// of at most ReadChunkSize bytes.
func NewReader(ctx context.Context, b Blob) io.Reader {
	return &blobReader{ctx: ctx, b: b}
}

type blobReader struct {
	ctx context.Context
	b   Blob
	off int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	if r.off >= r.b.Size() {
		return 0, io.EOF
	}
	if len(p) > ReadChunkSize {
		p = p[:ReadChunkSize]
	}
	n, err := r.b.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if n > 0 && errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}

// Get opens name and reads it fully.
func Get(ctx context.Context, s Store, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return ReadAll(ctx, b)
}
