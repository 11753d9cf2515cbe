package persistence

import (
	"context"
	"fmt"

	"github.com/hupe1980/cgmdust/blobstore"
	"github.com/hupe1980/cgmdust/internal/resource"
	"github.com/hupe1980/cgmdust/pipeline"
)

// Options configures Save and Load.
type Options struct {
	Compression Compression

	// Resources throttles the bytes moved to and from the store.
	Resources *resource.Controller
}

// DefaultOptions returns Zstandard compression without throttling.
func DefaultOptions() Options {
	return Options{Compression: CompressionZstd}
}

// Save encodes res and writes it to store under name.
func Save(ctx context.Context, store blobstore.Store, name string, res *pipeline.Result, optFns ...func(o *Options)) error {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	data, err := Marshal(res, opts.Compression)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := opts.Resources.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Load reads and decodes the result stored under name. Memory-mapped blobs
// are decoded in place; other blobs are read in chunks through the IO budget.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...func(o *Options)) (*pipeline.Result, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	var data []byte
	if m, ok := blob.(blobstore.Mappable); ok {
		if err := opts.Resources.AcquireIO(ctx, int(blob.Size())); err != nil {
			return nil, err
		}
		data, err = m.Bytes()
	} else {
		r := resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, blob), opts.Resources)
		data, err = blobstore.ReadFull(blob, r)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	res, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return res, nil
}

// Stat reads only the header of the result stored under name.
func Stat(ctx context.Context, store blobstore.Store, name string) (FileHeader, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return FileHeader{}, err
	}
	defer blob.Close()

	buf := make([]byte, HeaderSize)
	if n, err := blob.ReadAt(ctx, buf, 0); n < HeaderSize {
		return FileHeader{}, fmt.Errorf("%w: %s: read %d header bytes: %v", ErrTruncated, name, n, err)
	}
	return ReadHeader(buf)
}
