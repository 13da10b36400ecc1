package stream

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hypercube/blobstore"
	"github.com/hupe1980/hypercube/record"
)

// blobSource decodes a single blob and closes it at the end.
type blobSource struct {
	blob blobstore.Blob
	dec  *Decoder
}

func (s *blobSource) Next(ctx context.Context) (record.Record, error) {
	return s.dec.Next(ctx)
}

func (s *blobSource) Close() error {
	decErr := s.dec.Close()
	if err := s.blob.Close(); err != nil {
		return err
	}
	return decErr
}

// FromBlob returns a Source reading the record stream stored under name.
// The returned Source implements io.Closer.
func FromBlob(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (Source, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	dec, err := NewDecoder(blob, append(opts, WithName(name))...)
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return &blobSource{blob: blob, dec: dec}, nil
}

// FromBlobs returns a Source reading every blob below prefix, in name order.
//
// Blobs are fetched concurrently, bounded by WithConcurrency, and buffered in
// memory before decoding starts. A failure to fetch any blob fails the call.
func FromBlobs(ctx context.Context, store blobstore.BlobStore, prefix string, opts ...Option) (Source, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	o := applyOptions(opts)
	payloads := make([][]byte, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range names {
		g.Go(func() error {
			data, err := blobstore.ReadAll(gctx, store, name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			payloads[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(names))
	for i, name := range names {
		dec, err := NewDecoder(bytes.NewReader(payloads[i]), append(opts, WithName(name))...)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		sources = append(sources, dec)
	}
	return Concat(sources...), nil
}
