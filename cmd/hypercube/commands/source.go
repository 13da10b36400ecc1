package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/hypercube"
	"github.com/hupe1980/hypercube/blobstore"
	"github.com/hupe1980/hypercube/blobstore/minio"
	"github.com/hupe1980/hypercube/blobstore/s3"
	"github.com/hupe1980/hypercube/cube"
	"github.com/hupe1980/hypercube/internal/config"
	"github.com/hupe1980/hypercube/stream"
)

// openStore returns the blob store behind src. For the local backend it
// returns nil when src.Path names a single file or stdin.
func openStore(ctx context.Context, src config.SourceConfig) (blobstore.BlobStore, error) {
	switch src.Backend {
	case config.BackendS3:
		return s3.New(ctx, src.Bucket,
			s3.WithRegion(src.Region),
			s3.WithEndpoint(src.Endpoint),
		)
	case config.BackendMinio:
		return minio.Dial(src.Endpoint, src.AccessKey, src.SecretKey, src.Secure, src.Bucket, "")
	case config.BackendLocal:
		if src.Path == "-" {
			return nil, nil
		}
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, nil
		}
		return blobstore.NewLocalStore(src.Path), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", src.Backend)
	}
}

func (a *app) loadOptions() ([]hypercube.Option, error) {
	c, err := hypercube.CodecByName(a.cfg.Source.Codec)
	if err != nil {
		return nil, err
	}
	loc, err := a.cfg.Ingest.TimeLocation()
	if err != nil {
		return nil, err
	}
	return []hypercube.Option{
		hypercube.WithLogger(a.logger),
		hypercube.WithMetricsCollector(a.metrics),
		hypercube.WithCodec(c),
		hypercube.WithEnrich(a.cfg.Ingest.Enrich),
		hypercube.WithLocation(loc),
		hypercube.WithRateLimit(a.cfg.Ingest.Rate, a.cfg.Ingest.Burst),
		hypercube.WithSkipInvalid(a.cfg.Ingest.SkipInvalid),
		hypercube.WithExpectedMeasures(a.cfg.Cube.ExpectedMeasures...),
	}, nil
}

// loadCube loads the configured source. stdin is read when the local path
// is "-".
func (a *app) loadCube(ctx context.Context, stdin io.Reader) (*cube.Cube, error) {
	opts, err := a.loadOptions()
	if err != nil {
		return nil, err
	}

	src := a.cfg.Source
	store, err := openStore(ctx, src)
	if err != nil {
		return nil, err
	}
	if store != nil {
		a.logger.WithSource(src.Backend+":"+src.Prefix).DebugContext(ctx, "loading blobs")
		return hypercube.LoadBlobs(ctx, store, src.Prefix, opts...)
	}

	c, _ := hypercube.CodecByName(src.Codec)

	var r io.Reader = stdin
	name := "stdin"
	if src.Path != "-" {
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, name = f, src.Path
	}

	dec, err := stream.NewDecoder(r, stream.WithCodec(c), stream.WithName(name))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	a.logger.WithSource(name).DebugContext(ctx, "loading stream")
	return hypercube.Load(ctx, dec, opts...)
}
