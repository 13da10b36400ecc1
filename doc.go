// Package hypercube provides an in-memory analytical cube for Go.
//
// A cube is an ordered collection of cells. Every cell carries string facts
// (dimension values), numeric measures and an optional millisecond
// timestamp. Each dimension keeps an inverted index from value to the set of
// cell positions holding it, so slicing and grouping never scan the cells.
//
// # Quick Start
//
//	c := cube.New().InsertMany(
//	    cell.New(map[string]string{"genre": "rock"}, map[string]float64{"views": 10}),
//	    cell.New(map[string]string{"genre": "jazz"}, map[string]float64{"views": 4}),
//	)
//	rock := c.Slice(cube.Query{"genre": "rock"})
//	fmt.Println(rock.Sum(0).Get("views")) // 10
//
// # Loading Record Streams
//
// Records are JSON Lines, optionally LZ4 or ZSTD compressed:
//
//	{"time": 1700000000, "facts": {"genre": "rock"}, "measures": {"views": 3}}
//
// Load drains any stream.Source into a cube. Record times are read as
// seconds. WithEnrich adds calendar facts before insertion:
//
//	dec, _ := stream.NewDecoder(file)
//	c, err := hypercube.Load(ctx, dec, hypercube.WithEnrich(true))
//
// LoadBlobs reads every stream below a prefix of a blobstore.BlobStore, such
// as a local directory, an S3 bucket or a MinIO bucket.
//
// # Queries
//
// Slice and Dice restrict a cube by fact values. Groups and SortedGroups
// partition a cube by one dimension. SliceTop keeps the best cells by a
// score. Every query returns a new cube sharing cell values with its source.
//
// # Observability
//
// Logger wraps log/slog. MetricsCollector receives ingest counts and, through
// Timed, query durations.
package hypercube
