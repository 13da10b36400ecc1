// Package stream moves records between external storage and cubes.
//
// A Source yields records one at a time and reports io.EOF when exhausted.
// Sources exist for in-memory slices, channels, JSON Lines readers (plain,
// LZ4 or ZSTD, detected automatically) and blob stores. An Encoder writes the
// same JSON Lines format back out.
//
// A Pipeline drains a Source into a sink function. Reading and delivery run
// on separate goroutines joined by a bounded channel; the sink is always
// called from a single goroutine in source order, so it may insert into a
// cube without locking.
//
//	src, err := stream.FromBlobs(ctx, store, "2024/")
//	if err != nil {
//	    return err
//	}
//	stats, err := stream.NewPipeline(stream.WithSkipInvalid(true)).Run(ctx, src, func(r record.Record) error {
//	    c.Insert(toCell(r))
//	    return nil
//	})
package stream
