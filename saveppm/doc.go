// Package saveppm saves raster images as PPM files into a blob store.
//
// Saver is the narrow capability callers depend on:
//
//	type Saver interface {
//	    Save(ctx context.Context, name string, img *raster.Image) error
//	}
//
// Store implements Saver (and Load) over any blobstore.BlobStore, so the same
// code writes to a local directory, memory, S3, or MinIO:
//
//	saver := saveppm.New(blobstore.NewLocalStore("./out"),
//	    saveppm.WithCodec(codec.P3{}),
//	    saveppm.WithCompression(compress.Zstd, compress.DefaultLevel),
//	    saveppm.WithLogger(saveppm.NewTextLogger(slog.LevelInfo)),
//	)
//	err := saver.Save(ctx, "gradient", img) // writes gradient.ppm.zst
//
// Multi fans a save out to several savers concurrently.
package saveppm
