// Package file stores files behind one Storage interface with two backends:
// LocalStorage on the filesystem and S3Storage on Amazon S3 or any S3
// compatible service (MinIO, Wasabi, R2).
//
//	store, err := file.NewLocalStorage("./storage", "/files/")
//	if err != nil {
//		return err
//	}
//	f, err := file.PutString(ctx, store, "reports/2026.txt", "hello")
//	url := store.URL(f.RelativePath) // "/files/reports/2026.txt"
//
// Paths are relative and slash separated. LocalStorage resolves every path
// inside its base directory and rejects the rest with ErrInvalidPath; S3Storage
// rejects keys with ".." segments. Missing files report ErrFileNotFound on both
// backends, and S3 API errors are mapped onto the same sentinels.
//
// # Uploads
//
// Save stores a multipart upload. The helpers below inspect an upload before
// it is stored; MIME detection sniffs the content instead of trusting the
// file name:
//
//	if err := file.ValidateSize(fh, 5<<20); err != nil {
//		return err
//	}
//	if err := file.ValidateMIMEType(fh, "image/jpeg", "image/png"); err != nil {
//		return err
//	}
//	f, err := store.Save(ctx, fh, "avatars/")
//
// # Configuration
//
// LocalConfig and S3Config carry env tags for pkg/config:
//
//	var cfg file.S3Config
//	config.MustLoad(&cfg)
//	store, err := file.NewS3Storage(ctx, cfg)
package file
