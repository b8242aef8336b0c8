package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultMIMEType = "application/octet-stream"

// File describes a stored file.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	AbsolutePath string // empty for remote backends
	RelativePath string
}

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Storage is implemented by LocalStorage and S3Storage. Paths are relative
// and slash separated; paths escaping the storage root are rejected with
// ErrInvalidPath.
type Storage interface {
	// Put writes r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader) (*File, error)
	Get(ctx context.Context, path string) ([]byte, error)
	// Open streams a file; the caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	// DeleteDir recursively removes a directory.
	DeleteDir(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
	Size(ctx context.Context, path string) (int64, error)
	LastModified(ctx context.Context, path string) (time.Time, error)
	// List returns the direct children of dir.
	List(ctx context.Context, dir string) ([]Entry, error)
	Copy(ctx context.Context, from, to string) error
	Move(ctx context.Context, from, to string) error
	URL(path string) string
	// Save stores an uploaded file. A path ending in "/" or empty is treated
	// as a directory and the sanitized upload name is appended.
	Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error)
}

// PutString writes s to path.
func PutString(ctx context.Context, s Storage, path, content string) (*File, error) {
	return s.Put(ctx, path, strings.NewReader(content))
}

// PutUnique writes r under dir with a random name that keeps ext.
func PutUnique(ctx context.Context, s Storage, dir, ext string, r io.Reader) (*File, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return s.Put(ctx, path.Join(dir, uuid.NewString()+ext), r)
}

// uploadPath resolves the target of Save.
func uploadPath(fh *multipart.FileHeader, p string) string {
	name := SanitizeFilename(fh.Filename)
	if p == "" || strings.HasSuffix(p, "/") || path.Base(p) == "." {
		return path.Join(p, name)
	}
	return p
}

// sniff reads the head of r to detect its MIME type and returns a reader
// that still yields the whole stream.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	head = head[:n]
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), r), nil
}

var mediaExtensions = map[string][]string{
	"image/": {".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp", ".tiff", ".tif", ".heic", ".heif", ".avif"},
	"video/": {".mp4", ".mpeg", ".mpg", ".webm", ".mov", ".avi", ".mkv", ".3gp"},
	"audio/": {".mp3", ".ogg", ".wav", ".aac", ".m4a", ".opus", ".flac"},
}

// isMedia trusts the sniffed type and falls back to the extension only when
// the content is not recognised at all.
func isMedia(fh *multipart.FileHeader, prefix string) bool {
	if fh == nil {
		return false
	}
	if mimeType, err := GetMIMEType(fh); err == nil && mimeType != defaultMIMEType {
		return strings.HasPrefix(mimeType, prefix)
	}
	return slices.Contains(mediaExtensions[prefix], strings.ToLower(GetExtension(fh)))
}

func IsImage(fh *multipart.FileHeader) bool { return isMedia(fh, "image/") }
func IsVideo(fh *multipart.FileHeader) bool { return isMedia(fh, "video/") }
func IsAudio(fh *multipart.FileHeader) bool { return isMedia(fh, "audio/") }

// GetExtension returns the extension of the upload name including the dot.
func GetExtension(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return filepath.Ext(fh.Filename)
}

// GetMIMEType sniffs the content of the upload rather than trusting its name.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	mimeType, _, err := sniff(f)
	return mimeType, err
}

// ValidateSize fails with ErrFileTooLarge when the declared size exceeds
// maxBytes.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, fh.Size, maxBytes)
	}
	return nil
}

// ValidateMIMEType accepts any type when allowed is empty.
func ValidateMIMEType(fh *multipart.FileHeader, allowed ...string) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if len(allowed) == 0 {
		return nil
	}
	mimeType, err := GetMIMEType(fh)
	if err != nil {
		return err
	}
	if slices.Contains(allowed, mimeType) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mimeType)
}

// Hash returns the hex digest of the upload, sha256 when h is nil.
func Hash(fh *multipart.FileHeader, h hash.Hash) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}
	if h == nil {
		h = sha256.New()
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashFile, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SanitizeFilename strips directories and NUL bytes from an upload name.
// Names that reduce to nothing become "unnamed".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}
