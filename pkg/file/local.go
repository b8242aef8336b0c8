package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/utilkit/pkg/logger"
)

// LocalConfig configures LocalStorage from the environment.
type LocalConfig struct {
	Dir           string        `env:"STORAGE_DIR" envDefault:"./storage/files"`
	BaseURL       string        `env:"STORAGE_BASE_URL" envDefault:"/files/"`
	UploadTimeout time.Duration `env:"STORAGE_UPLOAD_TIMEOUT" envDefault:"0s"`
}

// LocalStorage keeps files under a base directory. Every path is resolved
// inside it; files are created 0644 and directories 0755.
type LocalStorage struct {
	baseDir       string
	baseURL       string
	uploadTimeout time.Duration
	log           *slog.Logger
}

var _ Storage = (*LocalStorage)(nil)

type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout bounds Put and Save.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) { s.uploadTimeout = timeout }
}

func WithLocalLogger(log *slog.Logger) LocalOption {
	return func(s *LocalStorage) { s.log = logger.OrDefault(log) }
}

// NewLocalStorage resolves baseDir to an absolute path and creates it.
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{baseDir: abs, baseURL: baseURL, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("file.local"))
	return s, nil
}

func NewLocalStorageFromConfig(cfg LocalConfig, opts ...LocalOption) (*LocalStorage, error) {
	return NewLocalStorage(cfg.Dir, cfg.BaseURL, append([]LocalOption{WithLocalUploadTimeout(cfg.UploadTimeout)}, opts...)...)
}

func (s *LocalStorage) BaseDir() string { return s.baseDir }

func (s *LocalStorage) Put(ctx context.Context, path string, r io.Reader) (*File, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	if abs == s.baseDir {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	mimeType, body, err := sniff(r)
	if err != nil {
		return nil, err
	}

	dst, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	written, err := copyContext(ctx, dst, body)
	if cerr := dst.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %v", ErrFailedToWriteFile, cerr)
	}
	if err != nil {
		s.removePartial(ctx, abs)
		return nil, err
	}

	return &File{
		Filename:     filepath.Base(abs),
		Size:         written,
		MIMEType:     mimeType,
		Extension:    filepath.Ext(abs),
		AbsolutePath: abs,
		RelativePath: s.rel(abs),
	}, nil
}

// copyContext copies in 32KB chunks and stops as soon as ctx is done.
func copyContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	var written int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			nw, err := dst.Write(buf[:n])
			written += int64(nw)
			if err != nil {
				return written, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}
}

func (s *LocalStorage) removePartial(ctx context.Context, abs string) {
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.WarnContext(ctx, "failed to remove partial file", logger.Path(abs), logger.Error(err))
	}
}

func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	f, err := s.Put(ctx, uploadPath(fh, path), src)
	if err != nil {
		return nil, err
	}
	f.Filename = SanitizeFilename(fh.Filename)
	f.Extension = GetExtension(fh)
	return f, nil
}

func (s *LocalStorage) Get(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return b, nil
}

func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	abs, _, err := s.statFile(ctx, path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

func (s *LocalStorage) Size(ctx context.Context, path string) (int64, error) {
	_, info, err := s.statFile(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *LocalStorage) LastModified(ctx context.Context, path string) (time.Time, error) {
	_, info, err := s.statFile(ctx, path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Delete refuses directories; use DeleteDir for those.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	abs, _, err := s.statFile(ctx, path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

func (s *LocalStorage) DeleteDir(ctx context.Context, path string) error {
	abs, err := s.statDir(ctx, path)
	if err != nil {
		return err
	}
	if abs == s.baseDir {
		return fmt.Errorf("%w: refusing to delete the storage root", ErrInvalidPath)
	}
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteDirectory, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}
	abs, err := s.resolvePath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

func (s *LocalStorage) List(ctx context.Context, dir string) ([]Entry, error) {
	abs, err := s.statDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	items, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		e := Entry{
			Name:  item.Name(),
			Path:  s.rel(filepath.Join(abs, item.Name())),
			IsDir: item.IsDir(),
		}
		if !e.IsDir {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *LocalStorage) Copy(ctx context.Context, from, to string) error {
	rc, err := s.Open(ctx, from)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	_, err = s.Put(ctx, to, rc)
	return err
}

// Move renames within the storage root, creating parent directories of to.
func (s *LocalStorage) Move(ctx context.Context, from, to string) error {
	src, _, err := s.statFile(ctx, from)
	if err != nil {
		return err
	}
	dst, err := s.resolvePath(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}

// URL joins path to the base URL; absolute paths are returned as is.
func (s *LocalStorage) URL(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	if strings.HasPrefix(path, "/") {
		return path
	}
	return s.baseURL + path
}

// statFile resolves path and requires a regular file there.
func (s *LocalStorage) statFile(ctx context.Context, path string) (string, os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	abs, err := s.resolvePath(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return abs, info, nil
}

func (s *LocalStorage) statDir(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := s.resolvePath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return abs, nil
}

// resolvePath joins path to the base directory and rejects anything that
// ends up outside it.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(path)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if abs != s.baseDir && !strings.HasPrefix(abs, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return abs, nil
}

func (s *LocalStorage) rel(abs string) string {
	rel, err := filepath.Rel(s.baseDir, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}
