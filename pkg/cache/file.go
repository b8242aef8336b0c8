package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/utilkit/pkg/logger"
)

const tempPrefix = ".tmp-"

// FileConfig configures a FileCache from the environment.
type FileConfig struct {
	Dir        string        `env:"CACHE_DIR" envDefault:"./storage/cache"`
	DefaultTTL time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"0s"`
}

// envelope is the on-disk form of an entry. ExpiresAt is in Unix
// milliseconds; zero means the entry never expires.
type envelope struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expires_at"`
}

func (e envelope) expired(now time.Time) bool {
	return e.ExpiresAt != 0 && now.UnixMilli() >= e.ExpiresAt
}

// FileCache stores one file per key under dir. File names are the sha256 of
// the key fanned out over two directory levels.
type FileCache struct {
	dir  string
	opts options
}

var _ Store = (*FileCache)(nil)

// NewFileCache creates dir if needed.
func NewFileCache(dir string, opts ...Option) (*FileCache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.Join(ErrWrite, errors.New("empty cache directory"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrWrite, err)
	}
	o := newOptions(opts)
	o.log = o.log.With(logger.Component("cache.file"))
	return &FileCache{dir: dir, opts: o}, nil
}

func NewFileCacheFromConfig(cfg FileConfig, opts ...Option) (*FileCache, error) {
	return NewFileCache(cfg.Dir, append([]Option{WithDefaultTTL(cfg.DefaultTTL)}, opts...)...)
}

func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	h := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, h[:2], h[2:4], h)
}

func (c *FileCache) Get(ctx context.Context, key string, dst any) error {
	e, err := c.read(ctx, key)
	if err != nil {
		return err
	}
	return decode(e.Value, dst)
}

// read loads the live envelope of key, deleting it when expired or corrupt.
func (c *FileCache) read(ctx context.Context, key string) (envelope, error) {
	if err := validKey(key); err != nil {
		return envelope{}, err
	}
	if err := ctx.Err(); err != nil {
		return envelope{}, err
	}

	p := c.path(key)
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return envelope{}, ErrNotFound
	}
	if err != nil {
		return envelope{}, errors.Join(ErrRead, err)
	}

	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		c.opts.log.WarnContext(ctx, "corrupt cache entry removed", logger.Key(key), logger.Error(err))
		c.remove(ctx, p)
		return envelope{}, ErrNotFound
	}
	if e.expired(c.opts.clock()) {
		c.remove(ctx, p)
		return envelope{}, ErrExpired
	}
	return e, nil
}

func (c *FileCache) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encode(value)
	if err != nil {
		return err
	}
	e := envelope{Value: raw}
	if exp := c.opts.expiresAt(ttl); !exp.IsZero() {
		e.ExpiresAt = exp.UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	if err := writeAtomic(c.path(key), b); err != nil {
		c.opts.log.WarnContext(ctx, "cache write failed", logger.Key(key), logger.Error(err))
		return errors.Join(ErrWrite, err)
	}
	return nil
}

// writeAtomic writes to a temp file in the target directory and renames it
// over p so readers never observe a partial entry.
func writeAtomic(p string, b []byte) error {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (c *FileCache) Has(ctx context.Context, key string) bool {
	_, err := c.read(ctx, key)
	return err == nil
}

func (c *FileCache) Forget(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

// Flush removes every entry but keeps the cache directory.
func (c *FileCache) Flush(ctx context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return errors.Join(ErrRead, err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(filepath.Join(c.dir, entry.Name())); err != nil {
			return errors.Join(ErrWrite, err)
		}
	}
	return nil
}

// Prune deletes expired and unreadable entries along with leftover temp
// files, and returns how many files were removed.
func (c *FileCache) Prune(ctx context.Context) (int, error) {
	now := c.opts.clock()
	removed := 0
	err := filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if !strings.HasPrefix(d.Name(), tempPrefix) {
			b, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			var e envelope
			if json.Unmarshal(b, &e) == nil && !e.expired(now) {
				return nil
			}
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, errors.Join(ErrWrite, err)
	}
	return removed, nil
}

func (c *FileCache) remove(ctx context.Context, p string) {
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.opts.log.WarnContext(ctx, "cache cleanup failed", logger.Path(p), logger.Error(err))
	}
}
