package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ewb/internal/fetch"
)

// Bump when CachedPage changes shape; old entries then read as misses.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит тела загруженных страниц по sha256(URL).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedPage is the on-disk form of a successful fetch.
type CachedPage struct {
	Schema      uint16
	URL         string // запрошенный URL (ключ)
	FinalURL    string // после редиректов
	Status      int
	ContentType string
	Charset     string
	Body        []byte // уже в UTF-8
	FetchedAt   time.Time
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return filepath.Join(c.dir, "pages", hex.EncodeToString(sum[:])+".mp")
}

// Put stores resp under rawURL. A nil cache ignores the call.
func (c *DiskCache) Put(rawURL string, resp *fetch.Response) (err error) {
	if c == nil || resp == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(rawURL)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	page := CachedPage{
		Schema:      diskCacheSchemaVersion,
		URL:         rawURL,
		FinalURL:    resp.URL,
		Status:      resp.Status,
		ContentType: resp.ContentType,
		Charset:     resp.Charset,
		Body:        resp.Body,
		FetchedAt:   time.Now().UTC(),
	}
	if err = msgpack.NewEncoder(f).Encode(&page); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Get returns the cached response for rawURL. Entries written with an
// older schema, or for a different URL with the same hash, are misses.
func (c *DiskCache) Get(rawURL string) (*fetch.Response, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(rawURL))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var page CachedPage
	if err := msgpack.NewDecoder(f).Decode(&page); err != nil {
		return nil, false, err
	}
	if page.Schema != diskCacheSchemaVersion || page.URL != rawURL {
		return nil, false, nil
	}
	return &fetch.Response{
		URL:         page.FinalURL,
		Status:      page.Status,
		ContentType: page.ContentType,
		Charset:     page.Charset,
		Body:        page.Body,
	}, true, nil
}

// DropAll removes every cached page.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
