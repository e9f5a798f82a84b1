package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"schematic/internal/diag"
	"schematic/internal/grid"
	"schematic/internal/scan"
	"schematic/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// CacheKey строит ключ кэша: H(schema || content || blank || gear || ragged || mode || explain).
// Всё, что влияет на результат скана, должно входить в ключ.
func CacheKey(content [32]byte, g grid.Options, s scan.Options) Digest {
	h := sha256.New()
	var buf [4]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	_, _ = h.Write(content[:])
	binary.LittleEndian.PutUint32(buf[:], uint32(g.Alphabet.Blank)) //nolint:gosec // rune fits
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:], uint32(g.Alphabet.Gear)) //nolint:gosec // rune fits
	_, _ = h.Write(buf[:])
	explain := byte(0)
	if s.Explain {
		explain = 1
	}
	_, _ = h.Write([]byte{byte(g.Ragged), byte(s.Mode), explain})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache хранит результаты сканов по CacheKey на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is a cached scan: the result plus the diagnostics it produced.
// Spans are stored with the FileID of the run that wrote them and are
// rebound on load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Result      scan.Result
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
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

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства очистки: подкаталог "scans".
	return filepath.Join(c.dir, "scans", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Entries written with another schema version are treated as misses.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// rebind points every span of the payload at file id.
func (p *DiskPayload) rebind(id source.FileID) {
	res := &p.Result
	for i := range res.Parts {
		res.Parts[i].Span.File = id
	}
	for i := range res.Gears {
		res.Gears[i].Symbol.Span.File = id
		for j := range res.Gears[i].Neighbours {
			res.Gears[i].Neighbours[j].Span.File = id
		}
	}
	for i := range p.Diagnostics {
		p.Diagnostics[i].Primary.File = id
		for j := range p.Diagnostics[i].Notes {
			p.Diagnostics[i].Notes[j].Span.File = id
		}
	}
}
