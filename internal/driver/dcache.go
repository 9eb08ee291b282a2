package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lime/internal/diag"
	"lime/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is the cache key of one analysed buffer.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// DiskCache хранит диагностики файлов на диске, ключ - хеш содержимого и
// настроек анализа. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry stores.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Range    *CachedRange
	Hints    []CachedHint
}

type CachedHint struct {
	Message string
	Range   *CachedRange
}

// CachedRange keeps the buffer id so hints into the prelude survive.
type CachedRange struct {
	Buffer    string
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	// подкаталог "diags" - для удобства очистки
	return filepath.Join(c.dir, "diags", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // после Rename файла уже нет

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or one with another schema is a miss.
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
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diags"))
}

// cacheKey: H(schema || settings || content). Настройки, влияющие на набор
// диагностик, входят в ключ.
func cacheKey(buf *source.Buffer, opts Options) Digest {
	h := sha256.New()
	var hdr [2 + 4 + 8 + 1]byte
	binary.LittleEndian.PutUint16(hdr[0:], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint32(hdr[2:], uint32(opts.MaxErrors))
	binary.LittleEndian.PutUint64(hdr[6:], uint64(int64(opts.MaxDiagnostics)))
	// в debug внутренние ошибки несут стек, это другой текст диагностики
	if opts.Debug {
		hdr[14] = 1
	}
	_, _ = h.Write(hdr[:])
	sum := buf.ContentHash()
	_, _ = h.Write(sum[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func toCachedRange(sec *source.Section) *CachedRange {
	if sec == nil {
		return nil
	}
	id := ""
	if sec.Buffer != nil {
		id = sec.Buffer.ID()
	}
	return &CachedRange{
		Buffer:    id,
		StartLine: sec.Start.Line,
		StartCol:  sec.Start.Column,
		EndLine:   sec.End.Line,
		EndCol:    sec.End.Column,
	}
}

func toPayload(path string, items []diag.Diagnostic) *DiskPayload {
	p := &DiskPayload{Path: path, Diagnostics: make([]CachedDiagnostic, len(items))}
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Range:    toCachedRange(d.Range),
		}
		for _, h := range d.Hints {
			cd.Hints = append(cd.Hints, CachedHint{Message: h.Message, Range: toCachedRange(h.Range)})
		}
		p.Diagnostics[i] = cd
	}
	return p
}

// restore rebuilds diagnostics against live buffers; ranges into buffers
// that lookup does not know are dropped.
func (p *DiskPayload) restore(lookup func(id string) *source.Buffer) []diag.Diagnostic {
	section := func(r *CachedRange) *source.Section {
		if r == nil {
			return nil
		}
		buf := lookup(r.Buffer)
		if buf == nil {
			return nil
		}
		sec := source.NewSection(buf,
			source.Location{Line: r.StartLine, Column: r.StartCol},
			source.Location{Line: r.EndLine, Column: r.EndCol})
		return &sec
	}
	out := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), section(cd.Range), cd.Message)
		for _, h := range cd.Hints {
			d = d.WithHint(section(h.Range), h.Message)
		}
		out[i] = d
	}
	return out
}
