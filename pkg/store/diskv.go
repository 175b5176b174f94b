package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/moodlog/pkg/entry"
)

const (
	entriesBucket = "entries"
	stagingDir    = ".staging"
)

// Diskv stores one JSON document per entry under <base>/entries/<id>.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
	logger   *slog.Logger

	// serializes check-then-write sequences; diskv only locks single calls
	mu sync.Mutex
}

// OpenDiskv creates a Diskv table rooted at basePath.
func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: base path unknown", ErrStorageUnavailable)
	}
	staging := filepath.Join(basePath, stagingDir)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("%w: ensure base path: %w", ErrStorageUnavailable, err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           staging,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      0, // other processes write the same files
		}),
		basePath: basePath,
		logger:   slog.Default().With("component", "store", "driver", "diskv"),
	}, nil
}

// BasePath is the directory holding the entries bucket.
func (p *Diskv) BasePath() string {
	return p.basePath
}

func (p *Diskv) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	id, err := strconv.ParseInt(pk.FileName, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad entry key %q: %w", key, err)
	}
	e.ID = id
	return e, nil
}

func (p *Diskv) each(ctx context.Context, keep func(*entry.Entry) bool) ([]*entry.Entry, error) {
	all := make([]*entry.Entry, 0)
	for key := range p.d.KeysPrefix(entriesBucket+"-", ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			if os.IsNotExist(err) {
				// erased between listing and reading
				continue
			}
			p.logger.Warn("skipping unreadable entry", "key", key, "err", err)
			continue
		}
		if keep(e) {
			all = append(all, e)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

func (p *Diskv) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	all, err := p.each(ctx, func(*entry.Entry) bool { return true })
	if err != nil {
		return nil, err
	}
	sortNewestFirst(all)
	return all, nil
}

func (p *Diskv) ListBetween(ctx context.Context, start, end string) ([]*entry.Entry, error) {
	all, err := p.each(ctx, func(e *entry.Entry) bool { return inRange(e, start, end) })
	if err != nil {
		return nil, err
	}
	sortByTimestamp(all)
	return all, nil
}

func (p *Diskv) Get(ctx context.Context, id int64) (*entry.Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	key := toKey(id)
	if !p.d.Has(key) {
		return nil, false, nil
	}
	e, err := p.read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading entry %d: %w", id, err)
	}
	return e, true, nil
}

func (p *Diskv) Insert(ctx context.Context, e *entry.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	key := toKey(e.ID)
	if p.d.Has(key) {
		return fmt.Errorf("insert entry %d: %w", e.ID, ErrConstraintViolation)
	}
	return p.write(key, e)
}

func (p *Diskv) Update(ctx context.Context, e *entry.Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	key := toKey(e.ID)
	if !p.d.Has(key) {
		return false, nil
	}
	if err := p.write(key, e); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Diskv) Delete(ctx context.Context, e *entry.Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	key := toKey(e.ID)
	if !p.d.Has(key) {
		return false, nil
	}
	if err := p.d.Erase(key); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("erasing entry %d: %w", e.ID, err)
	}
	return true, nil
}

func (p *Diskv) write(key string, e *entry.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("writing entry %d: %w", e.ID, err)
	}
	return nil
}

// Close is a no-op; every write is already on disk.
func (p *Diskv) Close() error {
	return nil
}

// keyToPathTransform splits on the first "-" only so the sign of a
// negative id stays in the file name.
func keyToPathTransform(s string) *diskv.PathKey {
	bucket, name, ok := strings.Cut(s, "-")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{bucket},
		FileName: name,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `entries-id`
func toKey(id int64) string {
	return fmt.Sprintf("%s-%d", entriesBucket, id)
}
