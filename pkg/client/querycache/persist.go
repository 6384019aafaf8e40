package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Snapshot is one persisted cache entry.
type Snapshot struct {
	Key       string          `json:"key"`
	Resource  string          `json:"resource"`
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Persister stores cache snapshots between runs.
type Persister interface {
	Save(ctx context.Context, snapshots []Snapshot) error
	Load(ctx context.Context) ([]Snapshot, error)
}

// Init prepares the cache for use by restoring any persisted snapshot.
func (c *Cache) Init(ctx context.Context) error {
	_, err := c.Restore(ctx)
	return err
}

// Persist writes every entry through the configured Persister. Without a
// Persister it is a no-op.
func (c *Cache) Persist(ctx context.Context) error {
	if c.cfg.Persister == nil {
		return nil
	}

	c.mu.RLock()
	snapshots := make([]Snapshot, 0, len(c.entries))
	for key, e := range c.entries {
		data := e.raw
		if e.value != nil {
			b, err := json.Marshal(e.value)
			if err != nil {
				c.cfg.Logger.Warn("skipping unserialisable cache entry", zap.String("key", key), zap.Error(err))
				continue
			}
			data = b
		}
		snapshots = append(snapshots, Snapshot{Key: key, Resource: e.resource, Data: data, FetchedAt: e.fetchedAt})
	}
	c.mu.RUnlock()

	if err := c.cfg.Persister.Save(ctx, snapshots); err != nil {
		return fmt.Errorf("persist query cache: %w", err)
	}
	c.cfg.Logger.Debug("query cache persisted", zap.Int("entries", len(snapshots)))
	return nil
}

// Restore loads persisted entries, keeping their fetch time so
// freshness windows carry across restarts. It returns the restored count.
func (c *Cache) Restore(ctx context.Context) (int, error) {
	if c.cfg.Persister == nil {
		return 0, nil
	}
	snapshots, err := c.cfg.Persister.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore query cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	restored := 0
	for _, s := range snapshots {
		if s.Key == "" || len(s.Data) == 0 {
			continue
		}
		if _, exists := c.entries[s.Key]; exists {
			continue
		}
		c.entries[s.Key] = &entry{resource: s.Resource, raw: s.Data, fetchedAt: s.FetchedAt}
		restored++
	}
	c.cfg.Logger.Debug("query cache restored", zap.Int("entries", restored))
	return restored, nil
}

// FilePersister keeps snapshots in a JSON file.
type FilePersister struct {
	Path string
}

// Save writes to a temporary file and renames it into place.
func (p FilePersister) Save(_ context.Context, snapshots []Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}
	tmp := p.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p.Path)
}

// Load returns no snapshots when the file does not exist yet.
func (p FilePersister) Load(_ context.Context) ([]Snapshot, error) {
	b, err := os.ReadFile(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshots []Snapshot
	if err := json.Unmarshal(b, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// MemoryPersister holds snapshots for the life of the process.
type MemoryPersister struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (p *MemoryPersister) Save(_ context.Context, snapshots []Snapshot) error {
	p.mu.Lock()
	p.snapshots = append([]Snapshot(nil), snapshots...)
	p.mu.Unlock()
	return nil
}

func (p *MemoryPersister) Load(_ context.Context) ([]Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Snapshot(nil), p.snapshots...), nil
}
