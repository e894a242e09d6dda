// Package docstore persists each entity collection as a single XML document.
//
// The only write primitive is a whole-file rewrite. Every write runs under the
// collection's lock so a load-merge-rewrite sequence cannot lose a concurrent
// update; reads take a shared lock and read the file in one call so they never
// observe a half-written document.
package docstore

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/chapincloud/meterbill/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the document store.
var Module = fx.Provide(NewStore)

// Store manages the directory of persisted collections.
type Store struct {
	dir string
	log *zap.Logger

	mu          sync.Mutex
	collections map[string]*Collection
}

func NewStore(cfg config.Config, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:         cfg.DataDir,
		log:         log.Named("docstore"),
		collections: make(map[string]*Collection),
	}, nil
}

// Open is a constructor for tests and tools that bypass fx wiring.
func Open(dir string, log *zap.Logger) (*Store, error) {
	return NewStore(config.Config{DataDir: dir}, log)
}

// Collection returns the named collection, creating its handle on first use.
// The same *Collection is returned for every call with the same name, so all
// callers share one lock per backing file.
func (s *Store) Collection(name string) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c
	}
	c := &Collection{
		name: name,
		path: filepath.Join(s.dir, name+".xml"),
		log:  s.log.With(zap.String("collection", name)),
	}
	s.collections[name] = c
	return c
}

// Reset removes every collection file that was opened through this store.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	for _, c := range s.collections {
		c.mu.Lock()
		if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, err)
		}
		c.mu.Unlock()
	}
	return errs
}

// Collection is one persisted XML document.
type Collection struct {
	name string
	path string
	log  *zap.Logger
	mu   sync.RWMutex
}

// Load reads the whole document into doc. A missing or corrupt file degrades
// to the zero document with a logged warning; the caller never sees an error
// for storage unavailability.
func (c *Collection) Load(doc any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.load(doc)
	return nil
}

// Replace serializes doc and atomically overwrites the backing file.
func (c *Collection) Replace(doc any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store(doc)
}

// Update runs fn while holding the collection's write lock, so a
// load-merge-rewrite sequence observes and produces a consistent document.
func (c *Collection) Update(fn func(tx *Tx) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&Tx{c: c})
}

// Tx is the handle passed to Update callbacks.
type Tx struct {
	c *Collection
}

func (tx *Tx) Load(doc any) error {
	tx.c.load(doc)
	return nil
}

func (tx *Tx) Store(doc any) error {
	return tx.c.store(doc)
}

func (c *Collection) load(doc any) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("collection unreadable, loading empty", zap.Error(err))
		}
		return
	}
	if err := xml.Unmarshal(raw, doc); err != nil {
		// A failed unmarshal may leave doc partially filled.
		reflect.ValueOf(doc).Elem().SetZero()
		c.log.Warn("collection corrupt, loading empty", zap.Error(err))
	}
}

func (c *Collection) store(doc any) error {
	raw, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	raw = append([]byte(xml.Header), raw...)

	tmp, err := os.CreateTemp(filepath.Dir(c.path), c.name+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}
