// Package catalog keeps named series snapshots in an in-memory database.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	memdb "github.com/hashicorp/go-memdb"
	"github.com/rickb777/date/v2/timespan"

	"github.com/on-the-ground/lazy_series_go/series"
	"github.com/on-the-ground/lazy_series_go/shared/helper"
)

const table = "series"

var ErrNotFound = fmt.Errorf("series not found")

// Entry is one stored snapshot.
type Entry struct {
	ID    string
	Name  string
	Ring  string
	Nodes int
	Data  []byte
	// Span covers the snapshot walk and encoding.
	Span timespan.TimeSpan
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: {
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.UUIDFieldIndex{Field: "ID"},
					},
					"name": {
						Name:    "name",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Name"},
					},
					"ring": {
						Name:    "ring",
						Indexer: &memdb.StringFieldIndex{Field: "Ring"},
					},
				},
			},
		},
	}
}

type Catalog struct {
	db *memdb.MemDB
}

func New() (*Catalog, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Save snapshots s under name, replacing any entry of the same name.
func Save[T any](c *Catalog, name string, s *series.Series[T]) (*Entry, error) {
	start := time.Now()
	snap, err := s.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %q: %w", name, err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", name, err)
	}
	entry := &Entry{
		ID:    uuid.New().String(),
		Name:  name,
		Ring:  snap.Ring,
		Nodes: len(snap.Nodes),
		Data:  data,
		Span:  timespan.BetweenTimes(start, time.Now()),
	}

	txn := c.db.Txn(true)
	defer txn.Abort()

	old, err := first(txn, "name", name)
	switch {
	case err == nil:
		entry.ID = old.ID
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	if err := txn.Insert(table, entry); err != nil {
		return nil, err
	}
	txn.Commit()
	return entry, nil
}

// Load rebuilds the series stored under name in engine e.
func Load[T any](c *Catalog, name string, e *series.Engine[T]) (*series.Series[T], error) {
	entry, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return e.Unmarshal(entry.Data)
}

func (c *Catalog) Get(name string) (*Entry, error) {
	txn := c.db.Txn(false)
	defer txn.Abort()
	return first(txn, "name", name)
}

// List returns every entry ordered by name.
func (c *Catalog) List() ([]*Entry, error) {
	return c.list("name")
}

// ListByRing returns the entries over the named coefficient ring.
func (c *Catalog) ListByRing(ring string) ([]*Entry, error) {
	return c.list("ring", ring)
}

func (c *Catalog) Delete(name string) error {
	txn := c.db.Txn(true)
	defer txn.Abort()

	entry, err := first(txn, "name", name)
	if err != nil {
		return err
	}
	if err := txn.Delete(table, entry); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (c *Catalog) list(index string, args ...any) ([]*Entry, error) {
	txn := c.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, err
	}
	return helper.CollectTyped[*Entry](it.Next)
}

func first(txn *memdb.Txn, index string, key string) (*Entry, error) {
	entry, err := helper.GetTypedValueOf[*Entry](func() (any, error) {
		return txn.First(table, index, key)
	})
	if errors.Is(err, helper.ErrNoValue) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return entry, err
}
