// Package repository holds the in-memory store and the per-entity
// repositories built on top of it.
package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/straye-as/fieldservice-api/internal/domain"
)

// ErrRecordNotFound is returned when an id does not resolve in its collection
var ErrRecordNotFound = errors.New("record not found")

// entity is implemented by every stored domain type
type entity[T any] interface {
	EntityID() string
	Clone() T
}

// table is an insertion-ordered collection keyed by id
type table[T entity[T]] struct {
	order []string
	rows  map[string]T
}

func newTable[T entity[T]]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return row.Clone(), true
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id].Clone())
	}
	return out
}

type storeState struct {
	customers   *table[domain.Customer]
	technicians *table[domain.Technician]
	quotes      *table[domain.Quote]
	jobs        *table[domain.Job]
	invoices    *table[domain.Invoice]
}

func newStoreState() storeState {
	return storeState{
		customers:   newTable[domain.Customer](),
		technicians: newTable[domain.Technician](),
		quotes:      newTable[domain.Quote](),
		jobs:        newTable[domain.Job](),
		invoices:    newTable[domain.Invoice](),
	}
}

// Stats holds per-collection record counts
type Stats struct {
	Customers   int `json:"customers"`
	Technicians int `json:"technicians"`
	Quotes      int `json:"quotes"`
	Jobs        int `json:"jobs"`
	Invoices    int `json:"invoices"`
}

// Store is the in-memory system of record for all entity collections.
// Writers are serialized by a single lock; readers share it and only ever
// observe committed state.
type Store struct {
	mu    sync.RWMutex
	state storeState
	nowFn func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for entity timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: newStoreState(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time according to the store clock
func (s *Store) Now() time.Time {
	return s.nowFn()
}

// RunInTransaction executes fn with exclusive access to the store. Writes made
// through tx are applied only when fn returns nil.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(&s.state, s.nowFn(), false)
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// View executes fn against committed state under the read lock. Writes made
// through tx are discarded.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(newTx(&s.state, s.nowFn(), true))
}

// Stats returns the number of records in each collection
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Customers:   len(s.state.customers.order),
		Technicians: len(s.state.technicians.order),
		Quotes:      len(s.state.quotes.order),
		Jobs:        len(s.state.jobs.order),
		Invoices:    len(s.state.invoices.order),
	}
}

func readTable[T entity[T]](s *Store, pick func(*storeState) *table[T], id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(&s.state).get(id)
}

func listTable[T entity[T]](s *Store, pick func(*storeState) *table[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(&s.state).list()
}
