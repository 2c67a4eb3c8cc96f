package repository

import (
	"context"

	"github.com/straye-as/fieldservice-api/internal/domain"
)

// Repository gives read access and plain inserts for one collection.
// Lifecycle changes that touch several records go through Store.RunInTransaction.
type Repository[T entity[T]] struct {
	store *Store
	pick  func(*storeState) *table[T]
	txTab func(*Tx) *TxTable[T]
}

type (
	CustomerRepository   = Repository[domain.Customer]
	TechnicianRepository = Repository[domain.Technician]
	QuoteRepository      = Repository[domain.Quote]
	JobRepository        = Repository[domain.Job]
	InvoiceRepository    = Repository[domain.Invoice]
)

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{
		store: store,
		pick:  func(s *storeState) *table[domain.Customer] { return s.customers },
		txTab: (*Tx).Customers,
	}
}

func NewTechnicianRepository(store *Store) *TechnicianRepository {
	return &TechnicianRepository{
		store: store,
		pick:  func(s *storeState) *table[domain.Technician] { return s.technicians },
		txTab: (*Tx).Technicians,
	}
}

func NewQuoteRepository(store *Store) *QuoteRepository {
	return &QuoteRepository{
		store: store,
		pick:  func(s *storeState) *table[domain.Quote] { return s.quotes },
		txTab: (*Tx).Quotes,
	}
}

func NewJobRepository(store *Store) *JobRepository {
	return &JobRepository{
		store: store,
		pick:  func(s *storeState) *table[domain.Job] { return s.jobs },
		txTab: (*Tx).Jobs,
	}
}

func NewInvoiceRepository(store *Store) *InvoiceRepository {
	return &InvoiceRepository{
		store: store,
		pick:  func(s *storeState) *table[domain.Invoice] { return s.invoices },
		txTab: (*Tx).Invoices,
	}
}

// Create appends v to the collection
func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	return r.store.RunInTransaction(ctx, func(tx *Tx) error {
		r.txTab(tx).Put(*v)
		return nil
	})
}

// GetByID returns the record with the given id or ErrRecordNotFound
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := readTable(r.store, r.pick, id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &v, nil
}

// List returns all records in insertion order
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return listTable(r.store, r.pick), nil
}

// Count returns the number of records in the collection
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.pick(&r.store.state).order), nil
}
