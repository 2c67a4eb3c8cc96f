package repository

import (
	"time"

	"github.com/straye-as/fieldservice-api/internal/domain"
)

// TxTable is a transaction-scoped view of one collection. Reads see the
// transaction's own staged writes first.
type TxTable[T entity[T]] struct {
	base  *table[T]
	dirty map[string]T
	added []string
}

func newTxTable[T entity[T]](base *table[T]) *TxTable[T] {
	return &TxTable[T]{base: base, dirty: make(map[string]T)}
}

// Get returns a copy of the record with the given id
func (t *TxTable[T]) Get(id string) (T, bool) {
	if row, ok := t.dirty[id]; ok {
		return row.Clone(), true
	}
	return t.base.get(id)
}

// Put stages an insert or replacement of v
func (t *TxTable[T]) Put(v T) {
	id := v.EntityID()
	if _, ok := t.Get(id); !ok {
		t.added = append(t.added, id)
	}
	t.dirty[id] = v.Clone()
}

// List returns committed records followed by records staged in this transaction
func (t *TxTable[T]) List() []T {
	out := make([]T, 0, len(t.base.order)+len(t.added))
	for _, id := range t.base.order {
		row, _ := t.Get(id)
		out = append(out, row)
	}
	for _, id := range t.added {
		out = append(out, t.dirty[id].Clone())
	}
	return out
}

func (t *TxTable[T]) commit() {
	for id, row := range t.dirty {
		t.base.rows[id] = row
	}
	t.base.order = append(t.base.order, t.added...)
}

// Tx is a unit of work over all collections
type Tx struct {
	now      time.Time
	readOnly bool

	customers   *TxTable[domain.Customer]
	technicians *TxTable[domain.Technician]
	quotes      *TxTable[domain.Quote]
	jobs        *TxTable[domain.Job]
	invoices    *TxTable[domain.Invoice]
}

func newTx(state *storeState, now time.Time, readOnly bool) *Tx {
	return &Tx{
		now:         now,
		readOnly:    readOnly,
		customers:   newTxTable(state.customers),
		technicians: newTxTable(state.technicians),
		quotes:      newTxTable(state.quotes),
		jobs:        newTxTable(state.jobs),
		invoices:    newTxTable(state.invoices),
	}
}

// Now returns the timestamp taken when the transaction started. Every entity
// touched by one operation shares it.
func (tx *Tx) Now() time.Time { return tx.now }

func (tx *Tx) Customers() *TxTable[domain.Customer]     { return tx.customers }
func (tx *Tx) Technicians() *TxTable[domain.Technician] { return tx.technicians }
func (tx *Tx) Quotes() *TxTable[domain.Quote]           { return tx.quotes }
func (tx *Tx) Jobs() *TxTable[domain.Job]               { return tx.jobs }
func (tx *Tx) Invoices() *TxTable[domain.Invoice]       { return tx.invoices }

// Customer resolves a customer reference
func (tx *Tx) Customer(id string) (domain.Customer, bool) { return tx.customers.Get(id) }

// Technician resolves a technician reference
func (tx *Tx) Technician(id string) (domain.Technician, bool) { return tx.technicians.Get(id) }

// Quote resolves a quote reference
func (tx *Tx) Quote(id string) (domain.Quote, bool) { return tx.quotes.Get(id) }

func (tx *Tx) commit() {
	if tx.readOnly {
		return
	}
	tx.customers.commit()
	tx.technicians.commit()
	tx.quotes.commit()
	tx.jobs.commit()
	tx.invoices.commit()
}
