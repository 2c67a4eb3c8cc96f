package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/fieldservice-api/internal/domain"
)

// BuildInvoice derives an open invoice for job. Customer and technician are
// copied as they are now. Line items come from the quote the job references;
// without a resolvable quote the invoice gets a single zero-priced line named
// after the job.
func BuildInvoice(r QuoteResolver, job domain.Job, now time.Time) domain.Invoice {
	var customer *domain.Customer
	if c, ok := r.Customer(job.CustomerID); ok {
		customer = &c
	}

	var technician *domain.Technician
	if job.TechnicianID != nil {
		if t, ok := r.Technician(*job.TechnicianID); ok {
			technician = &t
		}
	}

	var lineItems []domain.LineItem
	if job.QuoteID != nil {
		if q, ok := r.Quote(*job.QuoteID); ok {
			lineItems = q.Items
		}
	}
	if lineItems == nil {
		lineItems = []domain.LineItem{{
			ID:          uuid.NewString(),
			Description: job.Title,
			Quantity:    1,
			UnitPrice:   0,
		}}
	}

	return domain.Invoice{
		ID:         uuid.NewString(),
		JobID:      job.ID,
		Customer:   customer,
		Technician: technician,
		LineItems:  lineItems,
		Total:      domain.SumLineItems(lineItems),
		Status:     domain.InvoiceStatusOpen,
		IssuedAt:   now,
	}
}
