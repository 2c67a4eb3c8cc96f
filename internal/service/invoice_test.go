package service_test

import (
	"testing"

	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/service"
	"github.com/straye-as/fieldservice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoice(t *testing.T) {
	r := newFakeResolver()
	r.quotes["quote-1"] = domain.Quote{
		ID:         "quote-1",
		CustomerID: "cust-1",
		Items: []domain.LineItem{
			{ID: "li-1", Description: "Filter", Quantity: 2, UnitPrice: 50},
			{ID: "li-2", Description: "Labor", Quantity: 1.5, UnitPrice: 80},
		},
		Total: 220,
	}

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name      string
		job       domain.Job
		wantItems []domain.LineItem
		wantTotal float64
		wantTech  bool
	}{
		{
			name:      "no quote",
			job:       domain.Job{ID: "job-1", CustomerID: "cust-1", Title: "Visit"},
			wantItems: []domain.LineItem{{Description: "Visit", Quantity: 1, UnitPrice: 0}},
			wantTotal: 0,
		},
		{
			name:      "unresolved quote",
			job:       domain.Job{ID: "job-1", CustomerID: "cust-1", Title: "Visit", QuoteID: strPtr("gone")},
			wantItems: []domain.LineItem{{Description: "Visit", Quantity: 1, UnitPrice: 0}},
			wantTotal: 0,
		},
		{
			name:      "resolved quote",
			job:       domain.Job{ID: "job-1", CustomerID: "cust-1", Title: "Visit", QuoteID: strPtr("quote-1"), TechnicianID: strPtr("tech-1")},
			wantItems: r.quotes["quote-1"].Items,
			wantTotal: 220,
			wantTech:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := service.BuildInvoice(r, tt.job, testutil.FixedTime)

			assert.NotEmpty(t, invoice.ID)
			assert.Equal(t, tt.job.ID, invoice.JobID)
			assert.Equal(t, domain.InvoiceStatusOpen, invoice.Status)
			assert.Equal(t, testutil.FixedTime, invoice.IssuedAt)
			assert.Equal(t, tt.wantTotal, invoice.Total)
			assert.Equal(t, domain.SumLineItems(invoice.LineItems), invoice.Total)

			require.Len(t, invoice.LineItems, len(tt.wantItems))
			for i, want := range tt.wantItems {
				got := invoice.LineItems[i]
				assert.Equal(t, want.Description, got.Description)
				assert.Equal(t, want.Quantity, got.Quantity)
				assert.Equal(t, want.UnitPrice, got.UnitPrice)
				assert.NotEmpty(t, got.ID)
			}

			require.NotNil(t, invoice.Customer)
			assert.Equal(t, "Acme", invoice.Customer.Name)
			if tt.wantTech {
				require.NotNil(t, invoice.Technician)
				assert.Equal(t, "Jules", invoice.Technician.Name)
			} else {
				assert.Nil(t, invoice.Technician)
			}
		})
	}
}

func TestBuildInvoice_SnapshotIsIndependent(t *testing.T) {
	r := newFakeResolver()
	job := domain.Job{ID: "job-1", CustomerID: "cust-1", Title: "Visit"}

	invoice := service.BuildInvoice(r, job, testutil.FixedTime)
	require.NotNil(t, invoice.Customer)

	r.customers["cust-1"] = domain.Customer{ID: "cust-1", Name: "Renamed"}
	assert.Equal(t, "Acme", invoice.Customer.Name)
}
