package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"github.com/straye-as/fieldservice-api/internal/service"
	"github.com/straye-as/fieldservice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver resolves from fixed maps
type fakeResolver struct {
	customers   map[string]domain.Customer
	technicians map[string]domain.Technician
	quotes      map[string]domain.Quote
}

func (r fakeResolver) Customer(id string) (domain.Customer, bool) {
	c, ok := r.customers[id]
	return c, ok
}

func (r fakeResolver) Technician(id string) (domain.Technician, bool) {
	t, ok := r.technicians[id]
	return t, ok
}

func (r fakeResolver) Quote(id string) (domain.Quote, bool) {
	q, ok := r.quotes[id]
	return q, ok
}

func newFakeResolver() fakeResolver {
	return fakeResolver{
		customers: map[string]domain.Customer{
			"cust-1": {ID: "cust-1", Name: "Acme"},
		},
		technicians: map[string]domain.Technician{
			"tech-1": {ID: "tech-1", Name: "Jules", Skills: []string{"HVAC"}},
		},
		quotes: map[string]domain.Quote{},
	}
}

func decodeQuoteRequest(t *testing.T, body string) domain.CreateQuoteRequest {
	t.Helper()
	var req domain.CreateQuoteRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestNormalizeCustomer(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.CreateCustomerRequest
		want    string
		wantErr error
	}{
		{
			name: "trims name",
			req:  domain.CreateCustomerRequest{Name: "  Acme  ", Email: "a@example.com"},
			want: "Acme",
		},
		{
			name:    "missing name",
			req:     domain.CreateCustomerRequest{Email: "a@example.com"},
			wantErr: service.ErrNameRequired,
		},
		{
			name:    "whitespace name",
			req:     domain.CreateCustomerRequest{Name: "   "},
			wantErr: service.ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer, err := service.NormalizeCustomer(tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, service.ErrInvalidInput)
				assert.EqualError(t, err, "name is required")
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, customer.ID)
			assert.Equal(t, tt.want, customer.Name)
			assert.Equal(t, tt.req.Email, customer.Email)
			assert.Empty(t, customer.Phone)
			assert.Empty(t, customer.Address)
		})
	}
}

func TestNormalizeTechnician_Skills(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "array", body: `{"name":"Jo","skills":["HVAC","Plumbing"]}`, want: []string{"HVAC", "Plumbing"}},
		{name: "single value", body: `{"name":"Jo","skills":"HVAC"}`, want: []string{"HVAC"}},
		{name: "absent", body: `{"name":"Jo"}`, want: []string{}},
		{name: "null", body: `{"name":"Jo","skills":null}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req domain.CreateTechnicianRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			tech, err := service.NormalizeTechnician(req)
			require.NoError(t, err)
			assert.Equal(t, "Jo", tech.Name)
			assert.Equal(t, tt.want, tech.Skills)
		})
	}

	t.Run("missing name", func(t *testing.T) {
		_, err := service.NormalizeTechnician(domain.CreateTechnicianRequest{Skills: domain.StringList{"HVAC"}})
		assert.ErrorIs(t, err, service.ErrNameRequired)
	})
}

func TestNormalizeQuote_LineItems(t *testing.T) {
	r := newFakeResolver()

	req := decodeQuoteRequest(t, `{
		"customerId": "cust-1",
		"notes": "Spring service",
		"items": [
			{"description": "Filter", "quantity": 2, "unitPrice": 50},
			{"quantity": "3", "unitPrice": "12.5"},
			{"description": "Labor", "quantity": "lots", "unitPrice": "free"},
			{"description": "Zero", "quantity": 0, "unitPrice": 10}
		]
	}`)

	quote, err := service.NormalizeQuote(req, r, testutil.FixedTime)
	require.NoError(t, err)

	require.Len(t, quote.Items, 4)
	assert.Equal(t, "Filter", quote.Items[0].Description)
	assert.Equal(t, 2.0, quote.Items[0].Quantity)
	assert.Equal(t, 50.0, quote.Items[0].UnitPrice)

	assert.Equal(t, "Line 2", quote.Items[1].Description)
	assert.Equal(t, 3.0, quote.Items[1].Quantity)
	assert.Equal(t, 12.5, quote.Items[1].UnitPrice)

	assert.Equal(t, 1.0, quote.Items[2].Quantity)
	assert.Equal(t, 0.0, quote.Items[2].UnitPrice)

	assert.Equal(t, 1.0, quote.Items[3].Quantity)

	for _, item := range quote.Items {
		assert.NotEmpty(t, item.ID)
	}

	assert.Equal(t, 100.0+37.5+0+10, quote.Total)
	assert.Equal(t, domain.SumLineItems(quote.Items), quote.Total)
	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, testutil.FixedTime, quote.CreatedAt)
	assert.Nil(t, quote.ApprovedAt)
	assert.Equal(t, "Spring service", quote.Notes)
}

func TestNormalizeQuote_TotalMatchesItems(t *testing.T) {
	r := newFakeResolver()

	tests := []struct {
		name string
		body string
		want float64
	}{
		{name: "no items", body: `{"customerId":"cust-1"}`, want: 0},
		{name: "empty items", body: `{"customerId":"cust-1","items":[]}`, want: 0},
		{name: "items not an array", body: `{"customerId":"cust-1","items":"nope"}`, want: 0},
		{name: "single item", body: `{"customerId":"cust-1","items":[{"quantity":4,"unitPrice":2.5}]}`, want: 10},
		{name: "default quantity", body: `{"customerId":"cust-1","items":[{"unitPrice":7}]}`, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := service.NormalizeQuote(decodeQuoteRequest(t, tt.body), r, testutil.FixedTime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, quote.Total)
			assert.Equal(t, domain.SumLineItems(quote.Items), quote.Total)
			assert.NotNil(t, quote.Items)
		})
	}
}

func TestNormalizeQuote_UnresolvedCustomer(t *testing.T) {
	r := newFakeResolver()

	for _, customerID := range []string{"", "unknown"} {
		_, err := service.NormalizeQuote(domain.CreateQuoteRequest{CustomerID: customerID}, r, testutil.FixedTime)
		assert.ErrorIs(t, err, service.ErrCustomerRefNotFound)
		assert.EqualError(t, err, "customerId not found")
	}
}

func TestNormalizeJob(t *testing.T) {
	r := newFakeResolver()

	t.Run("defaults", func(t *testing.T) {
		job, err := service.NormalizeJob(domain.CreateJobRequest{CustomerID: "cust-1"}, r, testutil.FixedTime)
		require.NoError(t, err)
		assert.Equal(t, service.DefaultJobTitle, job.Title)
		assert.Nil(t, job.TechnicianID)
		assert.Nil(t, job.QuoteID)
		assert.Nil(t, job.ScheduledStart)
		assert.Equal(t, domain.JobStatusScheduled, job.Status)
		assert.Equal(t, testutil.FixedTime, job.CreatedAt)
		assert.NotNil(t, job.Logs)
		assert.Empty(t, job.Logs)
	})

	t.Run("with technician and schedule", func(t *testing.T) {
		start := "next tuesday"
		job, err := service.NormalizeJob(domain.CreateJobRequest{
			CustomerID:     "cust-1",
			TechnicianID:   "tech-1",
			Title:          "Install",
			Description:    "New unit",
			ScheduledStart: &start,
		}, r, testutil.FixedTime)
		require.NoError(t, err)
		require.NotNil(t, job.TechnicianID)
		assert.Equal(t, "tech-1", *job.TechnicianID)
		require.NotNil(t, job.ScheduledStart)
		assert.Equal(t, "next tuesday", *job.ScheduledStart)
		assert.Equal(t, "Install", job.Title)
		assert.Equal(t, "New unit", job.Description)
	})

	t.Run("unresolved customer", func(t *testing.T) {
		_, err := service.NormalizeJob(domain.CreateJobRequest{CustomerID: "nope"}, r, testutil.FixedTime)
		assert.ErrorIs(t, err, service.ErrCustomerRefNotFound)
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := service.NormalizeJob(domain.CreateJobRequest{TechnicianID: "tech-1"}, r, testutil.FixedTime)
		assert.ErrorIs(t, err, service.ErrCustomerRefNotFound)
	})

	t.Run("unresolved technician", func(t *testing.T) {
		_, err := service.NormalizeJob(domain.CreateJobRequest{CustomerID: "cust-1", TechnicianID: "ghost"}, r, testutil.FixedTime)
		assert.ErrorIs(t, err, service.ErrTechnicianRefNotFound)
		assert.EqualError(t, err, "technicianId not found")
	})
}

func TestNormalizers_AcceptTransaction(t *testing.T) {
	store := testutil.NewTestStore(t)
	customer := testutil.CreateTestCustomer(t, store, "Acme")

	err := store.View(context.Background(), func(tx *repository.Tx) error {
		_, err := service.NormalizeQuote(domain.CreateQuoteRequest{CustomerID: customer.ID}, tx, tx.Now())
		return err
	})
	assert.NoError(t, err)
}
