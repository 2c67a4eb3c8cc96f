package domain

import (
	"time"
)

// Customer represents a client organization or household that jobs are performed for
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Technician represents a field worker that can be assigned to jobs
type Technician struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusConverted QuoteStatus = "converted"
)

// quoteTransitions lists the states each quote status may move to.
// Convert is not gated on approval.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:     {QuoteStatusApproved, QuoteStatusConverted},
	QuoteStatusApproved:  {QuoteStatusConverted},
	QuoteStatusConverted: {},
}

// IsValid checks if the QuoteStatus is a valid enum value
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusApproved, QuoteStatusConverted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a quote in status s may move to next
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LineItem is a priced line on a quote or an invoice
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Amount returns quantity multiplied by unit price
func (li LineItem) Amount() float64 {
	return li.Quantity * li.UnitPrice
}

// SumLineItems returns the sum of quantity x unit price over items
func SumLineItems(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Amount()
	}
	return total
}

// Quote is a priced proposal for a customer that can be converted into a job
type Quote struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Items      []LineItem  `json:"items"`
	Notes      string      `json:"notes"`
	Total      float64     `json:"total"`
	Status     QuoteStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	ApprovedAt *time.Time  `json:"approvedAt,omitempty"`
}

// JobStatus represents the lifecycle state of a job
type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusScheduled: {JobStatusCompleted},
	JobStatusCompleted: {},
}

// IsValid checks if the JobStatus is a valid enum value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusScheduled, JobStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a job in status s may move to next
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JobLog is a timestamped entry in a job's work history
type JobLog struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Job is a unit of field work for a customer, optionally assigned to a technician
type Job struct {
	ID             string     `json:"id"`
	CustomerID     string     `json:"customerId"`
	TechnicianID   *string    `json:"technicianId"`
	QuoteID        *string    `json:"quoteId,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ScheduledStart *string    `json:"scheduledStart"`
	Status         JobStatus  `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Logs           []JobLog   `json:"logs"`
}

// InvoiceStatus represents the state of an invoice. Only open is in use.
type InvoiceStatus string

const (
	InvoiceStatusOpen InvoiceStatus = "open"
)

// Invoice bills a job. Customer and Technician are copies taken at invoicing time.
type Invoice struct {
	ID         string        `json:"id"`
	JobID      string        `json:"jobId"`
	Customer   *Customer     `json:"customer"`
	Technician *Technician   `json:"technician"`
	LineItems  []LineItem    `json:"lineItems"`
	Total      float64       `json:"total"`
	Status     InvoiceStatus `json:"status"`
	IssuedAt   time.Time     `json:"issuedAt"`
}

// ConvertQuoteResult is returned when a quote is converted into a job
type ConvertQuoteResult struct {
	Quote *Quote `json:"quote"`
	Job   *Job   `json:"job"`
}
