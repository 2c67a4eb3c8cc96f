package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// Request payloads
// ============================================================================

// CreateCustomerRequest is the payload for POST /api/customers
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateTechnicianRequest is the payload for POST /api/technicians
type CreateTechnicianRequest struct {
	Name   string     `json:"name" validate:"required"`
	Skills StringList `json:"skills,omitempty" swaggertype:"array,string"`
}

// QuoteItemRequest is a single line of a CreateQuoteRequest
type QuoteItemRequest struct {
	Description string `json:"description,omitempty"`
	Quantity    Number `json:"quantity,omitempty" swaggertype:"number"`
	UnitPrice   Number `json:"unitPrice,omitempty" swaggertype:"number"`
}

// CreateQuoteRequest is the payload for POST /api/quotes
type CreateQuoteRequest struct {
	CustomerID string       `json:"customerId" validate:"required"`
	Items      LineItemList `json:"items,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

// CreateJobRequest is the payload for POST /api/jobs
type CreateJobRequest struct {
	CustomerID     string  `json:"customerId" validate:"required"`
	TechnicianID   string  `json:"technicianId,omitempty"`
	Title          string  `json:"title,omitempty"`
	Description    string  `json:"description,omitempty"`
	ScheduledStart *string `json:"scheduledStart,omitempty"`
}

// AssignTechnicianRequest is the payload for POST /api/jobs/{id}/assign
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technicianId"`
}

// CompleteJobRequest is the payload for POST /api/jobs/{id}/complete
type CompleteJobRequest struct {
	ResolutionNotes string `json:"resolutionNotes,omitempty"`
}

// ============================================================================
// Lenient field types
// ============================================================================

// Number accepts a JSON number or a numeric string. Anything else leaves it
// invalid instead of failing the whole payload.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler and never returns an error
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Or returns the number, or def when it is missing, non-numeric or zero
func (n Number) Or(def float64) float64 {
	if !n.Valid || n.Value == 0 {
		return def
	}
	return n.Value
}

// NewNumber returns a valid Number holding v
func NewNumber(v float64) Number {
	return Number{Value: v, Valid: true}
}

// StringList accepts either a JSON array or a single value. A single value
// becomes a one-element list; non-string elements keep their JSON text.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler and never returns an error
func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '[' {
		*l = StringList{jsonText(data)}
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	out := make(StringList, 0, len(elems))
	for _, elem := range elems {
		out = append(out, jsonText(elem))
	}
	*l = out
	return nil
}

// LineItemList accepts a JSON array of quote items. A non-array value is
// treated as an empty list and malformed elements decode as far as they can.
type LineItemList []QuoteItemRequest

// UnmarshalJSON implements json.Unmarshaler and never returns an error
func (l *LineItemList) UnmarshalJSON(data []byte) error {
	*l = nil
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	out := make(LineItemList, 0, len(elems))
	for _, elem := range elems {
		var item QuoteItemRequest
		_ = json.Unmarshal(elem, &item)
		out = append(out, item)
	}
	*l = out
	return nil
}

func jsonText(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(data))
}

// ============================================================================
// Responses
// ============================================================================

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
