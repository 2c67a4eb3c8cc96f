package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/straye-as/fieldservice-api/internal/domain"
)

// Default values applied while shaping payloads
const (
	DefaultJobTitle       = "Untitled Job"
	ConvertedJobTitle     = "Quoted Job"
	CompletedLogMessage   = "Completed"
	defaultLineQuantity   = 1
	defaultLineUnitPrice  = 0
	lineDescriptionFormat = "Line %d"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so reasons read like the payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Resolver looks up the entities a payload refers to. *repository.Tx implements it.
type Resolver interface {
	Customer(id string) (domain.Customer, bool)
	Technician(id string) (domain.Technician, bool)
}

// QuoteResolver additionally resolves quotes, which invoicing needs
type QuoteResolver interface {
	Resolver
	Quote(id string) (domain.Quote, bool)
}

// validationError turns a validator failure into a client-facing reason
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("failed to validate payload: %w", err)
	}

	fe := ve[0]
	switch {
	case fe.Tag() == "required" && fe.Field() == "name":
		return ErrNameRequired
	case fe.Tag() == "required" && fe.Field() == "customerId":
		return ErrCustomerRefNotFound
	}
	return newError(ErrInvalidInput, domain.GetValidationMessage(fe.Tag(), fe.Field()))
}

// NormalizeCustomer shapes a create payload into a new customer
func NormalizeCustomer(req domain.CreateCustomerRequest) (domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return domain.Customer{}, validationError(err)
	}

	return domain.Customer{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}, nil
}

// NormalizeTechnician shapes a create payload into a new technician
func NormalizeTechnician(req domain.CreateTechnicianRequest) (domain.Technician, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return domain.Technician{}, validationError(err)
	}

	skills := make([]string, len(req.Skills))
	copy(skills, req.Skills)

	return domain.Technician{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Skills: skills,
	}, nil
}

// NormalizeQuote shapes a create payload into a draft quote. Missing or
// non-numeric quantities default to 1 and unit prices to 0.
func NormalizeQuote(req domain.CreateQuoteRequest, r Resolver, now time.Time) (domain.Quote, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Quote{}, validationError(err)
	}
	if _, ok := r.Customer(req.CustomerID); !ok {
		return domain.Quote{}, ErrCustomerRefNotFound
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for i, item := range req.Items {
		description := item.Description
		if description == "" {
			description = fmt.Sprintf(lineDescriptionFormat, i+1)
		}
		items = append(items, domain.LineItem{
			ID:          uuid.NewString(),
			Description: description,
			Quantity:    item.Quantity.Or(defaultLineQuantity),
			UnitPrice:   item.UnitPrice.Or(defaultLineUnitPrice),
		})
	}

	return domain.Quote{
		ID:         uuid.NewString(),
		CustomerID: req.CustomerID,
		Items:      items,
		Notes:      req.Notes,
		Total:      domain.SumLineItems(items),
		Status:     domain.QuoteStatusDraft,
		CreatedAt:  now,
	}, nil
}

// NormalizeJob shapes a create payload into a scheduled job
func NormalizeJob(req domain.CreateJobRequest, r Resolver, now time.Time) (domain.Job, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Job{}, validationError(err)
	}
	if _, ok := r.Customer(req.CustomerID); !ok {
		return domain.Job{}, ErrCustomerRefNotFound
	}

	var technicianID *string
	if req.TechnicianID != "" {
		tech, ok := r.Technician(req.TechnicianID)
		if !ok {
			return domain.Job{}, ErrTechnicianRefNotFound
		}
		technicianID = &tech.ID
	}

	title := req.Title
	if title == "" {
		title = DefaultJobTitle
	}

	var scheduledStart *string
	if req.ScheduledStart != nil {
		s := *req.ScheduledStart
		scheduledStart = &s
	}

	return domain.Job{
		ID:             uuid.NewString(),
		CustomerID:     req.CustomerID,
		TechnicianID:   technicianID,
		Title:          title,
		Description:    req.Description,
		ScheduledStart: scheduledStart,
		Status:         domain.JobStatusScheduled,
		CreatedAt:      now,
		Logs:           []domain.JobLog{},
	}, nil
}
