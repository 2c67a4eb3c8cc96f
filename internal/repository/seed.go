package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/fieldservice-api/internal/domain"
)

// Seed inserts the demo customers and technicians the service starts with
func Seed(ctx context.Context, store *Store) error {
	return store.RunInTransaction(ctx, func(tx *Tx) error {
		tx.Customers().Put(domain.Customer{
			ID:      uuid.NewString(),
			Name:    "Acme Heating & Air",
			Email:   "owner@acmehvac.example",
			Phone:   "555-0100",
			Address: "123 Elm Street",
		})
		tx.Customers().Put(domain.Customer{
			ID:      uuid.NewString(),
			Name:    "Bright Cleaning",
			Email:   "hello@brightcleaning.example",
			Phone:   "555-0200",
			Address: "42 Oak Avenue",
		})
		tx.Technicians().Put(domain.Technician{
			ID:     uuid.NewString(),
			Name:   "Jules Winnfield",
			Skills: []string{"HVAC", "Maintenance"},
		})
		tx.Technicians().Put(domain.Technician{
			ID:     uuid.NewString(),
			Name:   "Jackie Brown",
			Skills: []string{"Cleaning", "Organizing"},
		})
		return nil
	})
}
