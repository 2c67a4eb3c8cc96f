// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"github.com/stretchr/testify/require"
)

// FixedTime is the clock value returned by stores created with NewTestStore
var FixedTime = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// NewTestStore returns an empty store whose clock always returns FixedTime
func NewTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewStore(repository.WithClock(func() time.Time { return FixedTime }))
}

// CreateTestCustomer inserts a customer directly into the store
func CreateTestCustomer(t *testing.T, store *repository.Store, name string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   "test@example.com",
		Phone:   "555-0000",
		Address: "1 Test Street",
	}
	err := repository.NewCustomerRepository(store).Create(context.Background(), customer)
	require.NoError(t, err)
	return customer
}

// CreateTestTechnician inserts a technician directly into the store
func CreateTestTechnician(t *testing.T, store *repository.Store, name string, skills ...string) *domain.Technician {
	t.Helper()
	if skills == nil {
		skills = []string{}
	}
	tech := &domain.Technician{
		ID:     uuid.NewString(),
		Name:   name,
		Skills: skills,
	}
	err := repository.NewTechnicianRepository(store).Create(context.Background(), tech)
	require.NoError(t, err)
	return tech
}
