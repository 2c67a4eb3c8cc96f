package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/metrics"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"go.uber.org/zap"
)

type JobService struct {
	store   *repository.Store
	jobRepo *repository.JobRepository
	metrics *metrics.Registry
	logger  *zap.Logger
}

func NewJobService(
	store *repository.Store,
	jobRepo *repository.JobRepository,
	metrics *metrics.Registry,
	logger *zap.Logger,
) *JobService {
	return &JobService{
		store:   store,
		jobRepo: jobRepo,
		metrics: metrics,
		logger:  logger,
	}
}

// Create validates the payload and stores a new scheduled job
func (s *JobService) Create(ctx context.Context, req *domain.CreateJobRequest) (*domain.Job, error) {
	var job domain.Job
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		j, err := NormalizeJob(*req, tx, tx.Now())
		if err != nil {
			return err
		}
		tx.Jobs().Put(j)
		job = j
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.metrics.RecordValidationFailure("job")
			s.logger.Debug("rejected job payload",
				zap.String("customer_id", req.CustomerID),
				zap.String("technician_id", req.TechnicianID),
				zap.Error(err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.metrics.RecordTransition("job", "create")
	s.logger.Info("job created",
		zap.String("job_id", job.ID),
		zap.String("customer_id", job.CustomerID))
	return &job, nil
}

func (s *JobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// AssignTechnician sets the job's technician and logs the assignment.
// Allowed in any job status.
func (s *JobService) AssignTechnician(ctx context.Context, id string, req *domain.AssignTechnicianRequest) (*domain.Job, error) {
	var job domain.Job
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		j, ok := tx.Jobs().Get(id)
		if !ok {
			return ErrJobNotFound
		}
		tech, ok := tx.Technician(req.TechnicianID)
		if !ok {
			return ErrTechnicianRefNotFound
		}

		j.TechnicianID = &tech.ID
		j.Logs = append(j.Logs, domain.JobLog{
			At:      tx.Now(),
			Message: fmt.Sprintf("Assigned to %s", tech.Name),
		})
		tx.Jobs().Put(j)
		job = j
		return nil
	})
	if err != nil {
		return nil, s.lifecycleError("assign", id, err)
	}

	s.metrics.RecordTransition("job", "assign")
	s.logger.Info("technician assigned to job",
		zap.String("job_id", job.ID),
		zap.String("technician_id", *job.TechnicianID))
	return &job, nil
}

// Complete moves a scheduled job to completed. The resolution notes, or
// "Completed" when there are none, are appended to the job log.
func (s *JobService) Complete(ctx context.Context, id string, req *domain.CompleteJobRequest) (*domain.Job, error) {
	var job domain.Job
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		j, ok := tx.Jobs().Get(id)
		if !ok {
			return ErrJobNotFound
		}
		if !j.Status.CanTransitionTo(domain.JobStatusCompleted) {
			return ErrJobAlreadyCompleted
		}

		message := CompletedLogMessage
		if req != nil && req.ResolutionNotes != "" {
			message = req.ResolutionNotes
		}

		now := tx.Now()
		j.Status = domain.JobStatusCompleted
		j.CompletedAt = &now
		j.Logs = append(j.Logs, domain.JobLog{At: now, Message: message})
		tx.Jobs().Put(j)
		job = j
		return nil
	})
	if err != nil {
		return nil, s.lifecycleError("complete", id, err)
	}

	s.metrics.RecordTransition("job", "complete")
	s.logger.Info("job completed", zap.String("job_id", job.ID))
	return &job, nil
}

// Invoice issues an open invoice for the job. The job itself is not modified.
func (s *JobService) Invoice(ctx context.Context, id string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		j, ok := tx.Jobs().Get(id)
		if !ok {
			return ErrJobNotFound
		}
		invoice = BuildInvoice(tx, j, tx.Now())
		tx.Invoices().Put(invoice)
		return nil
	})
	if err != nil {
		return nil, s.lifecycleError("invoice", id, err)
	}

	s.metrics.RecordTransition("invoice", "create")
	s.logger.Info("job invoiced",
		zap.String("job_id", invoice.JobID),
		zap.String("invoice_id", invoice.ID),
		zap.Float64("total", invoice.Total))
	return &invoice, nil
}

func (s *JobService) lifecycleError(op, id string, err error) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		s.logger.Debug("job operation rejected",
			zap.String("operation", op),
			zap.String("job_id", id),
			zap.Error(err))
		if errors.Is(err, ErrInvalidInput) {
			s.metrics.RecordValidationFailure("job")
		}
		return err
	}
	return fmt.Errorf("failed to %s job: %w", op, err)
}
