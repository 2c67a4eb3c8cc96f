package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/metrics"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"go.uber.org/zap"
)

// LifecycleOptions tunes lifecycle behavior that callers may opt into
type LifecycleOptions struct {
	// LinkQuoteOnConvert records the source quote on jobs created by
	// conversion, so invoicing copies the quote's line items.
	LinkQuoteOnConvert bool
}

type QuoteService struct {
	store     *repository.Store
	quoteRepo *repository.QuoteRepository
	opts      LifecycleOptions
	metrics   *metrics.Registry
	logger    *zap.Logger
}

func NewQuoteService(
	store *repository.Store,
	quoteRepo *repository.QuoteRepository,
	opts LifecycleOptions,
	metrics *metrics.Registry,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		store:     store,
		quoteRepo: quoteRepo,
		opts:      opts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create validates the payload and stores a new draft quote
func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.Quote, error) {
	var quote domain.Quote
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		q, err := NormalizeQuote(*req, tx, tx.Now())
		if err != nil {
			return err
		}
		tx.Quotes().Put(q)
		quote = q
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.metrics.RecordValidationFailure("quote")
			s.logger.Debug("rejected quote payload",
				zap.String("customer_id", req.CustomerID),
				zap.Error(err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.metrics.RecordTransition("quote", "create")
	s.logger.Info("quote created",
		zap.String("quote_id", quote.ID),
		zap.String("customer_id", quote.CustomerID),
		zap.Int("items", len(quote.Items)),
		zap.Float64("total", quote.Total))
	return &quote, nil
}

func (s *QuoteService) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

// Approve moves a draft quote to approved
func (s *QuoteService) Approve(ctx context.Context, id string) (*domain.Quote, error) {
	var quote domain.Quote
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		q, ok := tx.Quote(id)
		if !ok {
			return ErrQuoteNotFound
		}
		if !q.Status.CanTransitionTo(domain.QuoteStatusApproved) {
			if q.Status == domain.QuoteStatusConverted {
				return ErrQuoteAlreadyConverted
			}
			return ErrQuoteAlreadyApproved
		}

		now := tx.Now()
		q.Status = domain.QuoteStatusApproved
		q.ApprovedAt = &now
		tx.Quotes().Put(q)
		quote = q
		return nil
	})
	if err != nil {
		return nil, s.lifecycleError("approve", id, err)
	}

	s.metrics.RecordTransition("quote", "approve")
	s.logger.Info("quote approved", zap.String("quote_id", quote.ID))
	return &quote, nil
}

// Convert marks a draft or approved quote as converted and creates the
// scheduled job that carries out the work
func (s *QuoteService) Convert(ctx context.Context, id string) (*domain.ConvertQuoteResult, error) {
	var result domain.ConvertQuoteResult
	err := s.store.RunInTransaction(ctx, func(tx *repository.Tx) error {
		q, ok := tx.Quote(id)
		if !ok {
			return ErrQuoteNotFound
		}
		if !q.Status.CanTransitionTo(domain.QuoteStatusConverted) {
			return ErrQuoteAlreadyConverted
		}

		q.Status = domain.QuoteStatusConverted
		job := domain.Job{
			ID:          uuid.NewString(),
			CustomerID:  q.CustomerID,
			Title:       ConvertedJobTitle,
			Description: q.Notes,
			Status:      domain.JobStatusScheduled,
			CreatedAt:   tx.Now(),
			Logs:        []domain.JobLog{},
		}
		if s.opts.LinkQuoteOnConvert {
			quoteID := q.ID
			job.QuoteID = &quoteID
		}

		tx.Quotes().Put(q)
		tx.Jobs().Put(job)
		result = domain.ConvertQuoteResult{Quote: &q, Job: &job}
		return nil
	})
	if err != nil {
		return nil, s.lifecycleError("convert", id, err)
	}

	s.metrics.RecordTransition("quote", "convert")
	s.metrics.RecordTransition("job", "create")
	s.logger.Info("quote converted to job",
		zap.String("quote_id", result.Quote.ID),
		zap.String("job_id", result.Job.ID),
		zap.Bool("linked", result.Job.QuoteID != nil))
	return &result, nil
}

func (s *QuoteService) lifecycleError(op, id string, err error) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		s.logger.Debug("quote transition rejected",
			zap.String("operation", op),
			zap.String("quote_id", id),
			zap.Error(err))
		return err
	}
	return fmt.Errorf("failed to %s quote: %w", op, err)
}
