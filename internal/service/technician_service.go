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

type TechnicianService struct {
	technicianRepo *repository.TechnicianRepository
	metrics        *metrics.Registry
	logger         *zap.Logger
}

func NewTechnicianService(
	technicianRepo *repository.TechnicianRepository,
	metrics *metrics.Registry,
	logger *zap.Logger,
) *TechnicianService {
	return &TechnicianService{
		technicianRepo: technicianRepo,
		metrics:        metrics,
		logger:         logger,
	}
}

func (s *TechnicianService) Create(ctx context.Context, req *domain.CreateTechnicianRequest) (*domain.Technician, error) {
	tech, err := NormalizeTechnician(*req)
	if err != nil {
		s.metrics.RecordValidationFailure("technician")
		s.logger.Debug("rejected technician payload", zap.Error(err))
		return nil, err
	}

	if err := s.technicianRepo.Create(ctx, &tech); err != nil {
		return nil, fmt.Errorf("failed to create technician: %w", err)
	}

	s.metrics.RecordTransition("technician", "create")
	s.logger.Info("technician created",
		zap.String("technician_id", tech.ID),
		zap.Strings("skills", tech.Skills))
	return &tech, nil
}

func (s *TechnicianService) GetByID(ctx context.Context, id string) (*domain.Technician, error) {
	tech, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, fmt.Errorf("failed to get technician: %w", err)
	}
	return tech, nil
}

func (s *TechnicianService) List(ctx context.Context) ([]domain.Technician, error) {
	techs, err := s.technicianRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	return techs, nil
}
