package service

import (
	"context"

	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
)

// analyticsService is the read side of the per-owner aggregate. Writes happen
// inside session-close and todo-toggle transactions, never here.
type analyticsService struct {
	analytics repository.AnalyticsRepo
}

func NewAnalyticsService(analytics repository.AnalyticsRepo) AnalyticsService {
	return &analyticsService{analytics: analytics}
}

func (s *analyticsService) Get(ctx context.Context, ownerID string) (*domain.Aggregate, error) {
	return s.analytics.Get(ctx, ownerID)
}
