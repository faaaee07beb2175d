package services

import (
	"fmt"
	"time"

	"github.com/takamaro111/construction-management-app/internal/repository"
)

// DashboardService aggregates the entity totals for the dashboard page.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
	}
}

// Stats returns the company's dashboard counts as of now.
func (s *DashboardService) Stats(companyID string, now time.Time) (*repository.DashboardCounts, error) {
	counts, err := s.dashboardRepo.Counts(companyID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard counts: %w", err)
	}
	return counts, nil
}
