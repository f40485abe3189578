package service

import (
	"context"
	"time"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
)

// DashboardSummary 首页聚合视图
type DashboardSummary struct {
	Overview       *model.AnalyticsOverview `json:"overview"`
	TodayPlan      *model.DailyPlan         `json:"todayPlan"`
	PlannedHours   float64                  `json:"plannedHours"`
	CompletedHours float64                  `json:"completedHours"`
	PhaseStates    []model.PhaseState       `json:"phaseStates"`
	RecentLessons  []model.ProgressRecord   `json:"recentLessons"`
}

type DashboardService struct {
	analytics    *AnalyticsService
	planner      *PlannerService
	progress     *ProgressService
	progressRepo *repository.ProgressRepository
}

func NewDashboardService(
	analytics *AnalyticsService,
	planner *PlannerService,
	progress *ProgressService,
	progressRepo *repository.ProgressRepository,
) *DashboardService {
	return &DashboardService{
		analytics:    analytics,
		planner:      planner,
		progress:     progress,
		progressRepo: progressRepo,
	}
}

func (s *DashboardService) Summary(ctx context.Context, userID uint) (*DashboardSummary, error) {
	overview, err := s.analytics.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)
	plan, err := s.planner.GetDailyPlan(userID, today)
	if err != nil {
		return nil, err
	}

	states, err := s.progress.PhaseStates(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.progressRepo.RecentByUser(userID, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Overview:       overview,
		TodayPlan:      plan,
		PlannedHours:   PlannedHours(plan),
		CompletedHours: CompletedHours(plan),
		PhaseStates:    states,
		RecentLessons:  recent,
	}, nil
}
