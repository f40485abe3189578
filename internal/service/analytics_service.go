package service

import (
	"context"
	"math"
	"time"

	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/util"
)

const dateLayout = "2006-01-02"

// AnalyticsService 聚合分析，纯读取，全部指标由进度、计划、题目与项目数据推导
type AnalyticsService struct {
	progressRepo  *repository.ProgressRepository
	planRepo      *repository.PlanRepository
	challengeRepo *repository.ChallengeRepository
	projectRepo   *repository.ProjectRepository
	userRepo      *repository.UserRepository
	curriculum    *CurriculumService
	cfg           config.AnalyticsConfig
}

func NewAnalyticsService(
	progressRepo *repository.ProgressRepository,
	planRepo *repository.PlanRepository,
	challengeRepo *repository.ChallengeRepository,
	projectRepo *repository.ProjectRepository,
	userRepo *repository.UserRepository,
	curriculum *CurriculumService,
	cfg config.AnalyticsConfig,
) *AnalyticsService {
	return &AnalyticsService{
		progressRepo:  progressRepo,
		planRepo:      planRepo,
		challengeRepo: challengeRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		curriculum:    curriculum,
		cfg:           cfg,
	}
}

// Overview 学习概览。completionRate 是解出题目占尝试题目的比例，
// overallProgress 是完成课时占全部课时的比例，分母为零时都取 0。
// totalHours 合并课时学习时长与已完成会话的上报时长。
func (s *AnalyticsService) Overview(ctx context.Context, userID uint) (*model.AnalyticsOverview, error) {
	phases, err := s.curriculum.ListPhases(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.progressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	byPhase := make(map[string][]model.ProgressRecord)
	for _, r := range records {
		byPhase[r.Phase] = append(byPhase[r.Phase], r)
	}

	totalLessons := 0
	completedLessons := 0
	currentPhase := ""
	for i := range phases {
		p := &phases[i]
		progress := phaseProgressOf(p, byPhase[p.Phase])
		totalLessons += progress.Total
		completedLessons += progress.Completed
		if currentPhase == "" && (progress.Total == 0 || progress.Completed < progress.Total) {
			currentPhase = p.Phase
		}
	}
	// 全部阶段完成时停留在最后一个阶段
	if currentPhase == "" && len(phases) > 0 {
		currentPhase = phases[len(phases)-1].Phase
	}

	progressMinutes, err := s.progressRepo.SumTimeSpent(userID)
	if err != nil {
		return nil, err
	}
	sessionMinutesByDate, err := s.planRepo.CompletedSessionMinutesByDate(userID)
	if err != nil {
		return nil, err
	}
	sessionMinutes := 0
	for _, m := range sessionMinutesByDate {
		sessionMinutes += m
	}

	// 周学习时长只看每日计划中已完成会话的上报时长
	today := time.Now()
	weekStart := today.AddDate(0, 0, -6).Format(dateLayout)
	weeklyMinutes, err := s.planRepo.SumCompletedSessionMinutes(userID, weekStart, today.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	challengeStats, err := s.challengeRepo.Stats(userID)
	if err != nil {
		return nil, err
	}
	projectCount, err := s.projectRepo.CountSubmittedProjects(userID)
	if err != nil {
		return nil, err
	}

	weeklyGoal := s.cfg.WeeklyGoalHours
	if user, err := s.userRepo.FindByID(userID); err == nil && user.Preferences.DailyGoalHours > 0 {
		weeklyGoal = user.Preferences.DailyGoalHours * 7
	}

	completionRate := 0.0
	if challengeStats.Attempted > 0 {
		completionRate = float64(challengeStats.Solved) / float64(challengeStats.Attempted) * 100
	}
	overallProgress := 0.0
	if totalLessons > 0 {
		overallProgress = float64(completedLessons) / float64(totalLessons) * 100
	}

	streak, err := s.Streak(userID)
	if err != nil {
		return nil, err
	}

	return &model.AnalyticsOverview{
		TotalHours:          s.round(float64(int(progressMinutes)+sessionMinutes) / 60),
		LessonsCompleted:    completedLessons,
		TotalLessons:        totalLessons,
		ChallengesAttempted: challengeStats.Attempted,
		ChallengesSolved:    challengeStats.Solved,
		ProjectsSubmitted:   int(projectCount),
		WeeklyHours:         s.round(float64(weeklyMinutes) / 60),
		WeeklyGoalHours:     weeklyGoal,
		CompletionRate:      s.round(completionRate),
		OverallProgress:     s.round(overallProgress),
		CurrentPhase:        currentPhase,
		StreakDays:          streak.Current,
	}, nil
}

// ProgressSeries 以今天为终点的连续日序列，长度恰为 period，无活动的日期补零。
// 每个点的小时数合并当日课时台账与已完成会话的上报时长。
func (s *AnalyticsService) ProgressSeries(userID uint, period int) ([]model.ProgressPoint, error) {
	if period != 7 && period != 30 && period != 90 {
		return nil, util.ErrInvalidPeriod
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(period - 1))

	logs, err := s.progressRepo.StudyLogsBetween(userID, start.Format(dateLayout), today.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	minutesByDate := make(map[string]int, len(logs))
	for _, l := range logs {
		minutesByDate[l.Date] += l.Minutes
	}
	sessionMinutes, err := s.planRepo.CompletedSessionMinutesByDate(userID)
	if err != nil {
		return nil, err
	}
	for date, m := range sessionMinutes {
		minutesByDate[date] += m
	}

	completed, err := s.progressRepo.CompletedBetween(userID, start, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	lessonsByDate := make(map[string]int)
	for _, r := range completed {
		if r.CompletedAt != nil {
			lessonsByDate[r.CompletedAt.Format(dateLayout)]++
		}
	}

	points := make([]model.ProgressPoint, 0, period)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		points = append(points, model.ProgressPoint{
			Date:    date,
			Hours:   s.round(float64(minutesByDate[date]) / 60),
			Lessons: lessonsByDate[date],
		})
	}
	return points, nil
}

// Streak 连续学习天数，课时台账和已完成会话的时长都算当日活动。
// 今天无记录时从昨天起算，今天的空缺不打断连续。
func (s *AnalyticsService) Streak(userID uint) (*model.StreakInfo, error) {
	logs, err := s.progressRepo.StudyLogs(userID)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(logs))
	for _, l := range logs {
		if l.Minutes > 0 {
			active[l.Date] = true
		}
	}
	sessionMinutes, err := s.planRepo.CompletedSessionMinutesByDate(userID)
	if err != nil {
		return nil, err
	}
	for date, m := range sessionMinutes {
		if m > 0 {
			active[date] = true
		}
	}

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayActive := active[day.Format(dateLayout)]
	if !todayActive {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return &model.StreakInfo{Current: streak, Active: todayActive}, nil
}

func (s *AnalyticsService) round(v float64) float64 {
	return roundTo(v, s.cfg.RatePrecision)
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
