package service

import (
	"time"

	"pwnpath_backend/internal/event"
	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/util"
)

// PlannerService 每日学习计划。计划与课程进度相互独立，
// 同一日期的会话允许时间重叠，所有会话级写入都是最后写入生效。
type PlannerService struct {
	planRepo *repository.PlanRepository
	bus      *event.Bus
}

func NewPlannerService(planRepo *repository.PlanRepository, bus *event.Bus) *PlannerService {
	return &PlannerService{planRepo: planRepo, bus: bus}
}

// SessionPatch 会话部分更新，nil 字段保持原值
type SessionPatch struct {
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Activity    *string `json:"activity,omitempty"`
	Description *string `json:"description,omitempty"`
	ResourceURL *string `json:"resourceUrl,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	TimeSpent   *int    `json:"timeSpent,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// GetDailyPlan 任何日期都返回一个计划，未创建的返回空会话列表的零值计划
func (s *PlannerService) GetDailyPlan(userID uint, date string) (*model.DailyPlan, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return &model.DailyPlan{
			UserID:   userID,
			Date:     date,
			Sessions: []model.StudySession{},
		}, nil
	}
	if plan.Sessions == nil {
		plan.Sessions = []model.StudySession{}
	}
	return plan, nil
}

func (s *PlannerService) GetPlansBetween(userID uint, fromDate, toDate string) ([]model.DailyPlan, error) {
	if err := validateDate(fromDate); err != nil {
		return nil, err
	}
	if err := validateDate(toDate); err != nil {
		return nil, err
	}
	return s.planRepo.FindByUserBetween(userID, fromDate, toDate)
}

// AddSession 追加会话到当日计划，计划不存在则创建
func (s *PlannerService) AddSession(userID uint, date string, session model.StudySession) (*model.DailyPlan, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := validateSession(&session); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = &model.DailyPlan{UserID: userID, Date: date}
		if err := s.planRepo.Create(plan); err != nil {
			return nil, err
		}
	}

	sessions := append(plan.Sessions, session)
	if err := s.planRepo.ReplaceSessions(plan.ID, sessions); err != nil {
		return nil, err
	}
	s.publishPlanUpdated(userID, date)
	return s.GetDailyPlan(userID, date)
}

// UpdateSession 按位置更新会话，patch 中的 nil 字段不变
func (s *PlannerService) UpdateSession(userID uint, date string, index int, patch SessionPatch) (*model.DailyPlan, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if plan == nil || index < 0 || index >= len(plan.Sessions) {
		return nil, util.ErrSessionIndex
	}

	session := &plan.Sessions[index]
	if patch.StartTime != nil {
		session.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		session.EndTime = *patch.EndTime
	}
	if patch.Activity != nil {
		session.Activity = *patch.Activity
	}
	if patch.Description != nil {
		session.Description = *patch.Description
	}
	if patch.ResourceURL != nil {
		session.ResourceURL = *patch.ResourceURL
	}
	if patch.Completed != nil {
		session.Completed = *patch.Completed
	}
	if patch.TimeSpent != nil {
		if *patch.TimeSpent < 0 {
			return nil, util.ErrNegativeMinutes
		}
		session.TimeSpent = *patch.TimeSpent
	}
	if patch.Notes != nil {
		session.Notes = *patch.Notes
	}
	if err := validateSession(session); err != nil {
		return nil, err
	}

	if err := s.planRepo.ReplaceSessions(plan.ID, plan.Sessions); err != nil {
		return nil, err
	}
	s.publishPlanUpdated(userID, date)
	return s.GetDailyPlan(userID, date)
}

func (s *PlannerService) DeleteSession(userID uint, date string, index int) (*model.DailyPlan, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if plan == nil || index < 0 || index >= len(plan.Sessions) {
		return nil, util.ErrSessionIndex
	}

	sessions := append(plan.Sessions[:index], plan.Sessions[index+1:]...)
	if err := s.planRepo.ReplaceSessions(plan.ID, sessions); err != nil {
		return nil, err
	}
	s.publishPlanUpdated(userID, date)
	return s.GetDailyPlan(userID, date)
}

// ToggleSession 只翻转完成标记，不动 timeSpent：
// 会话可以先标记完成，时长由学习者另行上报
func (s *PlannerService) ToggleSession(userID uint, date string, index int) (*model.DailyPlan, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if plan == nil || index < 0 || index >= len(plan.Sessions) {
		return nil, util.ErrSessionIndex
	}

	plan.Sessions[index].Completed = !plan.Sessions[index].Completed

	if err := s.planRepo.ReplaceSessions(plan.ID, plan.Sessions); err != nil {
		return nil, err
	}
	s.publishPlanUpdated(userID, date)
	return s.GetDailyPlan(userID, date)
}

func (s *PlannerService) SetTotalHours(userID uint, date string, hours float64) (*model.DailyPlan, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if hours < 0 {
		return nil, util.ErrNegativeMinutes
	}
	plan, err := s.planRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = &model.DailyPlan{UserID: userID, Date: date, TotalHours: hours}
		if err := s.planRepo.Create(plan); err != nil {
			return nil, err
		}
		return s.GetDailyPlan(userID, date)
	}
	plan.TotalHours = hours
	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return s.GetDailyPlan(userID, date)
}

func (s *PlannerService) publishPlanUpdated(userID uint, date string) {
	s.bus.Publish(event.PlanUpdated{UserID: userID, Date: date, At: time.Now()})
}

// PlannedHours 全部会话时段长度合计，小时
func PlannedHours(plan *model.DailyPlan) float64 {
	total := 0
	for i := range plan.Sessions {
		total += sessionMinutes(&plan.Sessions[i])
	}
	return float64(total) / 60
}

// CompletedHours 已完成会话的上报时长合计，小时
func CompletedHours(plan *model.DailyPlan) float64 {
	total := 0
	for i := range plan.Sessions {
		if plan.Sessions[i].Completed {
			total += plan.Sessions[i].TimeSpent
		}
	}
	return float64(total) / 60
}

func sessionMinutes(s *model.StudySession) int {
	start, err1 := clockMinutes(s.StartTime)
	end, err2 := clockMinutes(s.EndTime)
	if err1 != nil || err2 != nil || end <= start {
		return 0
	}
	return end - start
}

func validateSession(s *model.StudySession) error {
	if s.Activity == "" || s.Description == "" {
		return util.ErrEmptySessionField
	}
	start, err := clockMinutes(s.StartTime)
	if err != nil {
		return err
	}
	end, err := clockMinutes(s.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return util.ErrInvalidTimeRange
	}
	if s.TimeSpent < 0 {
		return util.ErrNegativeMinutes
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return util.ErrInvalidDate
	}
	return nil
}

func clockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, util.ErrInvalidClock
	}
	return t.Hour()*60 + t.Minute(), nil
}
