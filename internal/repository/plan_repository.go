package repository

import (
	"errors"

	"pwnpath_backend/internal/model"

	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// FindByUserAndDate 返回 (nil, nil) 表示该日尚无计划
func (r *PlanRepository) FindByUserAndDate(userID uint, date string) (*model.DailyPlan, error) {
	var plan model.DailyPlan
	err := r.db.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Where("user_id = ? AND date = ?", userID, date).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) FindByUserBetween(userID uint, fromDate, toDate string) ([]model.DailyPlan, error) {
	var plans []model.DailyPlan
	err := r.db.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, fromDate, toDate).
		Order("date asc").
		Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Create(plan *model.DailyPlan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) Update(plan *model.DailyPlan) error {
	return r.db.Save(plan).Error
}

// ReplaceSessions 在事务内整体替换当日会话列表，position 重新编号
func (r *PlanRepository) ReplaceSessions(planID uint, sessions []model.StudySession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("plan_id = ?", planID).Delete(&model.StudySession{}).Error; err != nil {
			return err
		}
		for i := range sessions {
			sessions[i].ID = 0
			sessions[i].PlanID = planID
			sessions[i].Position = i
			if err := tx.Create(&sessions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CompletedSessionMinutesByDate 已完成会话的分钟数按计划日期分组
func (r *PlanRepository) CompletedSessionMinutesByDate(userID uint) (map[string]int, error) {
	var rows []struct {
		Date    string
		Minutes int
	}
	err := r.db.Model(&model.StudySession{}).
		Joins("JOIN daily_plans ON daily_plans.id = study_sessions.plan_id").
		Where("daily_plans.user_id = ? AND study_sessions.completed = ?", userID, true).
		Select("daily_plans.date AS date, COALESCE(SUM(study_sessions.time_spent), 0) AS minutes").
		Group("daily_plans.date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	minutes := make(map[string]int, len(rows))
	for _, row := range rows {
		minutes[row.Date] = row.Minutes
	}
	return minutes, nil
}

// SumCompletedSessionMinutes 指定区间内已完成会话的分钟数合计
func (r *PlanRepository) SumCompletedSessionMinutes(userID uint, fromDate, toDate string) (int64, error) {
	var total int64
	err := r.db.Model(&model.StudySession{}).
		Joins("JOIN daily_plans ON daily_plans.id = study_sessions.plan_id").
		Where("daily_plans.user_id = ? AND daily_plans.date >= ? AND daily_plans.date <= ? AND study_sessions.completed = ?",
			userID, fromDate, toDate, true).
		Select("COALESCE(SUM(study_sessions.time_spent), 0)").
		Scan(&total).Error
	return total, err
}
