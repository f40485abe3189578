package repository

import (
	"errors"
	"time"

	"pwnpath_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// FindOne 返回 (nil, nil) 表示记录尚未创建
func (r *ProgressRepository) FindOne(userID uint, phase string, day, hour int) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	err := r.db.
		Where("user_id = ? AND phase = ? AND day = ? AND hour = ?", userID, phase, day, hour).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("phase asc, day asc, hour asc").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByUserAndPhase(userID uint, phase string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.db.
		Where("user_id = ? AND phase = ?", userID, phase).
		Order("day asc, hour asc").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Save(record *model.ProgressRecord) error {
	return r.db.Save(record).Error
}

// SumTimeSpent 用户累计学习分钟数
func (r *ProgressRepository) SumTimeSpent(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(time_spent), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ProgressRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND status = ?", userID, model.StatusCompleted).
		Count(&count).Error
	return count, err
}

// CompletedBetween 指定区间内完成的课时，按完成时间归属日期
func (r *ProgressRepository) CompletedBetween(userID uint, from, to time.Time) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.db.
		Where("user_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
			userID, model.StatusCompleted, from, to).
		Order("completed_at asc").
		Find(&records).Error
	return records, err
}

// RecentByUser 最近活动过的课时，供仪表盘展示
func (r *ProgressRepository) RecentByUser(userID uint, limit int) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.db.
		Where("user_id = ? AND status <> ?", userID, model.StatusNotStarted).
		Order("updated_at desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// AddStudyMinutes 当日台账累加，不存在则创建
func (r *ProgressRepository) AddStudyMinutes(userID uint, date string, minutes int) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"minutes": gorm.Expr("minutes + ?", minutes)}),
	}).Create(&model.StudyLog{UserID: userID, Date: date, Minutes: minutes}).Error
}

func (r *ProgressRepository) StudyLogsBetween(userID uint, fromDate, toDate string) ([]model.StudyLog, error) {
	var logs []model.StudyLog
	err := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, fromDate, toDate).
		Order("date asc").
		Find(&logs).Error
	return logs, err
}

func (r *ProgressRepository) StudyLogs(userID uint) ([]model.StudyLog, error) {
	var logs []model.StudyLog
	err := r.db.
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&logs).Error
	return logs, err
}
