package repository

import (
	"errors"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) List(category string) ([]model.Challenge, error) {
	query := r.db.Order("points asc, id asc")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var challenges []model.Challenge
	err := query.Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := r.db.First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) FindBySlug(slug string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := r.db.Where("slug = ?", slug).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.db.Create(challenge).Error
}

func (r *ChallengeRepository) CreateSubmission(sub *model.ChallengeSubmission) error {
	return r.db.Create(sub).Error
}

// HasSolved 用户是否已解出该题
func (r *ChallengeRepository) HasSolved(userID, challengeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ChallengeSubmission{}).
		Where("user_id = ? AND challenge_id = ? AND correct = ?", userID, challengeID, true).
		Count(&count).Error
	return count > 0, err
}

// Stats 按去重后的题目数统计
func (r *ChallengeRepository) Stats(userID uint) (model.ChallengeStats, error) {
	var stats model.ChallengeStats

	var attempted int64
	err := r.db.Model(&model.ChallengeSubmission{}).
		Where("user_id = ?", userID).
		Distinct("challenge_id").
		Count(&attempted).Error
	if err != nil {
		return stats, err
	}

	var solved int64
	err = r.db.Model(&model.ChallengeSubmission{}).
		Where("user_id = ? AND correct = ?", userID, true).
		Distinct("challenge_id").
		Count(&solved).Error
	if err != nil {
		return stats, err
	}

	var points int64
	err = r.db.Model(&model.Challenge{}).
		Where("id IN (?)", r.db.Model(&model.ChallengeSubmission{}).
			Where("user_id = ? AND correct = ?", userID, true).
			Distinct("challenge_id").
			Select("challenge_id")).
		Select("COALESCE(SUM(points), 0)").
		Scan(&points).Error
	if err != nil {
		return stats, err
	}

	stats.Attempted = int(attempted)
	stats.Solved = int(solved)
	stats.Points = int(points)
	return stats, nil
}
