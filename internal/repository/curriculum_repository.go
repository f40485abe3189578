package repository

import (
	"errors"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"gorm.io/gorm"
)

type CurriculumRepository struct {
	db *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// withLessonDetail 课时按 (day, hour) 排序，活动和资源按插入顺序
func withLessonDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("day asc, hour asc")
		}).
		Preload("Lessons.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Lessons.Resources").
		Preload("Lessons.Quiz.Questions").
		Preload("Milestones")
}

// ListPhases 返回全部阶段，顺序稳定
func (r *CurriculumRepository) ListPhases() ([]model.Phase, error) {
	var phases []model.Phase
	err := withLessonDetail(r.db).
		Order("phase_order asc, id asc").
		Find(&phases).Error
	return phases, err
}

func (r *CurriculumRepository) FindPhaseBySlug(slug string) (*model.Phase, error) {
	var phase model.Phase
	err := withLessonDetail(r.db).
		Where("phase = ?", slug).
		First(&phase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPhaseNotFound
		}
		return nil, err
	}
	return &phase, nil
}

// FindLesson 按 (阶段, day, hour) 定位课时
func (r *CurriculumRepository) FindLesson(phaseSlug string, day, hour int) (*model.Lesson, error) {
	phase, err := r.FindPhaseBySlug(phaseSlug)
	if err != nil {
		return nil, err
	}
	for i := range phase.Lessons {
		if phase.Lessons[i].Day == day && phase.Lessons[i].Hour == hour {
			return &phase.Lessons[i], nil
		}
	}
	return nil, util.ErrLessonNotFound
}

func (r *CurriculumRepository) CountLessons() (int64, error) {
	var count int64
	err := r.db.Model(&model.Lesson{}).Count(&count).Error
	return count, err
}

func (r *CurriculumRepository) CountLessonsByPhase(phaseSlug string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lesson{}).
		Joins("JOIN phases ON phases.id = lessons.phase_id").
		Where("phases.phase = ? AND phases.deleted_at IS NULL", phaseSlug).
		Count(&count).Error
	return count, err
}

func (r *CurriculumRepository) CreatePhase(phase *model.Phase) error {
	return r.db.Create(phase).Error
}
