package repository

import (
	"errors"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List() ([]model.Project, error) {
	var projects []model.Project
	err := r.db.Order("id asc").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) FindByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) CreateSubmission(sub *model.ProjectSubmission) error {
	return r.db.Create(sub).Error
}

func (r *ProjectRepository) UpdateSubmission(sub *model.ProjectSubmission) error {
	return r.db.Save(sub).Error
}

func (r *ProjectRepository) SubmissionsByUser(userID uint) ([]model.ProjectSubmission, error) {
	var subs []model.ProjectSubmission
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}

// CountSubmittedProjects 去重后的已提交项目数
func (r *ProjectRepository) CountSubmittedProjects(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProjectSubmission{}).
		Where("user_id = ?", userID).
		Distinct("project_id").
		Count(&count).Error
	return count, err
}
