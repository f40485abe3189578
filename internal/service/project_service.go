package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/util"
	"pwnpath_backend/pkg/logger"

	"go.uber.org/zap"
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	storage     *StorageService
}

func NewProjectService(projectRepo *repository.ProjectRepository, storage *StorageService) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, storage: storage}
}

func (s *ProjectService) List() ([]model.Project, error) {
	return s.projectRepo.List()
}

func (s *ProjectService) Get(id uint) (*model.Project, error) {
	return s.projectRepo.FindByID(id)
}

// Submit 提交结业项目，仓库地址必填
func (s *ProjectService) Submit(userID, projectID uint, repoURL, writeUp string) (*model.ProjectSubmission, error) {
	if strings.TrimSpace(repoURL) == "" {
		return nil, util.ErrValidation
	}
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return nil, err
	}

	sub := &model.ProjectSubmission{
		UserID:    userID,
		ProjectID: projectID,
		RepoURL:   repoURL,
		WriteUp:   writeUp,
		Status:    "submitted",
	}
	if err := s.projectRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// AttachDemoVideo 上传演示视频，探测时长后存入对象存储
func (s *ProjectService) AttachDemoVideo(ctx context.Context, sub *model.ProjectSubmission, localPath string) error {
	info, err := util.ProbeVideo(localPath)
	if err != nil {
		logger.Log.Warn("演示视频探测失败", zap.String("path", localPath), zap.Error(err))
		return err
	}

	filename := fmt.Sprintf("projects/%d/%s%s", sub.ProjectID, sub.ID, filepath.Ext(localPath))
	url, err := s.storage.UploadFile(ctx, filename, localPath, "video/mp4")
	if err != nil {
		return err
	}

	sub.DemoVideoURL = url
	sub.Duration = int(info.Duration)
	return s.projectRepo.UpdateSubmission(sub)
}

func (s *ProjectService) Submissions(userID uint) ([]model.ProjectSubmission, error) {
	return s.projectRepo.SubmissionsByUser(userID)
}
