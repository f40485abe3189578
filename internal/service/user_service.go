package service

import (
	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

// UpdateProfile 整体替换个人资料，最后写入生效
func (s *UserService) UpdateProfile(userID uint, profile model.UserProfile) (*model.User, error) {
	switch profile.SkillLevel {
	case model.SkillBeginner, model.SkillIntermediate, model.SkillAdvanced:
	default:
		return nil, util.ErrInvalidSkillLevel
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences 整体替换学习偏好
func (s *UserService) UpdatePreferences(userID uint, prefs model.UserPreferences) (*model.User, error) {
	if prefs.PomodoroLength <= 0 || prefs.DailyGoalHours < 0 || prefs.DailyGoalHours > 24 {
		return nil, util.ErrInvalidPreferences
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.Preferences = prefs
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatarURL
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
