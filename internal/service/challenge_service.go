package service

import (
	"strings"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ChallengeService CTF 练习题。flag 只存 bcrypt 哈希，比对前统一去除首尾空白
type ChallengeService struct {
	challengeRepo *repository.ChallengeRepository
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo}
}

func (s *ChallengeService) List(category string) ([]model.Challenge, error) {
	return s.challengeRepo.List(category)
}

func (s *ChallengeService) Get(id uint) (*model.Challenge, error) {
	return s.challengeRepo.FindByID(id)
}

type FlagSubmitResult struct {
	Correct       bool `json:"correct"`
	AlreadySolved bool `json:"alreadySolved"`
	Points        int  `json:"points"` // 本次获得的分数，重复解出不再计分
}

// SubmitFlag 每次提交都留痕，已解出的题重复提交不再计分
func (s *ChallengeService) SubmitFlag(userID, challengeID uint, flag string) (*FlagSubmitResult, error) {
	challenge, err := s.challengeRepo.FindByID(challengeID)
	if err != nil {
		return nil, err
	}

	correct := bcrypt.CompareHashAndPassword(
		[]byte(challenge.FlagHash), []byte(strings.TrimSpace(flag))) == nil

	solved, err := s.challengeRepo.HasSolved(userID, challengeID)
	if err != nil {
		return nil, err
	}

	sub := &model.ChallengeSubmission{
		UserID:      userID,
		ChallengeID: challengeID,
		Correct:     correct,
	}
	if err := s.challengeRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}

	result := &FlagSubmitResult{Correct: correct, AlreadySolved: solved}
	if correct && !solved {
		result.Points = challenge.Points
		logger.Log.Info("题目解出",
			zap.Uint("userId", userID),
			zap.String("challenge", challenge.Slug),
			zap.Int("points", challenge.Points))
	}
	return result, nil
}

func (s *ChallengeService) Stats(userID uint) (model.ChallengeStats, error) {
	return s.challengeRepo.Stats(userID)
}

// HashFlag 入库时调用
func HashFlag(flag string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(flag)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
