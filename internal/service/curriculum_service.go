package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/util"
	"pwnpath_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const curriculumCacheTTL = 10 * time.Minute

// CurriculumService 课程目录只读服务，redis 缓存课程树，redisClient 为 nil 时直连数据库
type CurriculumService struct {
	curriculumRepo *repository.CurriculumRepository
	redisClient    *redis.Client
}

func NewCurriculumService(curriculumRepo *repository.CurriculumRepository, redisClient *redis.Client) *CurriculumService {
	return &CurriculumService{
		curriculumRepo: curriculumRepo,
		redisClient:    redisClient,
	}
}

// ListPhases 全部阶段按 phase_order 升序，含课时、活动、资源、测验
func (s *CurriculumService) ListPhases(ctx context.Context) ([]model.Phase, error) {
	const cacheKey = "curriculum:phases"

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var phases []model.Phase
			if err := json.Unmarshal([]byte(cached), &phases); err == nil {
				return phases, nil
			}
			logger.Log.Warn("课程缓存反序列化失败，回退数据库", zap.Error(err))
		}
	}

	phases, err := s.curriculumRepo.ListPhases()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(phases); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, data, curriculumCacheTTL).Err(); err != nil {
				logger.Log.Warn("课程缓存写入失败", zap.Error(err))
			}
		}
	}
	return phases, nil
}

func (s *CurriculumService) GetPhase(ctx context.Context, slug string) (*model.Phase, error) {
	cacheKey := fmt.Sprintf("curriculum:phase:%s", slug)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var phase model.Phase
			if err := json.Unmarshal([]byte(cached), &phase); err == nil {
				return &phase, nil
			}
		}
	}

	phase, err := s.curriculumRepo.FindPhaseBySlug(slug)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(phase); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, curriculumCacheTTL)
		}
	}
	return phase, nil
}

func (s *CurriculumService) GetLesson(ctx context.Context, phaseSlug string, day, hour int) (*model.Lesson, error) {
	phase, err := s.GetPhase(ctx, phaseSlug)
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

// InvalidateCache 课程内容变更后调用
func (s *CurriculumService) InvalidateCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	iter := s.redisClient.Scan(ctx, 0, "curriculum:*", 100).Iterator()
	for iter.Next(ctx) {
		s.redisClient.Del(ctx, iter.Val())
	}
}
