package service

import (
	"fmt"
	"testing"

	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/event"
	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db            *gorm.DB
	bus           *event.Bus
	userRepo      *repository.UserRepository
	progressRepo  *repository.ProgressRepository
	planRepo      *repository.PlanRepository
	challengeRepo *repository.ChallengeRepository
	projectRepo   *repository.ProjectRepository
	curriculum    *CurriculumService
	progress      *ProgressService
	planner       *PlannerService
	analytics     *AnalyticsService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	bus := event.NewBus(zap.NewNop())
	go bus.Run()
	t.Cleanup(bus.Stop)

	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	planRepo := repository.NewPlanRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	curriculum := NewCurriculumService(repository.NewCurriculumRepository(db), nil)
	progress := NewProgressService(progressRepo, curriculum, bus)
	planner := NewPlannerService(planRepo, bus)
	analytics := NewAnalyticsService(progressRepo, planRepo, challengeRepo, projectRepo, userRepo, curriculum, config.AnalyticsConfig{
		RatePrecision:   1,
		WeeklyGoalHours: 35,
	})

	return &testEnv{
		db:            db,
		bus:           bus,
		userRepo:      userRepo,
		progressRepo:  progressRepo,
		planRepo:      planRepo,
		challengeRepo: challengeRepo,
		projectRepo:   projectRepo,
		curriculum:    curriculum,
		progress:      progress,
		planner:       planner,
		analytics:     analytics,
	}
}

// seedTestCurriculum 两个阶段：stack 两个课时，heap 一个课时
func seedTestCurriculum(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := repository.NewCurriculumRepository(db)

	require.NoError(t, repo.CreatePhase(&model.Phase{
		Phase:      "stack",
		PhaseOrder: 1,
		Title:      "栈利用",
		Lessons: []model.Lesson{
			{
				Day: 1, Hour: 1,
				Title: "栈溢出原理",
				Activities: []model.Activity{
					{Type: model.ActivityReading, Title: "Read chapter", Duration: 25},
					{Type: model.ActivityVideo, Title: "Watch video", Duration: 15},
					{Type: model.ActivityCoding, Title: "Solve exercise", Duration: 20},
				},
				Quiz: &model.Quiz{
					Questions: []model.QuizQuestion{
						{Question: "call 压栈的内容", Options: []string{"rbp", "返回地址"}, CorrectAnswer: 1},
						{Question: "栈的增长方向", Options: []string{"高到低", "低到高"}, CorrectAnswer: 0},
					},
				},
			},
			{
				Day: 1, Hour: 2,
				Title: "shellcode 基础",
				Activities: []model.Activity{
					{Type: model.ActivityCoding, Title: "Lab", Duration: 60},
				},
			},
		},
	}))

	require.NoError(t, repo.CreatePhase(&model.Phase{
		Phase:      "heap",
		PhaseOrder: 2,
		Title:      "堆利用",
		Lessons: []model.Lesson{
			{
				Day: 1, Hour: 1,
				Title: "ptmalloc 结构",
				Activities: []model.Activity{
					{Type: model.ActivityReading, Title: "Read how2heap", Duration: 60},
				},
			},
		},
	}))
}

func seedTestUser(t *testing.T, env *testEnv) *model.User {
	t.Helper()
	user := &model.User{
		Username:    "pwner",
		Email:       "pwner@example.com",
		Password:    "hashed",
		Preferences: model.DefaultPreferences(),
	}
	require.NoError(t, env.userRepo.Create(user))
	return user
}
