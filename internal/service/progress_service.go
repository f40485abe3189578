package service

import (
	"context"
	"math"
	"time"

	"pwnpath_backend/internal/event"
	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/util"
	"pwnpath_backend/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService 课时进度状态机。每条记录的状态由已完成活动集合推导：
// 空集合 → not_started，非空且不全 → in_progress，全部完成 → completed。
// redo 只能由显式标记进入，且在集合重新集齐之前一直保持 redo。
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	curriculum   *CurriculumService
	bus          *event.Bus
}

func NewProgressService(progressRepo *repository.ProgressRepository, curriculum *CurriculumService, bus *event.Bus) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		curriculum:   curriculum,
		bus:          bus,
	}
}

func (s *ProgressService) GetProgress(userID uint) ([]model.ProgressRecord, error) {
	return s.progressRepo.FindByUser(userID)
}

func (s *ProgressService) GetRecord(ctx context.Context, userID uint, phase string, day, hour int) (*model.ProgressRecord, error) {
	if _, err := s.curriculum.GetLesson(ctx, phase, day, hour); err != nil {
		return nil, err
	}
	record, err := s.progressRepo.FindOne(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// 未交互过的课时返回零值记录，不落库
		return &model.ProgressRecord{
			UserID: userID,
			Phase:  phase,
			Day:    day,
			Hour:   hour,
			Status: model.StatusNotStarted,
		}, nil
	}
	return record, nil
}

// ToggleActivity 勾选或取消一个活动，随后重新推导课时状态。
// 活动标题必须存在于课时定义中，可选活动同样计入完成判定。
func (s *ProgressService) ToggleActivity(ctx context.Context, userID uint, phase string, day, hour int, activity string) (*model.ProgressRecord, error) {
	lesson, err := s.curriculum.GetLesson(ctx, phase, day, hour)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]bool, len(lesson.Activities))
	for _, a := range lesson.Activities {
		titles[a.Title] = true
	}
	if !titles[activity] {
		return nil, util.ErrUnknownActivity
	}

	record, err := s.loadOrInit(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(record.CompletedActivities))
	for _, title := range record.CompletedActivities {
		// 课程定义可能已更新，滤掉失效的标题
		if titles[title] {
			completed[title] = true
		}
	}

	nowDone := !completed[activity]
	if nowDone {
		completed[activity] = true
	} else {
		delete(completed, activity)
	}

	// 按课时定义顺序重建集合，保持输出稳定
	record.CompletedActivities = record.CompletedActivities[:0]
	for _, a := range lesson.Activities {
		if completed[a.Title] {
			record.CompletedActivities = append(record.CompletedActivities, a.Title)
		}
	}

	prev := record.Status
	next := deriveStatus(len(record.CompletedActivities), len(lesson.Activities))
	// redo 不经推导回退到 in_progress/not_started，只有集合重新集齐才离开
	if prev == model.StatusRedo && next != model.StatusCompleted {
		next = model.StatusRedo
	}
	record.Status = next
	if record.Status == model.StatusCompleted {
		if prev != model.StatusCompleted {
			now := time.Now()
			record.CompletedAt = &now
		}
	} else {
		record.CompletedAt = nil
	}

	if err := s.progressRepo.Save(record); err != nil {
		return nil, err
	}

	s.bus.Publish(event.ActivityToggled{
		UserID:    userID,
		Phase:     phase,
		Day:       day,
		Hour:      hour,
		Activity:  activity,
		Completed: nowDone,
		At:        time.Now(),
	})
	if record.Status != prev {
		s.bus.Publish(event.ProgressUpdated{
			UserID: userID,
			Phase:  phase,
			Day:    day,
			Hour:   hour,
			Status: string(record.Status),
			At:     time.Now(),
		})
		logger.Log.Info("课时状态变更",
			zap.Uint("userId", userID),
			zap.String("phase", phase),
			zap.Int("day", day),
			zap.Int("hour", hour),
			zap.String("from", string(prev)),
			zap.String("to", string(record.Status)))
	}
	return record, nil
}

// deriveStatus 活动数为 0 的课时永远停在 not_started
func deriveStatus(done, total int) model.ProgressStatus {
	switch {
	case total == 0 || done == 0:
		return model.StatusNotStarted
	case done >= total:
		return model.StatusCompleted
	default:
		return model.StatusInProgress
	}
}

func (s *ProgressService) SetNotes(ctx context.Context, userID uint, phase string, day, hour int, notes string) (*model.ProgressRecord, error) {
	if _, err := s.curriculum.GetLesson(ctx, phase, day, hour); err != nil {
		return nil, err
	}
	record, err := s.loadOrInit(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}
	record.Notes = notes
	if err := s.progressRepo.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// AddTimeSpent 累加课时学习时长并记入当日台账
func (s *ProgressService) AddTimeSpent(ctx context.Context, userID uint, phase string, day, hour, minutes int) (*model.ProgressRecord, error) {
	if minutes < 0 {
		return nil, util.ErrNegativeMinutes
	}
	if _, err := s.curriculum.GetLesson(ctx, phase, day, hour); err != nil {
		return nil, err
	}
	record, err := s.loadOrInit(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}
	if minutes == 0 {
		return record, nil
	}
	record.TimeSpent += minutes
	if err := s.progressRepo.Save(record); err != nil {
		return nil, err
	}
	today := time.Now().Format("2006-01-02")
	if err := s.progressRepo.AddStudyMinutes(userID, today, minutes); err != nil {
		return nil, err
	}
	return record, nil
}

// MarkForRedo 无条件把课时置为 redo，复习工作流的逃生门。
// 已勾选的活动保持不变，因此集合已齐的课时在下一次勾选往返后会重新完成。
func (s *ProgressService) MarkForRedo(ctx context.Context, userID uint, phase string, day, hour int) (*model.ProgressRecord, error) {
	if _, err := s.curriculum.GetLesson(ctx, phase, day, hour); err != nil {
		return nil, err
	}
	record, err := s.loadOrInit(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}
	prev := record.Status
	record.Status = model.StatusRedo
	record.CompletedAt = nil
	if err := s.progressRepo.Save(record); err != nil {
		return nil, err
	}
	if prev != model.StatusRedo {
		s.bus.Publish(event.ProgressUpdated{
			UserID: userID,
			Phase:  phase,
			Day:    day,
			Hour:   hour,
			Status: string(model.StatusRedo),
			At:     time.Now(),
		})
	}
	return record, nil
}

// SubmitQuiz 判分并把成绩写入进度记录，重复提交覆盖旧成绩
func (s *ProgressService) SubmitQuiz(ctx context.Context, userID uint, phase string, day, hour int, answers []int) (*model.QuizResult, error) {
	lesson, err := s.curriculum.GetLesson(ctx, phase, day, hour)
	if err != nil {
		return nil, err
	}
	if lesson.Quiz == nil || len(lesson.Quiz.Questions) == 0 {
		return nil, util.ErrLessonHasNoQuiz
	}

	total := len(lesson.Quiz.Questions)
	correct := 0
	for i, q := range lesson.Quiz.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	score := int(math.Round(float64(correct) / float64(total) * 100))

	record, err := s.loadOrInit(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}
	record.QuizScore = &score
	if err := s.progressRepo.Save(record); err != nil {
		return nil, err
	}

	return &model.QuizResult{
		Score:   score,
		Total:   total,
		Correct: correct,
		Wrong:   total - correct,
	}, nil
}

// GetPhaseProgress 阶段完成度。completed 只统计与当前课程定义匹配的记录，
// 因此恒不超过 total。
func (s *ProgressService) GetPhaseProgress(ctx context.Context, userID uint, phaseSlug string) (model.PhaseProgress, error) {
	phase, err := s.curriculum.GetPhase(ctx, phaseSlug)
	if err != nil {
		return model.PhaseProgress{}, err
	}
	records, err := s.progressRepo.FindByUserAndPhase(userID, phaseSlug)
	if err != nil {
		return model.PhaseProgress{}, err
	}
	return phaseProgressOf(phase, records), nil
}

func phaseProgressOf(phase *model.Phase, records []model.ProgressRecord) model.PhaseProgress {
	keys := make(map[[2]int]bool, len(phase.Lessons))
	for _, l := range phase.Lessons {
		keys[[2]int{l.Day, l.Hour}] = true
	}
	completed := 0
	for _, r := range records {
		if r.Status == model.StatusCompleted && keys[[2]int{r.Day, r.Hour}] {
			completed++
		}
	}
	return model.PhaseProgress{Completed: completed, Total: len(phase.Lessons)}
}

// PhaseStates 阶段解锁视图。第一阶段始终解锁，其余阶段要求之前所有阶段
// 全部完成且课时数大于零。
func (s *ProgressService) PhaseStates(ctx context.Context, userID uint) ([]model.PhaseState, error) {
	phases, err := s.curriculum.ListPhases(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.progressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	byPhase := make(map[string][]model.ProgressRecord)
	for _, r := range records {
		byPhase[r.Phase] = append(byPhase[r.Phase], r)
	}

	states := make([]model.PhaseState, 0, len(phases))
	priorComplete := true
	for i := range phases {
		p := &phases[i]
		progress := phaseProgressOf(p, byPhase[p.Phase])
		done := progress.Total > 0 && progress.Completed >= progress.Total
		states = append(states, model.PhaseState{
			Phase:      p.Phase,
			PhaseOrder: p.PhaseOrder,
			Title:      p.Title,
			Progress:   progress,
			Unlocked:   i == 0 || priorComplete,
			Completed:  done,
		})
		priorComplete = priorComplete && done
	}
	return states, nil
}

func (s *ProgressService) loadOrInit(userID uint, phase string, day, hour int) (*model.ProgressRecord, error) {
	record, err := s.progressRepo.FindOne(userID, phase, day, hour)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &model.ProgressRecord{
			UserID: userID,
			Phase:  phase,
			Day:    day,
			Hour:   hour,
			Status: model.StatusNotStarted,
		}
	}
	return record, nil
}
