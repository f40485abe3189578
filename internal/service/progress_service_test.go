package service

import (
	"context"
	"testing"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleActivityLifecycle(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	// 勾选第一个活动，进入 in_progress
	record, err := env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Read chapter")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, record.Status)
	assert.Equal(t, []string{"Read chapter"}, record.CompletedActivities)
	assert.Nil(t, record.CompletedAt)

	// 全部勾选后进入 completed，completedAt 被写入
	_, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Watch video")
	require.NoError(t, err)
	record, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Solve exercise")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, record.Status)
	require.NotNil(t, record.CompletedAt)
	completedAt := *record.CompletedAt

	// 取消一个活动回到 in_progress，completedAt 清空
	record, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Watch video")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, record.Status)
	assert.Nil(t, record.CompletedAt)

	// 重新勾选回到 completed，completedAt 是新的迁移时间
	record, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Watch video")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, record.Status)
	require.NotNil(t, record.CompletedAt)
	assert.False(t, record.CompletedAt.Before(completedAt))

	// 全部取消回到 not_started
	for _, a := range []string{"Read chapter", "Watch video", "Solve exercise"} {
		record, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, a)
		require.NoError(t, err)
	}
	assert.Equal(t, model.StatusNotStarted, record.Status)
	assert.Empty(t, record.CompletedActivities)
}

func TestToggleActivityValidation(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	_, err := env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Does not exist")
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 9, 9, "Read chapter")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = env.progress.ToggleActivity(ctx, user.ID, "no-such-phase", 1, 1, "Read chapter")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestAddTimeSpent(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	_, err := env.progress.AddTimeSpent(ctx, user.ID, "stack", 1, 1, -5)
	assert.ErrorIs(t, err, util.ErrValidation)

	record, err := env.progress.AddTimeSpent(ctx, user.ID, "stack", 1, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, record.TimeSpent)

	record, err = env.progress.AddTimeSpent(ctx, user.ID, "stack", 1, 1, 15)
	require.NoError(t, err)
	assert.Equal(t, 45, record.TimeSpent)

	// 当日台账同步累加
	logs, err := env.progressRepo.StudyLogs(user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 45, logs[0].Minutes)
}

func TestSetNotes(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	record, err := env.progress.SetNotes(ctx, user.ID, "stack", 1, 1, "记得复习 canary")
	require.NoError(t, err)
	assert.Equal(t, "记得复习 canary", record.Notes)
	assert.Equal(t, model.StatusNotStarted, record.Status)

	// 最后写入生效
	record, err = env.progress.SetNotes(ctx, user.ID, "stack", 1, 1, "改主意了")
	require.NoError(t, err)
	assert.Equal(t, "改主意了", record.Notes)
}

func TestMarkForRedo(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	for _, a := range []string{"Read chapter", "Watch video", "Solve exercise"} {
		_, err := env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, a)
		require.NoError(t, err)
	}

	// 标记重做不清空已勾选的活动
	record, err := env.progress.MarkForRedo(ctx, user.ID, "stack", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRedo, record.Status)
	assert.Len(t, record.CompletedActivities, 3)
	assert.Nil(t, record.CompletedAt)

	// redo 状态下集合不齐时不回退到 in_progress
	record, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Watch video")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRedo, record.Status)

	// 重新集齐后回到 completed，completedAt 重新写入
	record, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, "Watch video")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, record.Status)
	assert.NotNil(t, record.CompletedAt)

	// 任何状态都可以标记重做，未交互过的课时也一样
	record, err = env.progress.MarkForRedo(ctx, user.ID, "heap", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRedo, record.Status)
	assert.Empty(t, record.CompletedActivities)
}

func TestSubmitQuiz(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	result, err := env.progress.SubmitQuiz(ctx, user.ID, "stack", 1, 1, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 2, result.Correct)

	// 只答对一题，分数覆盖旧成绩
	result, err = env.progress.SubmitQuiz(ctx, user.ID, "stack", 1, 1, []int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)

	record, err := env.progress.GetRecord(ctx, user.ID, "stack", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, record.QuizScore)
	assert.Equal(t, 50, *record.QuizScore)

	// 没有测验的课时
	_, err = env.progress.SubmitQuiz(ctx, user.ID, "stack", 1, 2, []int{0})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestPhaseProgressAndGating(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	states, err := env.progress.PhaseStates(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.True(t, states[0].Unlocked)
	assert.False(t, states[1].Unlocked)
	assert.Equal(t, model.PhaseProgress{Completed: 0, Total: 2}, states[0].Progress)

	// 完成 stack 阶段的两个课时后 heap 解锁
	for _, a := range []string{"Read chapter", "Watch video", "Solve exercise"} {
		_, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, a)
		require.NoError(t, err)
	}
	_, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 2, "Lab")
	require.NoError(t, err)

	states, err = env.progress.PhaseStates(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, states[0].Completed)
	assert.True(t, states[1].Unlocked)

	progress, err := env.progress.GetPhaseProgress(ctx, user.ID, "stack")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseProgress{Completed: 2, Total: 2}, progress)
}

func TestGetRecordLazy(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	// 未交互过的课时返回零值记录且不落库
	record, err := env.progress.GetRecord(ctx, user.ID, "heap", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, record.Status)
	assert.Zero(t, record.ID)

	var count int64
	env.db.Model(&model.ProgressRecord{}).Count(&count)
	assert.Zero(t, count)
}
