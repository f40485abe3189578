package service

import (
	"context"
	"testing"
	"time"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logMinutes(t *testing.T, env *testEnv, userID uint, daysAgo, minutes int) {
	t.Helper()
	date := time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
	require.NoError(t, env.progressRepo.AddStudyMinutes(userID, date, minutes))
}

func TestStreak(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	// 无任何记录
	streak, err := env.analytics.Streak(user.ID)
	require.NoError(t, err)
	assert.Zero(t, streak.Current)
	assert.False(t, streak.Active)

	// 今天、昨天、前天连续三天
	logMinutes(t, env, user.ID, 0, 30)
	logMinutes(t, env, user.ID, 1, 45)
	logMinutes(t, env, user.ID, 2, 60)
	streak, err = env.analytics.Streak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.Current)
	assert.True(t, streak.Active)
}

func TestStreakTodayIdle(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	// 今天还没学，昨天和前天有记录：连续 2 天，今天的空缺不打断
	logMinutes(t, env, user.ID, 1, 30)
	logMinutes(t, env, user.ID, 2, 30)
	streak, err := env.analytics.Streak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)
	assert.False(t, streak.Active)
}

func TestStreakBrokenByGap(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	logMinutes(t, env, user.ID, 0, 30)
	logMinutes(t, env, user.ID, 2, 30)
	streak, err := env.analytics.Streak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current)
}

func TestProgressSeries(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	logMinutes(t, env, user.ID, 0, 60)
	logMinutes(t, env, user.ID, 3, 30)

	// 今天完成一个课时
	for _, a := range []string{"Read chapter", "Watch video", "Solve exercise"} {
		_, err := env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, a)
		require.NoError(t, err)
	}

	points, err := env.analytics.ProgressSeries(user.ID, 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	// 日期连续且以今天为终点
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, points[6].Date)
	for i := 1; i < len(points); i++ {
		prev, err := time.Parse("2006-01-02", points[i-1].Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1).Format("2006-01-02"), points[i].Date)
	}

	assert.Equal(t, 1.0, points[6].Hours)
	assert.Equal(t, 1, points[6].Lessons)
	assert.Equal(t, 0.5, points[3].Hours)

	// 无活动的日期补零
	assert.Zero(t, points[5].Hours)
	assert.Zero(t, points[5].Lessons)
}

func TestProgressSeriesInvalidPeriod(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	for _, period := range []int{0, 14, -7, 365} {
		_, err := env.analytics.ProgressSeries(user.ID, period)
		assert.ErrorIs(t, err, util.ErrInvalidPeriod)
	}
}

func TestOverviewEmptyUser(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)

	overview, err := env.analytics.Overview(context.Background(), user.ID)
	require.NoError(t, err)

	// 分母为零的比率取 0 而不是 NaN
	assert.Zero(t, overview.CompletionRate)
	assert.Zero(t, overview.OverallProgress)
	assert.Zero(t, overview.TotalHours)
	assert.Equal(t, 3, overview.TotalLessons)
	assert.Equal(t, "stack", overview.CurrentPhase)
	assert.Zero(t, overview.StreakDays)
	// 偏好中的每日目标换算成周目标
	assert.Equal(t, 35.0, overview.WeeklyGoalHours)
}

func TestOverviewAfterProgress(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	user := seedTestUser(t, env)
	ctx := context.Background()

	for _, a := range []string{"Read chapter", "Watch video", "Solve exercise"} {
		_, err := env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 1, a)
		require.NoError(t, err)
	}
	_, err := env.progress.AddTimeSpent(ctx, user.ID, "stack", 1, 1, 90)
	require.NoError(t, err)

	// 第二个课时完成后标记重做，不再计入完成数
	_, err = env.progress.ToggleActivity(ctx, user.ID, "stack", 1, 2, "Lab")
	require.NoError(t, err)
	_, err = env.progress.MarkForRedo(ctx, user.ID, "stack", 1, 2)
	require.NoError(t, err)

	// 今天的计划：完成一段会话并上报 30 分钟
	today := time.Now().Format("2006-01-02")
	_, err = env.planner.AddSession(user.ID, today, model.StudySession{
		StartTime: "09:00", EndTime: "10:00",
		Activity: "ROP 练习", Description: "做两道 rop 题",
	})
	require.NoError(t, err)
	completed := true
	timeSpent := 30
	_, err = env.planner.UpdateSession(user.ID, today, 0, SessionPatch{
		Completed: &completed,
		TimeSpent: &timeSpent,
	})
	require.NoError(t, err)

	// 两道题尝试过，解出一道
	c1 := seedTestChallenge(t, env, "one", "flag{1}", 100)
	c2 := seedTestChallenge(t, env, "two", "flag{2}", 250)
	challengeSvc := NewChallengeService(env.challengeRepo)
	_, err = challengeSvc.SubmitFlag(user.ID, c1.ID, "flag{1}")
	require.NoError(t, err)
	_, err = challengeSvc.SubmitFlag(user.ID, c2.ID, "flag{wrong}")
	require.NoError(t, err)

	overview, err := env.analytics.Overview(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, overview.LessonsCompleted)
	assert.Equal(t, 3, overview.TotalLessons)
	// 课时 90 分钟 + 已完成会话 30 分钟
	assert.InDelta(t, 2.0, overview.TotalHours, 0.001)
	// 周学习时长只统计已完成会话
	assert.InDelta(t, 0.5, overview.WeeklyHours, 0.001)
	assert.Equal(t, 2, overview.ChallengesAttempted)
	assert.Equal(t, 1, overview.ChallengesSolved)
	assert.Equal(t, 50.0, overview.CompletionRate)
	assert.InDelta(t, 33.3, overview.OverallProgress, 0.05)
	assert.Equal(t, "stack", overview.CurrentPhase)
	assert.Equal(t, 1, overview.StreakDays)
}

func TestStreakCountsCompletedSessions(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	// 昨天只有计划会话，没有课时台账
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := env.planner.AddSession(user.ID, yesterday, model.StudySession{
		StartTime: "20:00", EndTime: "21:00",
		Activity: "堆题复盘", Description: "重做 fastbin dup",
	})
	require.NoError(t, err)
	completed := true
	timeSpent := 45
	_, err = env.planner.UpdateSession(user.ID, yesterday, 0, SessionPatch{
		Completed: &completed,
		TimeSpent: &timeSpent,
	})
	require.NoError(t, err)

	streak, err := env.analytics.Streak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current)
	assert.False(t, streak.Active)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.3, roundTo(1.3333, 1))
	assert.Equal(t, 1.33, roundTo(1.3333, 2))
	assert.Equal(t, 67.0, roundTo(66.67, 0))
	assert.Equal(t, 0.0, roundTo(0, 1))
}
