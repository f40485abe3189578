package service

import (
	"testing"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planDate = "2026-09-01"

func addSession(t *testing.T, env *testEnv, userID uint, start, end string) *model.DailyPlan {
	t.Helper()
	plan, err := env.planner.AddSession(userID, planDate, model.StudySession{
		StartTime:   start,
		EndTime:     end,
		Activity:    "ROP 练习",
		Description: "做两道 rop 题",
	})
	require.NoError(t, err)
	return plan
}

func TestGetDailyPlanAlwaysReturnsValue(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	plan, err := env.planner.GetDailyPlan(user.ID, "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01", plan.Date)
	assert.NotNil(t, plan.Sessions)
	assert.Empty(t, plan.Sessions)

	_, err = env.planner.GetDailyPlan(user.ID, "not-a-date")
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestPlannedAndCompletedHours(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	// 09:00–10:30 与 14:00–15:00 共 2.5 小时
	addSession(t, env, user.ID, "09:00", "10:30")
	plan := addSession(t, env, user.ID, "14:00", "15:00")
	assert.InDelta(t, 2.5, PlannedHours(plan), 0.001)
	assert.Zero(t, CompletedHours(plan))

	// 第一段完成并上报 80 分钟
	completed := true
	timeSpent := 80
	plan, err := env.planner.UpdateSession(user.ID, planDate, 0, SessionPatch{
		Completed: &completed,
		TimeSpent: &timeSpent,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.3333, CompletedHours(plan), 0.001)
	assert.InDelta(t, 2.5, PlannedHours(plan), 0.001)
}

func TestAddSessionValidation(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	_, err := env.planner.AddSession(user.ID, planDate, model.StudySession{
		StartTime: "09:00", EndTime: "10:00", Activity: "", Description: "x",
	})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = env.planner.AddSession(user.ID, planDate, model.StudySession{
		StartTime: "10:00", EndTime: "09:00", Activity: "a", Description: "b",
	})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = env.planner.AddSession(user.ID, planDate, model.StudySession{
		StartTime: "9am", EndTime: "10:00", Activity: "a", Description: "b",
	})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestUpdateSessionPatch(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)
	addSession(t, env, user.ID, "09:00", "10:00")

	// 只更新备注，其余字段保持不变
	notes := "先看 wp 思路"
	plan, err := env.planner.UpdateSession(user.ID, planDate, 0, SessionPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "先看 wp 思路", plan.Sessions[0].Notes)
	assert.Equal(t, "09:00", plan.Sessions[0].StartTime)
	assert.Equal(t, "ROP 练习", plan.Sessions[0].Activity)

	// 越界位置
	_, err = env.planner.UpdateSession(user.ID, planDate, 5, SessionPatch{Notes: &notes})
	assert.ErrorIs(t, err, util.ErrSessionIndex)

	// patch 后的会话仍需通过校验
	badEnd := "08:00"
	_, err = env.planner.UpdateSession(user.ID, planDate, 0, SessionPatch{EndTime: &badEnd})
	assert.ErrorIs(t, err, util.ErrInvalidTimeRange)
}

func TestDeleteAndToggleSession(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)
	addSession(t, env, user.ID, "09:00", "10:00")
	addSession(t, env, user.ID, "11:00", "12:30")

	// 完成标记与时长解耦：翻转不动 timeSpent
	plan, err := env.planner.ToggleSession(user.ID, planDate, 1)
	require.NoError(t, err)
	assert.True(t, plan.Sessions[1].Completed)
	assert.Zero(t, plan.Sessions[1].TimeSpent)

	plan, err = env.planner.ToggleSession(user.ID, planDate, 1)
	require.NoError(t, err)
	assert.False(t, plan.Sessions[1].Completed)

	plan, err = env.planner.DeleteSession(user.ID, planDate, 0)
	require.NoError(t, err)
	require.Len(t, plan.Sessions, 1)
	assert.Equal(t, "11:00", plan.Sessions[0].StartTime)

	_, err = env.planner.DeleteSession(user.ID, planDate, 3)
	assert.ErrorIs(t, err, util.ErrSessionIndex)
}

func TestSessionOrderStable(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	addSession(t, env, user.ID, "14:00", "15:00")
	addSession(t, env, user.ID, "09:00", "10:00")
	plan := addSession(t, env, user.ID, "11:00", "12:00")

	// 按插入顺序返回，不按时间排序
	require.Len(t, plan.Sessions, 3)
	assert.Equal(t, "14:00", plan.Sessions[0].StartTime)
	assert.Equal(t, "09:00", plan.Sessions[1].StartTime)
	assert.Equal(t, "11:00", plan.Sessions[2].StartTime)
}

func TestSetTotalHours(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)

	plan, err := env.planner.SetTotalHours(user.ID, planDate, 6)
	require.NoError(t, err)
	assert.Equal(t, 6.0, plan.TotalHours)

	plan, err = env.planner.SetTotalHours(user.ID, planDate, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, plan.TotalHours)

	_, err = env.planner.SetTotalHours(user.ID, planDate, -1)
	assert.ErrorIs(t, err, util.ErrValidation)
}
