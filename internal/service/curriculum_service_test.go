package service

import (
	"context"
	"testing"

	"pwnpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPhasesOrdered(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)

	phases, err := env.curriculum.ListPhases(context.Background())
	require.NoError(t, err)
	require.Len(t, phases, 2)
	assert.Equal(t, "stack", phases[0].Phase)
	assert.Equal(t, "heap", phases[1].Phase)

	// 课时按 (day, hour) 排序，活动按定义顺序
	require.Len(t, phases[0].Lessons, 2)
	assert.Equal(t, 1, phases[0].Lessons[0].Hour)
	assert.Equal(t, 2, phases[0].Lessons[1].Hour)
	require.Len(t, phases[0].Lessons[0].Activities, 3)
	assert.Equal(t, "Read chapter", phases[0].Lessons[0].Activities[0].Title)

	// 测验随课时一并加载
	require.NotNil(t, phases[0].Lessons[0].Quiz)
	assert.Len(t, phases[0].Lessons[0].Quiz.Questions, 2)
}

func TestGetPhaseAndLesson(t *testing.T) {
	env := newTestEnv(t)
	seedTestCurriculum(t, env.db)
	ctx := context.Background()

	phase, err := env.curriculum.GetPhase(ctx, "heap")
	require.NoError(t, err)
	assert.Equal(t, "堆利用", phase.Title)

	_, err = env.curriculum.GetPhase(ctx, "kernel")
	assert.ErrorIs(t, err, util.ErrPhaseNotFound)

	lesson, err := env.curriculum.GetLesson(ctx, "stack", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "shellcode 基础", lesson.Title)

	_, err = env.curriculum.GetLesson(ctx, "stack", 3, 1)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
