package service

import (
	"testing"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTestChallenge(t *testing.T, env *testEnv, slug, flag string, points int) *model.Challenge {
	t.Helper()
	hash, err := HashFlag(flag)
	require.NoError(t, err)
	challenge := &model.Challenge{
		Slug:     slug,
		Title:    slug,
		Category: "stack",
		Points:   points,
		FlagHash: hash,
	}
	require.NoError(t, env.challengeRepo.Create(challenge))
	return challenge
}

func TestSubmitFlag(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)
	svc := NewChallengeService(env.challengeRepo)
	challenge := seedTestChallenge(t, env, "warmup", "flag{hello}", 100)

	// 错误 flag 留痕但不得分
	result, err := svc.SubmitFlag(user.ID, challenge.ID, "flag{nope}")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.Points)

	// 正确 flag，首尾空白被忽略
	result, err = svc.SubmitFlag(user.ID, challenge.ID, "  flag{hello} \n")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 100, result.Points)

	// 重复解出不再计分
	result, err = svc.SubmitFlag(user.ID, challenge.ID, "flag{hello}")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.True(t, result.AlreadySolved)
	assert.Zero(t, result.Points)

	_, err = svc.SubmitFlag(user.ID, 9999, "flag{hello}")
	assert.ErrorIs(t, err, util.ErrChallengeNotFound)
}

func TestChallengeStats(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)
	svc := NewChallengeService(env.challengeRepo)

	c1 := seedTestChallenge(t, env, "one", "flag{1}", 100)
	c2 := seedTestChallenge(t, env, "two", "flag{2}", 250)

	_, err := svc.SubmitFlag(user.ID, c1.ID, "flag{wrong}")
	require.NoError(t, err)
	_, err = svc.SubmitFlag(user.ID, c1.ID, "flag{1}")
	require.NoError(t, err)
	_, err = svc.SubmitFlag(user.ID, c2.ID, "flag{wrong}")
	require.NoError(t, err)

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Attempted)
	assert.Equal(t, 1, stats.Solved)
	assert.Equal(t, 100, stats.Points)
}
