package service

import (
	"testing"
	"time"

	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, env *testEnv) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-not-for-production-use"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(env.userRepo, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	user := &model.User{Username: "pwner", Email: "pwner@example.com", Password: "s3cret-pass"}
	require.NoError(t, auth.Register(user))
	assert.Equal(t, model.SkillBeginner, user.Profile.SkillLevel)
	assert.Equal(t, model.DefaultPreferences(), user.Preferences)
	// 明文密码不落库
	assert.NotEqual(t, "s3cret-pass", user.Password)

	token, logged, err := auth.Login("pwner@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
	assert.False(t, logged.LastLogin.IsZero())

	claims, err := util.ParseJWT(token, "test-secret-not-for-production-use")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = auth.Login("pwner@example.com", "wrong")
	assert.Error(t, err)
	_, _, err = auth.Login("ghost@example.com", "s3cret-pass")
	assert.Error(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	require.NoError(t, auth.Register(&model.User{Username: "pwner", Email: "pwner@example.com", Password: "s3cret-pass"}))

	err := auth.Register(&model.User{Username: "other", Email: "pwner@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	err = auth.Register(&model.User{Username: "pwner", Email: "other@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, util.ErrUsernameRegistered)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)
	svc := NewUserService(env.userRepo)

	updated, err := svc.UpdateProfile(user.ID, model.UserProfile{
		FirstName:  "Alex",
		CTFTeam:    "0ops-fans",
		SkillLevel: model.SkillIntermediate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex", updated.Profile.FirstName)
	assert.Equal(t, model.SkillIntermediate, updated.Profile.SkillLevel)

	_, err = svc.UpdateProfile(user.ID, model.UserProfile{SkillLevel: "guru"})
	assert.ErrorIs(t, err, util.ErrInvalidSkillLevel)

	_, err = svc.UpdateProfile(9999, model.UserProfile{SkillLevel: model.SkillBeginner})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdatePreferences(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env)
	svc := NewUserService(env.userRepo)

	updated, err := svc.UpdatePreferences(user.ID, model.UserPreferences{
		DarkMode:       false,
		PomodoroLength: 50,
		DailyGoalHours: 3,
		Notifications:  false,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Preferences.PomodoroLength)

	_, err = svc.UpdatePreferences(user.ID, model.UserPreferences{PomodoroLength: 0, DailyGoalHours: 3})
	assert.ErrorIs(t, err, util.ErrInvalidPreferences)

	_, err = svc.UpdatePreferences(user.ID, model.UserPreferences{PomodoroLength: 25, DailyGoalHours: 30})
	assert.ErrorIs(t, err, util.ErrInvalidPreferences)
}
