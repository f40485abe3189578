package util

import (
	"errors"
	"fmt"
)

// 错误基类，controller 据此映射 HTTP 状态码
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrPhaseNotFound     = notFound("phase not found")
	ErrLessonNotFound    = notFound("lesson not found")
	ErrChallengeNotFound = notFound("challenge not found")
	ErrProjectNotFound   = notFound("project not found")
	ErrUserNotFound      = notFound("user not found")

	ErrEmailRegistered    = invalid("该邮箱已被注册")
	ErrUsernameRegistered = invalid("该用户名已被注册")
	ErrUnknownActivity    = invalid("activity is not declared on this lesson")
	ErrNegativeMinutes    = invalid("minutes must not be negative")
	ErrInvalidTimeRange   = invalid("session end time must be after start time")
	ErrEmptySessionField  = invalid("session activity and description are required")
	ErrSessionIndex       = invalid("session index out of range")
	ErrInvalidDate        = invalid("date must be formatted as YYYY-MM-DD")
	ErrInvalidClock       = invalid("time of day must be formatted as HH:MM")
	ErrInvalidPeriod      = invalid("period must be one of 7, 30, 90")
	ErrLessonHasNoQuiz    = invalid("lesson has no quiz")
	ErrInvalidSkillLevel  = invalid("skill level must be beginner, intermediate or advanced")
	ErrInvalidPreferences = invalid("preferences out of range")
)

func notFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
