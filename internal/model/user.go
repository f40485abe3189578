package model

import (
	"time"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// UserProfile 个人资料，所有字段可选，入口处校验
type UserProfile struct {
	FirstName      string     `json:"firstName,omitempty"`
	LastName       string     `json:"lastName,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	GithubUsername string     `json:"githubUsername,omitempty"`
	TwitterHandle  string     `json:"twitterHandle,omitempty"`
	CTFTeam        string     `json:"ctfTeam,omitempty"`
	SkillLevel     SkillLevel `json:"skillLevel"`
}

// UserPreferences 学习偏好
type UserPreferences struct {
	DarkMode       bool    `json:"darkMode"`
	PomodoroLength int     `json:"pomodoroLength"` // 分钟
	DailyGoalHours float64 `json:"dailyGoalHours"`
	Notifications  bool    `json:"notifications"`
}

// swagger:model User
type User struct {
	BaseModel
	Username    string          `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email       string          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string          `gorm:"size:100;not null" json:"-"`
	Profile     UserProfile     `gorm:"type:json;serializer:json" json:"profile"`
	Preferences UserPreferences `gorm:"type:json;serializer:json" json:"preferences"`
	Avatar      string          `gorm:"size:255" json:"avatar"`
	LastLogin   time.Time       `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// DefaultPreferences 注册时的初始偏好
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		DarkMode:       true,
		PomodoroLength: 25,
		DailyGoalHours: 5,
		Notifications:  true,
	}
}
