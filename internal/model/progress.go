package model

import (
	"time"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
	StatusRedo       ProgressStatus = "redo"
)

// ProgressRecord 每个 (用户, 阶段, 课时) 一条，首次交互时惰性创建，永不删除
// swagger:model ProgressRecord
type ProgressRecord struct {
	BaseModel
	UserID              uint           `gorm:"index:idx_progress_key,unique;type:bigint unsigned" json:"userId"`
	Phase               string         `gorm:"size:50;index:idx_progress_key,unique" json:"phase"`
	Day                 int            `gorm:"index:idx_progress_key,unique" json:"day"`
	Hour                int            `gorm:"index:idx_progress_key,unique" json:"hour"`
	Status              ProgressStatus `gorm:"size:20;default:'not_started'" json:"status"`
	CompletedActivities []string       `gorm:"type:json;serializer:json" json:"completedActivities"`
	TimeSpent           int            `gorm:"default:0" json:"timeSpent"` // 分钟，正常使用下单调不减
	Notes               string         `gorm:"type:text" json:"notes"`
	QuizScore           *int           `json:"quizScore,omitempty"`
	CompletedAt         *time.Time     `json:"completedAt,omitempty"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

// StudyLog 每日学习时长台账，AddTimeSpent 时累加，供连续天数与时间序列使用
type StudyLog struct {
	BaseModel
	UserID  uint   `gorm:"index:idx_study_log_key,unique;type:bigint unsigned" json:"userId"`
	Date    string `gorm:"size:10;index:idx_study_log_key,unique" json:"date"` // YYYY-MM-DD
	Minutes int    `gorm:"default:0" json:"minutes"`
}

func (StudyLog) TableName() string {
	return "study_logs"
}

// PhaseProgress 阶段完成度，completed 恒在 [0, total] 内
type PhaseProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// PhaseState 阶段解锁状态，读取时计算，不落库
type PhaseState struct {
	Phase      string        `json:"phase"`
	PhaseOrder int           `json:"phaseOrder"`
	Title      string        `json:"title"`
	Progress   PhaseProgress `json:"progress"`
	Unlocked   bool          `json:"unlocked"`
	Completed  bool          `json:"completed"`
}

// QuizResult 测验判分结果
type QuizResult struct {
	Score   int `json:"score"` // 百分制
	Total   int `json:"total"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}
