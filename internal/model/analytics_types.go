package model

// AnalyticsOverview 聚合概览，纯读取，全部由进度与台账数据推导
// swagger:model AnalyticsOverview
type AnalyticsOverview struct {
	TotalHours          float64 `json:"totalHours"`
	LessonsCompleted    int     `json:"lessonsCompleted"`
	TotalLessons        int     `json:"totalLessons"`
	ChallengesAttempted int     `json:"challengesAttempted"`
	ChallengesSolved    int     `json:"challengesSolved"`
	ProjectsSubmitted   int     `json:"projectsSubmitted"`
	WeeklyHours         float64 `json:"weeklyHours"` // 最近 7 天（含今天）
	WeeklyGoalHours     float64 `json:"weeklyGoalHours"`
	CompletionRate      float64 `json:"completionRate"`  // 百分比
	OverallProgress     float64 `json:"overallProgress"` // 百分比
	CurrentPhase        string  `json:"currentPhase"`
	StreakDays          int     `json:"streakDays"`
}

// ProgressPoint 时间序列中的一天，无活动的日期补零
type ProgressPoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Hours   float64 `json:"hours"`
	Lessons int     `json:"lessons"` // 当天完成的课时数
}

// StreakInfo 连续学习天数
type StreakInfo struct {
	Current int  `json:"current"`
	Active  bool `json:"active"` // 今天是否已有学习记录
}
