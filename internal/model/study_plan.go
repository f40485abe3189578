package model

// DailyPlan 每个 (用户, 日期) 一条，首次添加会话时创建
// swagger:model DailyPlan
type DailyPlan struct {
	BaseModel
	UserID     uint           `gorm:"index:idx_plan_key,unique;type:bigint unsigned" json:"userId"`
	Date       string         `gorm:"size:10;index:idx_plan_key,unique" json:"date"` // YYYY-MM-DD
	TotalHours float64        `gorm:"default:0" json:"totalHours"`                   // 自报的当日目标小时数，可选
	Sessions   []StudySession `gorm:"foreignKey:PlanID" json:"sessions"`
}

func (DailyPlan) TableName() string {
	return "daily_plans"
}

// StudySession 与课程进度相互独立，同日会话允许时间重叠
type StudySession struct {
	BaseModel
	PlanID      uint   `gorm:"index" json:"-"`
	Position    int    `gorm:"default:0" json:"-"`
	StartTime   string `gorm:"size:5;not null" json:"startTime"` // HH:MM
	EndTime     string `gorm:"size:5;not null" json:"endTime"`
	Activity    string `gorm:"size:255;not null" json:"activity"`
	Description string `gorm:"type:text;not null" json:"description"`
	ResourceURL string `gorm:"size:512" json:"resourceUrl,omitempty"`
	Completed   bool   `gorm:"default:false" json:"completed"`
	TimeSpent   int    `gorm:"default:0" json:"timeSpent"` // 分钟，与 completed 解耦
	Notes       string `gorm:"type:text" json:"notes,omitempty"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
