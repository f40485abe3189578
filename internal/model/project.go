package model

// Project 阶段结业项目
// swagger:model Project
type Project struct {
	BaseModel
	Slug         string   `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Title        string   `gorm:"size:255;not null" json:"title"`
	Phase        string   `gorm:"size:50;index" json:"phase"`
	Description  string   `gorm:"type:text" json:"description"`
	Requirements []string `gorm:"type:json;serializer:json" json:"requirements"`
	Deliverables []string `gorm:"type:json;serializer:json" json:"deliverables"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectSubmission 提交仓库地址与可选的演示视频
type ProjectSubmission struct {
	UUIDBase
	UserID       uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	ProjectID    uint   `gorm:"index" json:"projectId"`
	RepoURL      string `gorm:"size:512;not null" json:"repoUrl"`
	DemoVideoURL string `gorm:"size:512" json:"demoVideoUrl,omitempty"`
	Duration     int    `gorm:"default:0" json:"duration"` // 演示视频时长，秒
	WriteUp      string `gorm:"type:text" json:"writeUp"`
	Status       string `gorm:"size:20;default:'submitted'" json:"status"` // submitted, reviewed
}

func (ProjectSubmission) TableName() string {
	return "project_submissions"
}
