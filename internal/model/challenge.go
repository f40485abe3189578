package model

// Challenge CTF 风格练习题，flag 哈希存储，不回传明文
// swagger:model Challenge
type Challenge struct {
	BaseModel
	Slug        string   `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Category    string   `gorm:"size:50;index" json:"category"` // stack, heap, format-string, rop, shellcode
	Difficulty  string   `gorm:"size:20" json:"difficulty"`     // easy, medium, hard, insane
	Points      int      `gorm:"default:0" json:"points"`
	Description string   `gorm:"type:text" json:"description"`
	Hints       []string `gorm:"type:json;serializer:json" json:"hints"`
	BinaryURL   string   `gorm:"size:512" json:"binaryUrl,omitempty"`
	FlagHash    string   `gorm:"size:100;not null" json:"-"` // bcrypt
	Phase       string   `gorm:"size:50;index" json:"phase"` // 关联的课程阶段
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeSubmission 每次提交一条记录，正确与否都留痕
type ChallengeSubmission struct {
	UUIDBase
	UserID      uint `gorm:"index;type:bigint unsigned" json:"userId"`
	ChallengeID uint `gorm:"index" json:"challengeId"`
	Correct     bool `gorm:"default:false" json:"correct"`
}

func (ChallengeSubmission) TableName() string {
	return "challenge_submissions"
}

// ChallengeStats 用户维度的题目统计
type ChallengeStats struct {
	Attempted int `json:"attempted"` // 至少提交过一次的题目数
	Solved    int `json:"solved"`
	Points    int `json:"points"`
}
