package model

type ActivityType string

const (
	ActivityReading   ActivityType = "reading"
	ActivityVideo     ActivityType = "video"
	ActivityCoding    ActivityType = "coding"
	ActivityChallenge ActivityType = "challenge"
	ActivityQuiz      ActivityType = "quiz"
)

// Phase 课程阶段，静态参考数据，由课程编辑维护，学习行为不会修改
// swagger:model Phase
type Phase struct {
	BaseModel
	Phase         string      `gorm:"size:50;uniqueIndex;not null" json:"phase"` // slug
	PhaseOrder    int         `gorm:"not null" json:"phaseOrder"`
	Title         string      `gorm:"size:255;not null" json:"title"`
	Description   string      `gorm:"type:text" json:"description"`
	EstimatedDays int         `gorm:"default:0" json:"estimatedDays"`
	Lessons       []Lesson    `gorm:"foreignKey:PhaseID" json:"lessons"`
	Milestones    []Milestone `gorm:"foreignKey:PhaseID" json:"milestones"`
}

func (Phase) TableName() string {
	return "phases"
}

// Lesson 以 (day, hour) 作为阶段内唯一键
type Lesson struct {
	BaseModel
	PhaseID            uint             `gorm:"index:idx_lesson_key,unique" json:"-"`
	Day                int              `gorm:"not null;index:idx_lesson_key,unique" json:"day"`
	Hour               int              `gorm:"not null;index:idx_lesson_key,unique" json:"hour"`
	Title              string           `gorm:"size:255;not null" json:"title"`
	Description        string           `gorm:"type:text" json:"description"`
	TimeAllocation     int              `gorm:"default:0" json:"timeAllocation"` // 分钟
	Activities         []Activity       `gorm:"foreignKey:LessonID" json:"activities"`
	Resources          []LessonResource `gorm:"foreignKey:LessonID" json:"resources"`
	Prerequisites      []string         `gorm:"type:json;serializer:json" json:"prerequisites"`
	LearningObjectives []string         `gorm:"type:json;serializer:json" json:"learningObjectives"`
	Quiz               *Quiz            `gorm:"foreignKey:LessonID" json:"quiz,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Activity 完成状态以标题为键，标题在课时内必须唯一
type Activity struct {
	BaseModel
	LessonID    uint         `gorm:"index" json:"-"`
	Type        ActivityType `gorm:"size:20;not null" json:"type"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ResourceURL string       `gorm:"size:512" json:"resourceUrl,omitempty"`
	Duration    int          `gorm:"default:0" json:"duration"` // 分钟
	IsOptional  bool         `gorm:"default:false" json:"isOptional"`
}

func (Activity) TableName() string {
	return "activities"
}

type LessonResource struct {
	BaseModel
	LessonID    uint   `gorm:"index" json:"-"`
	Type        string `gorm:"size:20" json:"type"` // book, video, article, tool, github
	Title       string `gorm:"size:255" json:"title"`
	URL         string `gorm:"size:512" json:"url"`
	Description string `gorm:"type:text" json:"description"`
}

func (LessonResource) TableName() string {
	return "lesson_resources"
}

type Quiz struct {
	BaseModel
	LessonID  uint           `gorm:"index" json:"-"`
	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	BaseModel
	QuizID        uint     `gorm:"index" json:"-"`
	Question      string   `gorm:"type:text;not null" json:"question"`
	Options       []string `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"correctAnswer"`
	Explanation   string   `gorm:"type:text" json:"explanation"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type Milestone struct {
	BaseModel
	PhaseID         uint   `gorm:"index" json:"-"`
	Title           string `gorm:"size:255" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	RequiredLessons []int  `gorm:"type:json;serializer:json" json:"requiredLessons"`
	Badge           string `gorm:"size:100" json:"badge"`
}

func (Milestone) TableName() string {
	return "milestones"
}
