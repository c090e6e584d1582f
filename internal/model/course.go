package model

import "encoding/json"

// swagger:model Course
type Course struct {
	UUIDBase
	Slug            string          `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title           string          `gorm:"size:255" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        string          `gorm:"size:100" json:"category"`
	CourseType      string          `gorm:"size:50" json:"courseType"`
	Language        string          `gorm:"size:10;default:'he'" json:"language"`
	Visibility      json.RawMessage `gorm:"type:json" json:"visibility"` // JSON: []string of locale tags
	ImageURL        string          `gorm:"size:512" json:"imageUrl"`
	DemoVideoURL    string          `gorm:"size:512" json:"demoVideoUrl"`
	DurationMinutes int             `gorm:"default:0" json:"durationMinutes"`
	IsFree          bool            `gorm:"default:false" json:"isFree"`
	IsLocked        bool            `gorm:"default:false" json:"isLocked"`
	EnableLessonQA  bool            `gorm:"default:true" json:"enableLessonQa"`
	HasPreTest      bool            `gorm:"default:false" json:"hasPreTest"`
	MinPreTestScore int             `gorm:"default:80" json:"minPreTestScore"`
	Modules         []CourseModule  `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
	PreTestQuiz     []QuizQuestion  `gorm:"foreignKey:CourseID" json:"preTestQuiz,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (c Course) AudienceLanguage() string { return c.Language }

func (c Course) AudienceVisibility() []string {
	return decodeVisibility(c.Visibility)
}

// swagger:model CourseModule
type CourseModule struct {
	UUIDBase
	CourseID   string   `gorm:"index;type:varchar(36)" json:"courseId"`
	Title      string   `gorm:"size:255" json:"title"`
	OrderIndex int      `gorm:"default:0" json:"orderIndex"`
	Lessons    []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	ModuleID     string         `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title        string         `gorm:"size:255" json:"title"`
	Content      string         `gorm:"type:text" json:"content"`
	LessonType   string         `gorm:"size:50;default:'video'" json:"lessonType"`
	VideoURL     string         `gorm:"size:512" json:"videoUrl"`
	DurationText string         `gorm:"size:50" json:"durationText"`
	OrderIndex   int            `gorm:"default:0" json:"orderIndex"`
	HasQuiz      bool           `gorm:"default:false" json:"hasQuiz"`
	Quiz         []QuizQuestion `gorm:"foreignKey:LessonID" json:"quiz,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
