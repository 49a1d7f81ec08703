package models

import "time"

// Exam type / mode / frequency enumerations. Stored as plain strings so
// legacy documents with unknown values still decode.
const (
	ExamTypeNational      = "National"
	ExamTypeState         = "State"
	ExamTypeUniversity    = "University"
	ExamTypeInternational = "International"

	ExamModeOnline  = "Online"
	ExamModeOffline = "Offline"
	ExamModeHybrid  = "Hybrid"
)

type ExamHero struct {
	Title    string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
}

type RegistrationStep struct {
	Step        int    `bson:"step" json:"step"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type PatternRow struct {
	Section   string `bson:"section" json:"section"`
	Questions string `bson:"questions,omitempty" json:"questions,omitempty"`
	Marks     string `bson:"marks,omitempty" json:"marks,omitempty"`
	Duration  string `bson:"duration,omitempty" json:"duration,omitempty"`
}

type ImportantDate struct {
	Label string `bson:"label" json:"label"`
	Date  string `bson:"date" json:"date"`
}

type ResultStat struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

type Exam struct {
	ID                string             `bson:"_id" json:"id"`
	Slug              string             `bson:"slug" json:"slug"`
	Name              string             `bson:"name" json:"name"`
	ShortName         string             `bson:"short_name,omitempty" json:"short_name,omitempty"`
	ExamType          string             `bson:"exam_type" json:"exam_type"`
	ConductingBody    string             `bson:"conducting_body,omitempty" json:"conducting_body,omitempty"`
	ExamMode          string             `bson:"exam_mode" json:"exam_mode"`
	Frequency         string             `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	CountryRefs       []string           `bson:"country_refs,omitempty" json:"country_refs,omitempty"`
	Countries         []Country          `bson:"-" json:"countries,omitempty"` // resolved at read time
	Hero              *ExamHero          `bson:"hero,omitempty" json:"hero,omitempty"`
	RegistrationSteps []RegistrationStep `bson:"registration_steps,omitempty" json:"registration_steps,omitempty"`
	Pattern           []PatternRow       `bson:"pattern,omitempty" json:"pattern,omitempty"`
	ImportantDates    []ImportantDate    `bson:"important_dates,omitempty" json:"important_dates,omitempty"`
	ResultStats       []ResultStat       `bson:"result_stats,omitempty" json:"result_stats,omitempty"`
	DisplayOrder      int                `bson:"display_order" json:"display_order"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}
