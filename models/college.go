package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// RankingDetails is the structured form of a college ranking.
type RankingDetails struct {
	Title          string   `bson:"title,omitempty" json:"title,omitempty"`
	Description    string   `bson:"description,omitempty" json:"description,omitempty"`
	CountryRanking string   `bson:"country_ranking,omitempty" json:"country_ranking,omitempty"`
	WorldRanking   string   `bson:"world_ranking,omitempty" json:"world_ranking,omitempty"`
	Accreditation  []string `bson:"accreditation,omitempty" json:"accreditation,omitempty"`
}

// Ranking is stored either as a plain string or as a RankingDetails
// document; both encodings exist in the wild, so it round-trips both.
// Exactly one of Simple/Detailed is set.
type Ranking struct {
	Simple   string
	Detailed *RankingDetails
}

func (r Ranking) IsZero() bool {
	return r.Simple == "" && r.Detailed == nil
}

func (r Ranking) MarshalJSON() ([]byte, error) {
	if r.Detailed != nil {
		return json.Marshal(r.Detailed)
	}
	return json.Marshal(r.Simple)
}

func (r *Ranking) UnmarshalJSON(data []byte) error {
	*r = Ranking{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Simple)
	}
	var d RankingDetails
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	r.Detailed = &d
	return nil
}

func (r Ranking) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.Detailed != nil {
		return bson.MarshalValue(r.Detailed)
	}
	return bson.MarshalValue(r.Simple)
}

func (r *Ranking) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*r = Ranking{}
	switch t {
	case bsontype.String:
		return bson.UnmarshalValue(t, data, &r.Simple)
	case bsontype.EmbeddedDocument:
		var d RankingDetails
		if err := bson.UnmarshalValue(t, data, &d); err != nil {
			return err
		}
		r.Detailed = &d
		return nil
	case bsontype.Null, bsontype.Undefined:
		return nil
	default:
		return fmt.Errorf("ranking: unsupported bson type %s", t)
	}
}

// Structured college sections. Every section carries its own heading and
// blurb so the admin can retitle them without a code change.

type Overview struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description" json:"description"`
}

type KeyHighlights struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Features    []string `bson:"features" json:"features"`
}

type Feature struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type WhyChooseUs struct {
	Title       string    `bson:"title,omitempty" json:"title,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Features    []Feature `bson:"features" json:"features"`
}

type AdmissionProcess struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Steps       []string `bson:"steps" json:"steps"`
}

type DocumentsRequired struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Documents   []string `bson:"documents" json:"documents"`
}

type CourseFee struct {
	CourseName       string `bson:"course_name" json:"course_name"`
	Duration         string `bson:"duration,omitempty" json:"duration,omitempty"`
	AnnualTuitionFee string `bson:"annual_tuition_fee" json:"annual_tuition_fee"`
}

type FeesStructure struct {
	Title       string      `bson:"title,omitempty" json:"title,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Courses     []CourseFee `bson:"courses" json:"courses"`
}

type CampusHighlights struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Highlights  []string `bson:"highlights" json:"highlights"`
}

type College struct {
	ID                string             `bson:"_id" json:"id"`
	Slug              string             `bson:"slug" json:"slug"`
	Name              string             `bson:"name" json:"name"`
	CountryRef        string             `bson:"country_ref" json:"country_ref"`
	Country           *Country           `bson:"-" json:"country,omitempty"` // resolved at read time, nil when dangling
	Exams             []string           `bson:"exams" json:"exams"`
	Fees              float64            `bson:"fees" json:"fees"`
	Duration          string             `bson:"duration" json:"duration"`
	EstablishmentYear int                `bson:"establishment_year,omitempty" json:"establishment_year,omitempty"`
	Ranking           Ranking            `bson:"ranking,omitempty" json:"ranking,omitzero"`
	BannerImage       string             `bson:"banner_image,omitempty" json:"banner_image,omitempty"`
	Overview          *Overview          `bson:"overview,omitempty" json:"overview,omitempty"`
	KeyHighlights     *KeyHighlights     `bson:"key_highlights,omitempty" json:"key_highlights,omitempty"`
	WhyChooseUs       *WhyChooseUs       `bson:"why_choose_us,omitempty" json:"why_choose_us,omitempty"`
	AdmissionProcess  *AdmissionProcess  `bson:"admission_process,omitempty" json:"admission_process,omitempty"`
	DocumentsRequired *DocumentsRequired `bson:"documents_required,omitempty" json:"documents_required,omitempty"`
	FeesStructure     *FeesStructure     `bson:"fees_structure,omitempty" json:"fees_structure,omitempty"`
	CampusHighlights  *CampusHighlights  `bson:"campus_highlights,omitempty" json:"campus_highlights,omitempty"`

	// AboutContent predates the structured overview section and is kept
	// as a read fallback only. New writes should fill Overview.
	AboutContent string `bson:"about_content,omitempty" json:"about_content,omitempty"`

	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Description returns the canonical long-form description: the
// structured overview when present, else the legacy about_content.
func (c *College) Description() string {
	if c.Overview != nil && c.Overview.Description != "" {
		return c.Overview.Description
	}
	return c.AboutContent
}
