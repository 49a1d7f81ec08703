package models

import "time"

type Blog struct {
	ID           string     `bson:"_id" json:"id"`
	Slug         string     `bson:"slug" json:"slug"`
	Title        string     `bson:"title" json:"title"`
	Category     string     `bson:"category,omitempty" json:"category,omitempty"`
	Tags         []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Content      string     `bson:"content" json:"content"`
	Image        string     `bson:"image,omitempty" json:"image,omitempty"`
	Author       string     `bson:"author,omitempty" json:"author,omitempty"`
	PublishedAt  *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	ReadTime     int        `bson:"read_time,omitempty" json:"read_time,omitempty"`
	Views        int64      `bson:"views" json:"views"`
	Comments     int64      `bson:"comments" json:"comments"`
	RelatedExams []string   `bson:"related_exams,omitempty" json:"related_exams,omitempty"` // free-text exam names, not references
	IsActive     bool       `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// Published returns the effective publication time, falling back to the
// creation timestamp when none was set.
func (b *Blog) Published() time.Time {
	if b.PublishedAt != nil {
		return *b.PublishedAt
	}
	return b.CreatedAt
}
