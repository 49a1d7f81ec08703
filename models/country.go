package models

import "time"

type Country struct {
	ID              string    `bson:"_id" json:"id"`
	Slug            string    `bson:"slug" json:"slug"`
	Name            string    `bson:"name" json:"name"`
	Flag            string    `bson:"flag,omitempty" json:"flag,omitempty"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	MetaTitle       string    `bson:"meta_title,omitempty" json:"meta_title,omitempty"`
	MetaDescription string    `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	IsActive        bool      `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
