package models

import "time"

// Enquiry is a submitted contact form from the public site.
type Enquiry struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Number    string    `bson:"number" json:"number"`
	City      string    `bson:"city,omitempty" json:"city,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
