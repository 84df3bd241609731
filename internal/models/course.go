package models

import "time"

// Course is owned by the catalog side of the platform; the assessment engine
// only reads the name and maintains the derived rolling rating.
type Course struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Name            string    `bson:"name" json:"name"`
	InstructorEmail string    `bson:"instructor_email" json:"instructor_email"`
	Rating          float64   `bson:"rating" json:"rating"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// User is the profile document maintained by the account side of the
// platform. The engine reads it only for leaderboard display names.
type User struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}
