package models

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type PlaceSubmission struct {
	SubmissionID  string    `json:"submissionid" bson:"submissionid"`
	Name          string    `json:"name" bson:"name"`
	Category      string    `json:"category" bson:"category"`
	City          string    `json:"city" bson:"city"`
	Description   string    `json:"description" bson:"description"`
	Address       string    `json:"address" bson:"address"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty" bson:"contactNumber,omitempty"`
	Website       string    `json:"website,omitempty" bson:"website,omitempty"`
	NoteForAdmin  string    `json:"noteForAdmin,omitempty" bson:"noteForAdmin,omitempty"`
	SubmittedBy   string    `json:"submittedBy" bson:"submittedBy"`
	Status        string    `json:"status" bson:"status"`
	AdminNotes    string    `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	ReviewedBy    string    `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt    time.Time `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// PlaceUpdateFields holds the subset of place fields an owner may propose
// changing. Empty strings mean "leave as is".
type PlaceUpdateFields struct {
	Name          string `json:"name,omitempty" bson:"name,omitempty"`
	Category      string `json:"category,omitempty" bson:"category,omitempty"`
	Description   string `json:"description,omitempty" bson:"description,omitempty"`
	Image         string `json:"image,omitempty" bson:"image,omitempty"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty" bson:"contactNumber,omitempty"`
	Website       string `json:"website,omitempty" bson:"website,omitempty"`
}

type PlaceUpdate struct {
	UpdateID    string            `json:"updateid" bson:"updateid"`
	PlaceID     string            `json:"placeid" bson:"placeid"`
	PlaceName   string            `json:"placeName" bson:"placeName"`
	SubmittedBy string            `json:"submittedBy" bson:"submittedBy"`
	Updates     PlaceUpdateFields `json:"updates" bson:"updates"`
	Status      string            `json:"status" bson:"status"`
	AdminNotes  string            `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	ReviewedBy  string            `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt  time.Time         `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}
