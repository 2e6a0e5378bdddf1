package models

import "time"

type Place struct {
	PlaceID       string    `json:"placeid" bson:"placeid"`
	Name          string    `json:"name" bson:"name"`
	Category      string    `json:"category" bson:"category"`
	City          string    `json:"city" bson:"city"`
	Description   string    `json:"description" bson:"description"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty" bson:"contactNumber,omitempty"`
	Website       string    `json:"website,omitempty" bson:"website,omitempty"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	OwnerID       string    `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	TotalReviews  int       `json:"totalReviews" bson:"totalReviews"`
	AverageRating float64   `json:"averageRating" bson:"averageRating"`
	Rating        float64   `json:"rating" bson:"rating"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`

	// LegacyReviews is the pre-migration embedded representation. Only the
	// migration job reads it; nothing writes it anymore.
	LegacyReviews []LegacyReview `json:"-" bson:"reviews,omitempty"`
}

// LegacyReview is a review stored inline on the place document before the
// standalone reviews collection existed.
type LegacyReview struct {
	UserID       string     `bson:"userId"`
	UserName     string     `bson:"userName"`
	Rating       int        `bson:"rating"`
	Comment      string     `bson:"comment"`
	OwnerReply   *string    `bson:"ownerReply,omitempty"`
	OwnerReplyAt *time.Time `bson:"ownerReplyAt,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt,omitempty"`
}
