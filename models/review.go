package models

import "time"

type Review struct {
	ReviewID     string     `json:"reviewid" bson:"reviewid"`
	PlaceID      string     `json:"placeid" bson:"placeid"`
	UserID       string     `json:"userid" bson:"userid"`
	UserName     string     `json:"userName" bson:"userName"`
	Rating       int        `json:"rating" bson:"rating"`
	Comment      string     `json:"comment" bson:"comment"`
	OwnerReply   *string    `json:"ownerReply,omitempty" bson:"ownerReply,omitempty"`
	OwnerReplyAt *time.Time `json:"ownerReplyAt,omitempty" bson:"ownerReplyAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}
