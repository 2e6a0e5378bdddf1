package maintenance

import (
	"testing"
	"time"

	"cityguide/models"
)

func TestLegacyToReviewPreservesTimestamps(t *testing.T) {
	created := time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC)
	now := time.Now()

	legacy := models.LegacyReview{
		UserID:    "u123",
		UserName:  "Asha",
		Rating:    4,
		Comment:   "Great coffee",
		CreatedAt: created,
	}

	review := legacyToReview("p1", legacy, now)

	if review.PlaceID != "p1" || review.UserID != "u123" || review.UserName != "Asha" {
		t.Errorf("identity fields not carried over: %+v", review)
	}
	if review.Rating != 4 || review.Comment != "Great coffee" {
		t.Errorf("content fields not carried over: %+v", review)
	}
	if !review.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", review.CreatedAt, created)
	}
	if !review.UpdatedAt.Equal(created) {
		t.Errorf("UpdatedAt = %v, want original %v", review.UpdatedAt, created)
	}
}

func TestLegacyToReviewDefaultsMissingTimestamp(t *testing.T) {
	now := time.Now()
	legacy := models.LegacyReview{UserID: "u1", UserName: "B", Rating: 5, Comment: "ok"}

	review := legacyToReview("p1", legacy, now)

	if !review.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want fallback %v", review.CreatedAt, now)
	}
}

func TestLegacyToReviewKeepsOwnerReply(t *testing.T) {
	reply := "Thanks for visiting!"
	repliedAt := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	legacy := models.LegacyReview{
		UserID:       "u1",
		UserName:     "C",
		Rating:       3,
		Comment:      "decent",
		OwnerReply:   &reply,
		OwnerReplyAt: &repliedAt,
	}

	review := legacyToReview("p1", legacy, time.Now())

	if review.OwnerReply == nil || *review.OwnerReply != reply {
		t.Errorf("OwnerReply = %v, want %q", review.OwnerReply, reply)
	}
	if review.OwnerReplyAt == nil || !review.OwnerReplyAt.Equal(repliedAt) {
		t.Errorf("OwnerReplyAt = %v, want %v", review.OwnerReplyAt, repliedAt)
	}
}
