package reviews

import (
	"context"
	"strings"
	"time"

	"cityguide/db"
	"cityguide/models"
	"cityguide/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReview validates and inserts a review. Duplicate (placeid, userid)
// pairs fail with ErrDuplicateReview via the unique compound index — two
// concurrent submissions can both pass any read-check, so the index is the
// only safe arbiter. Zero timestamps default to now; the migration job
// passes the legacy timestamps through.
func CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	review.Comment = strings.TrimSpace(review.Comment)
	if review.Rating < 1 || review.Rating > 5 {
		return models.Review{}, &ValidationError{Msg: "Rating must be between 1 and 5"}
	}
	if review.Comment == "" {
		return models.Review{}, &ValidationError{Msg: "Rating and comment are required"}
	}

	if review.ReviewID == "" {
		review.ReviewID = utils.GenerateRandomString(16)
	}
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	if review.UpdatedAt.IsZero() {
		review.UpdatedAt = review.CreatedAt
	}

	_, err := db.ReviewsCollection.InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return models.Review{}, ErrDuplicateReview
	}
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// ListByPlace returns all reviews for a place, newest first.
func ListByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, bson.M{"placeid": placeID}, opts)
}

func CountByPlace(ctx context.Context, placeID string) (int64, error) {
	return db.ReviewsCollection.CountDocuments(ctx, bson.M{"placeid": placeID})
}

// DeleteByPlace removes every review for a place. Cascade path: the place
// itself is gone, so no recompute follows.
func DeleteByPlace(ctx context.Context, placeID string) (int64, error) {
	res, err := db.ReviewsCollection.DeleteMany(ctx, bson.M{"placeid": placeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteReview removes a single review. No endpoint exposes this; it
// exists for the offline tooling, and callers must recompute the place
// aggregate afterwards.
func DeleteReview(ctx context.Context, placeID, reviewID string) error {
	res, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID, "placeid": placeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOwnerReply sets or overwrites the owner reply on a review. The
// caller is responsible for checking that the replier owns the place.
// Replies never touch the rating, so no recompute is triggered.
func SetOwnerReply(ctx context.Context, placeID, reviewID, reply string) (models.Review, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return models.Review{}, &ValidationError{Msg: "Reply text is required"}
	}

	now := time.Now()
	var updated models.Review
	err := db.ReviewsCollection.FindOneAndUpdate(ctx,
		bson.M{"reviewid": reviewID, "placeid": placeID},
		bson.M{"$set": bson.M{
			"ownerReply":   reply,
			"ownerReplyAt": now,
			"updatedAt":    now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return models.Review{}, ErrNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return updated, nil
}
