package reviews

import (
	"context"
	"time"

	"cityguide/db"
	"cityguide/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Aggregate is the denormalized review summary a place carries.
type Aggregate struct {
	TotalReviews  int
	AverageRating float64
}

// ComputeAggregate derives the summary from a set of reviews. The mean is
// 0 when there are no reviews.
func ComputeAggregate(revs []models.Review) Aggregate {
	if len(revs) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range revs {
		sum += r.Rating
	}
	return Aggregate{
		TotalReviews:  len(revs),
		AverageRating: float64(sum) / float64(len(revs)),
	}
}

// WriteAggregate persists a summary onto the place document. All three
// fields go in one $set: a single-document update either applies fully or
// not at all, so the stored aggregate is never torn. `rating` is a legacy
// duplicate of averageRating kept for older clients.
func WriteAggregate(ctx context.Context, placeID string, agg Aggregate) error {
	res, err := db.PlacesCollection.UpdateOne(ctx,
		bson.M{"placeid": placeID},
		bson.M{"$set": bson.M{
			"totalReviews":  agg.TotalReviews,
			"averageRating": agg.AverageRating,
			"rating":        agg.AverageRating,
			"updated_at":    time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RecomputePlaceAggregate is the only writer of a place's summary fields.
// It re-reads the full review set (per-place counts are small) and writes
// the derived values back. Called synchronously after every review
// mutation that can change ratings; a failed write propagates so the
// triggering request fails visibly instead of reporting a stale aggregate
// as success.
func RecomputePlaceAggregate(ctx context.Context, placeID string) (Aggregate, error) {
	revs, err := ListByPlace(ctx, placeID)
	if err != nil {
		return Aggregate{}, err
	}
	agg := ComputeAggregate(revs)
	if err := WriteAggregate(ctx, placeID, agg); err != nil {
		return Aggregate{}, err
	}
	return agg, nil
}
