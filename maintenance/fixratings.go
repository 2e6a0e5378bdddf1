package maintenance

import (
	"context"
	"log"

	"cityguide/db"
	"cityguide/models"
	"cityguide/reviews"

	"go.mongodb.org/mongo-driver/bson"
)

type FixRatingsReport struct {
	Found int `json:"found"`
	Fixed int `json:"fixed"`
}

// RunFixZeroRatings resets the rating fields of places that carry a
// non-zero rating while having no reviews at all.
func RunFixZeroRatings(ctx context.Context) (*FixRatingsReport, error) {
	filter := bson.M{
		"totalReviews": 0,
		"$or": []bson.M{
			{"rating": bson.M{"$ne": 0}},
			{"averageRating": bson.M{"$ne": 0}},
		},
	}

	cursor, err := db.PlacesCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	report := &FixRatingsReport{}
	for cursor.Next(ctx) {
		var place models.Place
		if err := cursor.Decode(&place); err != nil {
			return report, err
		}
		report.Found++

		log.Printf("resetting rating on %s (%s): rating=%.2f averageRating=%.2f",
			place.Name, place.City, place.Rating, place.AverageRating)
		if err := reviews.WriteAggregate(ctx, place.PlaceID, reviews.Aggregate{}); err != nil {
			return report, err
		}
		report.Fixed++
	}
	return report, cursor.Err()
}
