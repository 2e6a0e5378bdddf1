package maintenance

import (
	"context"
	"log"
	"math"

	"cityguide/db"
	"cityguide/models"
	"cityguide/reviews"

	"go.mongodb.org/mongo-driver/bson"
)

// ratingTolerance absorbs float rounding between recomputations; stored
// averages are compared against true means within ±0.01, counts exactly.
const ratingTolerance = 0.01

type PlaceRepair struct {
	PlaceID    string  `json:"placeid"`
	Name       string  `json:"name"`
	OldTotal   int     `json:"oldTotal"`
	NewTotal   int     `json:"newTotal"`
	OldAverage float64 `json:"oldAverage"`
	NewAverage float64 `json:"newAverage"`
}

type CleanupReport struct {
	TotalPlaces    int           `json:"totalPlaces"`
	Updated        int           `json:"updated"`
	AlreadyCorrect int           `json:"alreadyCorrect"`
	Repairs        []PlaceRepair `json:"repairs"`
}

// NeedsRepair reports whether a place's stored aggregate drifted from the
// true one.
func NeedsRepair(p models.Place, agg reviews.Aggregate) bool {
	return p.TotalReviews != agg.TotalReviews ||
		math.Abs(p.AverageRating-agg.AverageRating) > ratingTolerance ||
		math.Abs(p.Rating-agg.AverageRating) > ratingTolerance
}

// RunCleanup scans every place, recomputes the true aggregate from the
// reviews collection and corrects any drift. Idempotent: a second run with
// no intervening writes updates nothing. Each place's write is independent
// and self-consistent, so running against live traffic is safe.
func RunCleanup(ctx context.Context) (*CleanupReport, error) {
	if err := db.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	cursor, err := db.PlacesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	report := &CleanupReport{}
	for cursor.Next(ctx) {
		var place models.Place
		if err := cursor.Decode(&place); err != nil {
			return report, err
		}
		report.TotalPlaces++

		revs, err := reviews.ListByPlace(ctx, place.PlaceID)
		if err != nil {
			return report, err
		}
		agg := reviews.ComputeAggregate(revs)

		if !NeedsRepair(place, agg) {
			report.AlreadyCorrect++
			continue
		}

		log.Printf("repairing %s (%s): %d reviews %.2f avg -> %d reviews %.2f avg",
			place.Name, place.PlaceID, place.TotalReviews, place.AverageRating,
			agg.TotalReviews, agg.AverageRating)

		if err := reviews.WriteAggregate(ctx, place.PlaceID, agg); err != nil {
			return report, err
		}
		report.Updated++
		report.Repairs = append(report.Repairs, PlaceRepair{
			PlaceID:    place.PlaceID,
			Name:       place.Name,
			OldTotal:   place.TotalReviews,
			NewTotal:   agg.TotalReviews,
			OldAverage: place.AverageRating,
			NewAverage: agg.AverageRating,
		})
	}
	return report, cursor.Err()
}
