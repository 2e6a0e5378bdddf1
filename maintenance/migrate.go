package maintenance

import (
	"context"
	"errors"
	"log"
	"time"

	"cityguide/db"
	"cityguide/models"
	"cityguide/reviews"

	"go.mongodb.org/mongo-driver/bson"
)

type MigrationReport struct {
	PlacesChecked    int `json:"placesChecked"`
	PlacesWithLegacy int `json:"placesWithLegacy"`
	Migrated         int `json:"migrated"`
	Skipped          int `json:"skipped"`
	Failed           int `json:"failed"`
}

// legacyToReview maps an embedded legacy review to a store-backed one,
// preserving the original timestamps where available.
func legacyToReview(placeID string, l models.LegacyReview, now time.Time) models.Review {
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	return models.Review{
		PlaceID:      placeID,
		UserID:       l.UserID,
		UserName:     l.UserName,
		Rating:       l.Rating,
		Comment:      l.Comment,
		OwnerReply:   l.OwnerReply,
		OwnerReplyAt: l.OwnerReplyAt,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// RunMigration moves legacy embedded reviews into the reviews collection.
// Duplicates (same place + author, typically from a previous partial run)
// are skipped and counted, never fatal, so the job can be re-run over a
// partially migrated dataset. The legacy array is left in place for manual
// removal once the migration has been verified against it.
func RunMigration(ctx context.Context) (*MigrationReport, error) {
	if err := db.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	cursor, err := db.PlacesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	report := &MigrationReport{}
	now := time.Now()

	for cursor.Next(ctx) {
		var place models.Place
		if err := cursor.Decode(&place); err != nil {
			return report, err
		}
		report.PlacesChecked++

		if len(place.LegacyReviews) == 0 {
			continue
		}
		report.PlacesWithLegacy++
		log.Printf("migrating %d embedded reviews for %s (%s)", len(place.LegacyReviews), place.Name, place.City)

		for _, legacy := range place.LegacyReviews {
			_, err := reviews.CreateReview(ctx, legacyToReview(place.PlaceID, legacy, now))
			switch {
			case err == nil:
				report.Migrated++
			case errors.Is(err, reviews.ErrDuplicateReview):
				report.Skipped++
				log.Printf("skipped already-migrated review from %s on %s", legacy.UserName, place.PlaceID)
			default:
				report.Failed++
				log.Printf("failed to migrate review from %s on %s: %v", legacy.UserName, place.PlaceID, err)
			}
		}

		if _, err := reviews.RecomputePlaceAggregate(ctx, place.PlaceID); err != nil {
			return report, err
		}
	}
	return report, cursor.Err()
}
