package reviews

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"cityguide/db"
	"cityguide/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCreateReviewValidation(t *testing.T) {
	// Validation runs before any storage access.
	tests := []struct {
		name   string
		review models.Review
	}{
		{"rating too low", models.Review{Rating: 0, Comment: "fine"}},
		{"rating too high", models.Review{Rating: 6, Comment: "fine"}},
		{"empty comment", models.Review{Rating: 4, Comment: ""}},
		{"whitespace comment", models.Review{Rating: 4, Comment: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateReview(context.Background(), tt.review)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

// setupMongo connects to a throwaway database. Skipped unless
// MONGO_TEST_URI is set (e.g. mongodb://localhost:27017).
func setupMongo(t *testing.T) context.Context {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	if err := db.Init(ctx, uri); err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		t.Fatalf("db.EnsureIndexes: %v", err)
	}
	t.Cleanup(func() {
		db.ReviewsCollection.Drop(context.Background())
		db.PlacesCollection.Drop(context.Background())
		db.Close(context.Background())
	})
	return ctx
}

func insertPlace(ctx context.Context, t *testing.T, placeID string) {
	t.Helper()
	_, err := db.PlacesCollection.InsertOne(ctx, models.Place{
		PlaceID:   placeID,
		Name:      "Test Cafe",
		Category:  "cafe",
		City:      "Pune",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("inserting place: %v", err)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	ctx := setupMongo(t)
	insertPlace(ctx, t, "p-dup")

	review := models.Review{PlaceID: "p-dup", UserID: "u1", UserName: "A", Rating: 4, Comment: "good"}
	if _, err := CreateReview(ctx, review); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Same author, same place: rejected by the index even with a fresh id.
	review.ReviewID = ""
	review.Comment = "second attempt"
	if _, err := CreateReview(ctx, review); !errors.Is(err, ErrDuplicateReview) {
		t.Errorf("err = %v, want ErrDuplicateReview", err)
	}

	// Same author on a different place is fine.
	insertPlace(ctx, t, "p-other")
	other := models.Review{PlaceID: "p-other", UserID: "u1", UserName: "A", Rating: 5, Comment: "also good"}
	if _, err := CreateReview(ctx, other); err != nil {
		t.Errorf("different place: %v", err)
	}
}

func TestRecomputePlaceAggregate(t *testing.T) {
	ctx := setupMongo(t)
	insertPlace(ctx, t, "p-agg")

	for i, rating := range []int{5, 4, 3} {
		review := models.Review{
			PlaceID:  "p-agg",
			UserID:   "u" + string(rune('a'+i)),
			UserName: "User",
			Rating:   rating,
			Comment:  "review",
		}
		if _, err := CreateReview(ctx, review); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	agg, err := RecomputePlaceAggregate(ctx, "p-agg")
	if err != nil {
		t.Fatalf("RecomputePlaceAggregate: %v", err)
	}
	if agg.TotalReviews != 3 || math.Abs(agg.AverageRating-4.0) > 1e-9 {
		t.Errorf("agg = %+v, want {3 4}", agg)
	}

	var place models.Place
	if err := db.PlacesCollection.FindOne(ctx, bson.M{"placeid": "p-agg"}).Decode(&place); err != nil {
		t.Fatalf("reading place: %v", err)
	}
	if place.TotalReviews != 3 {
		t.Errorf("stored totalReviews = %d, want 3", place.TotalReviews)
	}
	if math.Abs(place.AverageRating-4.0) > 1e-9 || math.Abs(place.Rating-4.0) > 1e-9 {
		t.Errorf("stored averages = %v/%v, want 4.0 for both", place.AverageRating, place.Rating)
	}

	// Recomputing with no intervening writes changes nothing.
	again, err := RecomputePlaceAggregate(ctx, "p-agg")
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if again != agg {
		t.Errorf("second recompute = %+v, want %+v", again, agg)
	}
}

func TestWriteAggregateMissingPlace(t *testing.T) {
	ctx := setupMongo(t)

	err := WriteAggregate(ctx, "no-such-place", Aggregate{TotalReviews: 1, AverageRating: 5})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
