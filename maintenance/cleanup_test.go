package maintenance

import (
	"testing"

	"cityguide/models"
	"cityguide/reviews"
)

func TestNeedsRepairDrift(t *testing.T) {
	// Stored aggregate claims 5 reviews at 4.2 while only 3 reviews
	// averaging 4.0 actually exist.
	place := models.Place{TotalReviews: 5, AverageRating: 4.2, Rating: 4.2}
	agg := reviews.Aggregate{TotalReviews: 3, AverageRating: 4.0}

	if !NeedsRepair(place, agg) {
		t.Error("drifted aggregate should need repair")
	}
}

func TestNeedsRepairCorrect(t *testing.T) {
	place := models.Place{TotalReviews: 3, AverageRating: 4.0, Rating: 4.0}
	agg := reviews.Aggregate{TotalReviews: 3, AverageRating: 4.0}

	if NeedsRepair(place, agg) {
		t.Error("matching aggregate should not need repair")
	}
}

func TestNeedsRepairTolerance(t *testing.T) {
	agg := reviews.Aggregate{TotalReviews: 3, AverageRating: 4.0}

	within := models.Place{TotalReviews: 3, AverageRating: 4.005, Rating: 3.995}
	if NeedsRepair(within, agg) {
		t.Error("difference within 0.01 should not trigger a repair")
	}

	beyond := models.Place{TotalReviews: 3, AverageRating: 4.02, Rating: 4.02}
	if !NeedsRepair(beyond, agg) {
		t.Error("difference beyond 0.01 should trigger a repair")
	}
}

func TestNeedsRepairCountIsExact(t *testing.T) {
	place := models.Place{TotalReviews: 4, AverageRating: 4.0, Rating: 4.0}
	agg := reviews.Aggregate{TotalReviews: 3, AverageRating: 4.0}

	if !NeedsRepair(place, agg) {
		t.Error("count mismatch should always trigger a repair")
	}
}

func TestNeedsRepairRatingFieldOnly(t *testing.T) {
	// averageRating is right but the legacy rating duplicate drifted.
	place := models.Place{TotalReviews: 3, AverageRating: 4.0, Rating: 3.5}
	agg := reviews.Aggregate{TotalReviews: 3, AverageRating: 4.0}

	if !NeedsRepair(place, agg) {
		t.Error("stale rating field should trigger a repair")
	}
}
