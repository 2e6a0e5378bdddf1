package reviews

import (
	"math"
	"testing"

	"cityguide/models"
)

func ratings(rs ...int) []models.Review {
	revs := make([]models.Review, len(rs))
	for i, r := range rs {
		revs[i] = models.Review{Rating: r}
	}
	return revs
}

func TestComputeAggregateEmpty(t *testing.T) {
	agg := ComputeAggregate(nil)
	if agg.TotalReviews != 0 {
		t.Errorf("TotalReviews = %d, want 0", agg.TotalReviews)
	}
	if agg.AverageRating != 0 {
		t.Errorf("AverageRating = %v, want 0", agg.AverageRating)
	}
}

func TestComputeAggregateSingle(t *testing.T) {
	agg := ComputeAggregate(ratings(5))
	if agg.TotalReviews != 1 || agg.AverageRating != 5.0 {
		t.Errorf("got %+v, want {1 5}", agg)
	}
}

func TestComputeAggregateMean(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		avg  float64
	}{
		{"two extremes", []int{5, 1}, 3.0},
		{"exact thirds", []int{5, 4, 3}, 4.0},
		{"repeating decimal", []int{5, 5, 4}, 14.0 / 3.0},
		{"all same", []int{2, 2, 2, 2}, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := ComputeAggregate(ratings(tt.in...))
			if agg.TotalReviews != len(tt.in) {
				t.Errorf("TotalReviews = %d, want %d", agg.TotalReviews, len(tt.in))
			}
			if math.Abs(agg.AverageRating-tt.avg) > 1e-9 {
				t.Errorf("AverageRating = %v, want %v", agg.AverageRating, tt.avg)
			}
		})
	}
}
