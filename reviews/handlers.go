package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/models"
	"cityguide/mq"
	"cityguide/rdx"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func findPlace(ctx context.Context, placeID string) (models.Place, error) {
	var place models.Place
	err := db.PlacesCollection.FindOne(ctx, bson.M{"placeid": placeID}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		return models.Place{}, ErrNotFound
	}
	return place, err
}

// POST /api/place/:placeid/reviews
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	placeID := ps.ByName("placeid")

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	if _, err := findPlace(ctx, placeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Place not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load place")
		return
	}

	// Snapshot the author name; it is not re-resolved later.
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	review, err := CreateReview(ctx, models.Review{
		PlaceID:  placeID,
		UserID:   userID,
		UserName: user.Name,
		Rating:   input.Rating,
		Comment:  input.Comment,
	})
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(w, http.StatusBadRequest, verr.Msg)
		return
	case errors.Is(err, ErrDuplicateReview):
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this place")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	// Synchronous: the caller must observe a consistent aggregate once this
	// request returns. A write failure here fails the request; the offline
	// cleanup job is the backstop for any drift that leaves behind.
	if _, err := RecomputePlaceAggregate(ctx, placeID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update place statistics")
		return
	}

	rdx.RdxDel("places")
	go mq.Emit(r.Context(), "review-added", models.Index{
		EntityType: "review", EntityId: review.ReviewID, Method: "POST",
		ItemType: "place", ItemId: placeID,
	})

	place, err := findPlace(ctx, placeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load place")
		return
	}
	all, err := ListByPlace(ctx, placeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Review added successfully",
		"data": utils.M{
			"place":   place,
			"review":  review,
			"reviews": all,
		},
	})
}

// GET /api/place/:placeid/reviews
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placeID := ps.ByName("placeid")
	place, err := findPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Place not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load place")
		return
	}

	revs, err := ListByPlace(ctx, placeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data": utils.M{
			"reviews":       revs,
			"totalReviews":  place.TotalReviews,
			"averageRating": place.AverageRating,
		},
	})
}

// POST /api/place/:placeid/reviews/:reviewid/reply
func ReplyToReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	placeID := ps.ByName("placeid")
	reviewID := ps.ByName("reviewid")

	var input struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reply data")
		return
	}

	place, err := findPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Place not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load place")
		return
	}
	if place.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the place owner can reply to reviews")
		return
	}

	updated, err := SetOwnerReply(ctx, placeID, reviewID, input.Reply)
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(w, http.StatusBadRequest, verr.Msg)
		return
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save reply")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Reply added successfully",
		"data":    updated,
	})
}
