package places

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/models"
	"cityguide/rdx"
	"cityguide/reviews"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/my-places
func GetMyPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	owned, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection, bson.M{"ownerId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch your places")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"places":  owned,
	})
}

// PUT /api/my-places/:placeid
// Owners do not edit places directly; changes go through a pending
// update that an admin approves.
func UpdateMyPlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	placeID := ps.ByName("placeid")

	var place models.Place
	err := db.PlacesCollection.FindOne(r.Context(), bson.M{"placeid": placeID}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if place.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "You do not own this place")
		return
	}

	var fields models.PlaceUpdateFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if fields == (models.PlaceUpdateFields{}) {
		utils.RespondWithError(w, http.StatusBadRequest, "No changes provided")
		return
	}

	update := models.PlaceUpdate{
		UpdateID:    "pu" + utils.GenerateRandomString(12),
		PlaceID:     placeID,
		PlaceName:   place.Name,
		SubmittedBy: userID,
		Updates:     fields,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	if _, err := db.PlaceUpdatesCollection.InsertOne(r.Context(), update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit update")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Update submitted for admin approval",
		"update":  update,
	})
}

// DELETE /api/my-places/:placeid
func DeleteMyPlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	placeID := ps.ByName("placeid")

	var place models.Place
	err := db.PlacesCollection.FindOne(r.Context(), bson.M{"placeid": placeID}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if place.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "You do not own this place")
		return
	}

	if err := DeleteCascade(r.Context(), placeID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete place")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Place deleted",
	})
}

// DeleteCascade removes a place together with its reviews, favorites
// and pending updates, then drops the cached listing.
func DeleteCascade(ctx context.Context, placeID string) error {
	if _, err := db.PlacesCollection.DeleteOne(ctx, bson.M{"placeid": placeID}); err != nil {
		return err
	}
	if _, err := reviews.DeleteByPlace(ctx, placeID); err != nil {
		return err
	}
	if _, err := db.FavoritesCollection.DeleteMany(ctx, bson.M{"placeid": placeID}); err != nil {
		return err
	}
	if _, err := db.PlaceUpdatesCollection.DeleteMany(ctx, bson.M{"placeid": placeID}); err != nil {
		return err
	}
	rdx.RdxDel("places")
	return nil
}

// GET /api/my-places/updates
func GetMyUpdates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	updates, err := utils.FindAndDecode[models.PlaceUpdate](r.Context(), db.PlaceUpdatesCollection, bson.M{"submittedBy": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch your updates")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"updates": updates,
	})
}
