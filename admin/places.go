package admin

import (
	"net/http"

	"cityguide/db"
	"cityguide/models"
	"cityguide/places"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/places
func GetAdminPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, 50, 200)

	filter := bson.M{}
	if city := r.URL.Query().Get("city"); city != "" {
		filter["city"] = city
	}

	total, err := db.PlacesCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)
	list, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"places":  list,
		"total":   total,
	})
}

// DELETE /api/admin/places/:placeid
func DeleteAdminPlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	placeID := ps.ByName("placeid")

	err := db.PlacesCollection.FindOne(r.Context(), bson.M{"placeid": placeID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := places.DeleteCascade(r.Context(), placeID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete place")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Place deleted",
	})
}
