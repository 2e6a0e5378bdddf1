package favorites

import (
	"net/http"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/models"
	"cityguide/mq"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GET /api/favorites
func GetFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	pipeline := []bson.M{
		{"$match": bson.M{"userid": userID}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         "places",
			"localField":   "placeid",
			"foreignField": "placeid",
			"as":           "place",
		}},
		{"$unwind": "$place"},
		{"$project": bson.M{
			"_id":        0,
			"favoriteid": 1,
			"createdAt":  1,
			"place":      1,
		}},
	}

	cursor, err := db.FavoritesCollection.Aggregate(r.Context(), pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}
	defer cursor.Close(r.Context())

	favorites := []models.FavoriteWithPlace{}
	if err := cursor.All(r.Context(), &favorites); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":   true,
		"favorites": favorites,
	})
}

// POST /api/favorites/:placeid
func AddFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
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

	favorite := models.Favorite{
		FavoriteID: "f" + utils.GenerateRandomString(12),
		UserID:     userID,
		PlaceID:    placeID,
		CreatedAt:  time.Now(),
	}
	_, err = db.FavoritesCollection.InsertOne(r.Context(), favorite)
	if mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusBadRequest, "Place already in favorites")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	go mq.Emit(r.Context(), "favorite-added", models.Index{EntityType: "favorite", EntityId: favorite.FavoriteID, Method: "POST", ItemType: "place", ItemId: placeID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":  true,
		"message":  "Place added to favorites",
		"favorite": favorite,
	})
}

// DELETE /api/favorites/:placeid
func RemoveFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	placeID := ps.ByName("placeid")

	res, err := db.FavoritesCollection.DeleteOne(r.Context(), bson.M{"userid": userID, "placeid": placeID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Favorite not found")
		return
	}

	go mq.Emit(r.Context(), "favorite-removed", models.Index{EntityType: "favorite", EntityId: placeID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Place removed from favorites",
	})
}
