package admin

import (
	"net/http"

	"cityguide/db"
	"cityguide/models"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type bucketCount struct {
	ID    string `bson:"_id" json:"name"`
	Count int64  `bson:"count" json:"count"`
}

func countByField(r *http.Request, coll *mongo.Collection, field string) ([]bucketCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}
	cursor, err := coll.Aggregate(r.Context(), pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	buckets := []bucketCount{}
	if err := cursor.All(r.Context(), &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GET /api/admin/stats
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	totalUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	totalPlaces, err := db.PlacesCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	totalReviews, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	pendingSubmissions, err := db.SubmissionsCollection.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	pendingUpdates, err := db.PlaceUpdatesCollection.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	byCategory, err := countByField(r, db.PlacesCollection, "category")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	byCity, err := countByField(r, db.PlacesCollection, "city")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"stats": utils.M{
			"totalUsers":         totalUsers,
			"totalPlaces":        totalPlaces,
			"totalReviews":       totalReviews,
			"pendingSubmissions": pendingSubmissions,
			"pendingUpdates":     pendingUpdates,
			"placesByCategory":   byCategory,
			"placesByCity":       byCity,
		},
	})
}
