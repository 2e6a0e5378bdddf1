package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/models"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/users
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, 50, 200)

	total, err := db.UserCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)
	users, err := utils.FindAndDecode[models.User](r.Context(), db.UserCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"users":   users,
		"total":   total,
	})
}

// PUT /api/admin/users/:userid
// Toggles activation or changes the role.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("userid")

	var input struct {
		IsActive *bool   `json:"isActive"`
		Role     *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}
	if input.Role != nil {
		if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		set["role"] = *input.Role
	}
	if len(set) == 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "No changes provided")
		return
	}

	res, err := db.UserCollection.UpdateOne(r.Context(), bson.M{"userid": targetID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "User updated",
	})
}

// DELETE /api/admin/users/:userid
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID, _ := r.Context().Value(globals.UserIDKey).(string)
	targetID := ps.ByName("userid")

	if targetID == adminID {
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	res, err := db.UserCollection.DeleteOne(r.Context(), bson.M{"userid": targetID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	db.SubmissionsCollection.DeleteMany(r.Context(), bson.M{"submittedBy": targetID})
	db.FavoritesCollection.DeleteMany(r.Context(), bson.M{"userid": targetID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "User deleted",
	})
}
