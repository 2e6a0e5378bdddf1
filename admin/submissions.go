package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/models"
	"cityguide/rdx"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewDecision struct {
	Action     string `json:"action"`
	AdminNotes string `json:"adminNotes"`
}

func (d reviewDecision) status() (string, bool) {
	switch d.Action {
	case "approve":
		return models.StatusApproved, true
	case "reject":
		return models.StatusRejected, true
	default:
		return "", false
	}
}

// GET /api/admin/submissions?status=
func GetSubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	subs, err := utils.FindAndDecode[models.PlaceSubmission](r.Context(), db.SubmissionsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch submissions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":     true,
		"submissions": subs,
	})
}

// PUT /api/admin/submissions/:submissionid
// Approval turns the submission into a live place owned by the
// submitter, starting with no reviews.
func ReviewSubmission(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID, _ := r.Context().Value(globals.UserIDKey).(string)
	submissionID := ps.ByName("submissionid")

	var decision reviewDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	status, ok := decision.status()
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Action must be 'approve' or 'reject'")
		return
	}

	var submission models.PlaceSubmission
	err := db.SubmissionsCollection.FindOne(r.Context(), bson.M{"submissionid": submissionID}).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if submission.Status != models.StatusPending {
		utils.RespondWithError(w, http.StatusBadRequest, "Submission has already been reviewed")
		return
	}

	now := time.Now()
	var created *models.Place
	if status == models.StatusApproved {
		place := models.Place{
			PlaceID:       "p" + utils.GenerateRandomString(12),
			Name:          submission.Name,
			Category:      submission.Category,
			City:          submission.City,
			Description:   submission.Description,
			Address:       submission.Address,
			ContactNumber: submission.ContactNumber,
			Website:       submission.Website,
			Image:         submission.Image,
			OwnerID:       submission.SubmittedBy,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := db.PlacesCollection.InsertOne(r.Context(), place); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create place")
			return
		}
		created = &place
		rdx.RdxDel("places")
	}

	_, err = db.SubmissionsCollection.UpdateOne(r.Context(),
		bson.M{"submissionid": submissionID},
		bson.M{"$set": bson.M{
			"status":     status,
			"adminNotes": decision.AdminNotes,
			"reviewedBy": adminID,
			"reviewedAt": now,
			"updated_at": now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update submission")
		return
	}

	resp := utils.M{
		"success": true,
		"message": "Submission " + status,
	}
	if created != nil {
		resp["place"] = created
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/admin/updates?status=
func GetUpdates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	updates, err := utils.FindAndDecode[models.PlaceUpdate](r.Context(), db.PlaceUpdatesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch updates")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"updates": updates,
	})
}

// PUT /api/admin/updates/:updateid
// Approval applies the proposed non-empty fields to the place.
func ReviewUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID, _ := r.Context().Value(globals.UserIDKey).(string)
	updateID := ps.ByName("updateid")

	var decision reviewDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	status, ok := decision.status()
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Action must be 'approve' or 'reject'")
		return
	}

	var update models.PlaceUpdate
	err := db.PlaceUpdatesCollection.FindOne(r.Context(), bson.M{"updateid": updateID}).Decode(&update)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Update not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if update.Status != models.StatusPending {
		utils.RespondWithError(w, http.StatusBadRequest, "Update has already been reviewed")
		return
	}

	now := time.Now()
	if status == models.StatusApproved {
		set := bson.M{"updated_at": now}
		f := update.Updates
		if f.Name != "" {
			set["name"] = f.Name
		}
		if f.Category != "" {
			set["category"] = f.Category
		}
		if f.Description != "" {
			set["description"] = f.Description
		}
		if f.Image != "" {
			set["image"] = f.Image
		}
		if f.Address != "" {
			set["address"] = f.Address
		}
		if f.ContactNumber != "" {
			set["contactNumber"] = f.ContactNumber
		}
		if f.Website != "" {
			set["website"] = f.Website
		}
		res, err := db.PlacesCollection.UpdateOne(r.Context(), bson.M{"placeid": update.PlaceID}, bson.M{"$set": set})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to apply update")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Place no longer exists")
			return
		}
		rdx.RdxDel("places")
	}

	_, err = db.PlaceUpdatesCollection.UpdateOne(r.Context(),
		bson.M{"updateid": updateID},
		bson.M{"$set": bson.M{
			"status":     status,
			"adminNotes": decision.AdminNotes,
			"reviewedBy": adminID,
			"reviewedAt": now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update record")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Update " + status,
	})
}
