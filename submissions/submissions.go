package submissions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/models"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Cities the submission form offers. Listing endpoints still derive
// cities from actual data; this only seeds the dropdown.
var submissionCities = []string{
	"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai",
	"Kolkata", "Pune", "Jaipur", "Ahmedabad", "Goa",
}

// POST /api/submissions
func SubmitPlace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var input struct {
		Name          string `json:"name"`
		Category      string `json:"category"`
		City          string `json:"city"`
		Description   string `json:"description"`
		Address       string `json:"address"`
		Image         string `json:"image"`
		ContactNumber string `json:"contactNumber"`
		Website       string `json:"website"`
		NoteForAdmin  string `json:"noteForAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)
	if input.Name == "" || input.Category == "" || input.City == "" || input.Description == "" || input.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide name, category, city, description, and address")
		return
	}

	now := time.Now()
	submission := models.PlaceSubmission{
		SubmissionID:  "s" + utils.GenerateRandomString(12),
		Name:          input.Name,
		Category:      input.Category,
		City:          input.City,
		Description:   input.Description,
		Address:       input.Address,
		Image:         input.Image,
		ContactNumber: input.ContactNumber,
		Website:       input.Website,
		NoteForAdmin:  input.NoteForAdmin,
		SubmittedBy:   userID,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := db.SubmissionsCollection.InsertOne(r.Context(), submission); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit place")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":    true,
		"message":    "Place submitted for review. An admin will approve it shortly.",
		"submission": submission,
	})
}

// GET /api/submissions/my
func MySubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	subs, err := utils.FindAndDecode[models.PlaceSubmission](r.Context(), db.SubmissionsCollection, bson.M{"submittedBy": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch submissions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":     true,
		"submissions": subs,
	})
}

// GET /api/submissions/cities
func GetSubmissionCities(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"cities":  submissionCities,
	})
}
