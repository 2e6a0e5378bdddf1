package places

import (
	"encoding/json"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cityguide/db"
	"cityguide/models"
	"cityguide/rdx"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const placesCacheKey = "places"

var sortFields = map[string]bson.D{
	"rating":       {{Key: "rating", Value: -1}, {Key: "totalReviews", Value: -1}},
	"totalReviews": {{Key: "totalReviews", Value: -1}},
	"name":         {{Key: "name", Value: 1}},
	"newest":       {{Key: "created_at", Value: -1}},
}

// GET /api/places?city=&category=&sort=&page=&limit=
// The unfiltered first page is cached in Redis; review and place writers
// drop the key.
func GetPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	filter := bson.M{}
	if city := strings.TrimSpace(q.Get("city")); city != "" {
		filter["city"] = city
	}
	if category := strings.TrimSpace(q.Get("category")); category != "" {
		filter["category"] = category
	}

	sortSpec, ok := sortFields[q.Get("sort")]
	if !ok {
		sortSpec = sortFields["rating"]
	}

	skip, limit := utils.ParsePagination(r, 20, 100)

	cacheable := len(filter) == 0 && skip == 0 && limit == 20 && q.Get("sort") == ""
	if cacheable && rdx.Conn != nil {
		if cached, err := rdx.RdxGet(placesCacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	total, err := db.PlacesCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	opts := options.Find().SetSort(sortSpec).SetSkip(skip).SetLimit(limit)
	places, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	resp := utils.M{
		"success": true,
		"places":  places,
		"total":   total,
		"page":    utils.ParsePage(r),
		"pages":   (total + limit - 1) / limit,
	}

	if cacheable && rdx.Conn != nil {
		if data, err := json.Marshal(resp); err == nil {
			rdx.SetWithExpiry(placesCacheKey, string(data), 10*time.Minute)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/places/search?q=&city=&minRating=
func SearchPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide a search query")
		return
	}

	pattern := regexp.QuoteMeta(query)
	filter := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"category": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}
	if city := strings.TrimSpace(q.Get("city")); city != "" {
		filter["city"] = city
	}
	if minRating, err := strconv.ParseFloat(q.Get("minRating"), 64); err == nil && minRating > 0 {
		filter["rating"] = bson.M{"$gte": minRating}
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	places, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"places":  places,
		"count":   len(places),
	})
}

// GET /api/cities
func GetCities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	raw, err := db.PlacesCollection.Distinct(r.Context(), "city", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cities")
		return
	}

	cities := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			cities = append(cities, s)
		}
	}
	sort.Strings(cities)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"cities":  cities,
	})
}

// GET /api/place/:placeid
func GetPlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var place models.Place
	err := db.PlacesCollection.FindOne(r.Context(), bson.M{"placeid": ps.ByName("placeid")}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch place")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"place":   place,
	})
}
