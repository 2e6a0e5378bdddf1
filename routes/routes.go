package routes

import (
	"net/http"
	"time"

	"cityguide/admin"
	"cityguide/auth"
	"cityguide/favorites"
	"cityguide/media"
	"cityguide/middleware"
	"cityguide/places"
	"cityguide/ratelim"
	"cityguide/reviews"
	"cityguide/submissions"
	"cityguide/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/send-otp", ratelim.RateLimit(auth.SendOTP))
	router.POST("/api/auth/verify-otp", ratelim.RateLimit(auth.VerifyOTP))
	router.POST("/api/auth/resend-otp", ratelim.RateLimit(auth.ResendOTP))
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
}

func AddPlaceRoutes(router *httprouter.Router) {
	router.GET("/api/places", ratelim.RateLimit(places.GetPlaces))
	router.GET("/api/places/search", ratelim.RateLimit(places.SearchPlaces))
	router.GET("/api/cities", ratelim.RateLimit(places.GetCities))
	router.GET("/api/place/:placeid", places.GetPlace)

	router.GET("/api/my-places", middleware.Authenticate(places.GetMyPlaces))
	router.GET("/api/my-places/updates", middleware.Authenticate(places.GetMyUpdates))
	router.PUT("/api/my-places/:placeid", middleware.Authenticate(places.UpdateMyPlace))
	router.DELETE("/api/my-places/:placeid", middleware.Authenticate(places.DeleteMyPlace))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.GET("/api/place/:placeid/reviews", reviews.GetReviews)
	router.POST("/api/place/:placeid/reviews", ratelim.RateLimit(middleware.Authenticate(reviews.AddReview)))
	router.POST("/api/place/:placeid/reviews/:reviewid/reply", middleware.Authenticate(reviews.ReplyToReview))
}

func AddFavoritesRoutes(router *httprouter.Router) {
	router.GET("/api/favorites", middleware.Authenticate(favorites.GetFavorites))
	router.POST("/api/favorites/:placeid", middleware.Authenticate(favorites.AddFavorite))
	router.DELETE("/api/favorites/:placeid", middleware.Authenticate(favorites.RemoveFavorite))
}

func AddSubmissionRoutes(router *httprouter.Router) {
	router.POST("/api/submissions", ratelim.RateLimit(middleware.Authenticate(submissions.SubmitPlace)))
	router.GET("/api/submissions/my", middleware.Authenticate(submissions.MySubmissions))
	router.GET("/api/submissions/cities", submissions.GetSubmissionCities)
}

func AddMediaRoutes(router *httprouter.Router) {
	router.POST("/api/upload/image", ratelim.RateLimit(middleware.Authenticate(media.UploadImage)))
}

func AddAdminRoutes(router *httprouter.Router) {
	adminOnly := func(h httprouter.Handle) httprouter.Handle {
		return middleware.Authenticate(middleware.RequireAdmin(h))
	}

	router.GET("/api/admin/users", adminOnly(admin.GetUsers))
	router.PUT("/api/admin/users/:userid", adminOnly(admin.UpdateUser))
	router.DELETE("/api/admin/users/:userid", adminOnly(admin.DeleteUser))

	router.GET("/api/admin/submissions", adminOnly(admin.GetSubmissions))
	router.PUT("/api/admin/submissions/:submissionid", adminOnly(admin.ReviewSubmission))

	router.GET("/api/admin/updates", adminOnly(admin.GetUpdates))
	router.PUT("/api/admin/updates/:updateid", adminOnly(admin.ReviewUpdate))

	router.GET("/api/admin/places", adminOnly(admin.GetAdminPlaces))
	router.DELETE("/api/admin/places/:placeid", adminOnly(admin.DeleteAdminPlace))

	router.GET("/api/admin/stats", adminOnly(admin.GetStats))
}

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}
