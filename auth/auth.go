package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"cityguide/db"
	"cityguide/globals"
	"cityguide/mailer"
	"cityguide/middleware"
	"cityguide/models"
	"cityguide/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

// Mail is set in main; tests substitute a fake.
var Mail mailer.Client

func generateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		Email:  user.Email,
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func userPayload(user models.User) utils.M {
	return utils.M{
		"id":              user.UserID,
		"name":            user.Name,
		"email":           user.Email,
		"role":            user.Role,
		"isEmailVerified": user.IsEmailVerified,
	}
}

// POST /api/auth/send-otp
// Registers (or refreshes) an unverified account and emails a one-time
// code. Verified accounts cannot be re-registered.
func SendOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if !utils.IsValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}

	var existing models.User
	findErr := db.UserCollection.FindOne(r.Context(), bson.M{"email": input.Email}).Decode(&existing)
	if findErr == nil && existing.IsEmailVerified {
		utils.RespondWithError(w, http.StatusBadRequest, "User already exists with this email")
		return
	}
	if findErr != nil && findErr != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	now := time.Now()
	if findErr == mongo.ErrNoDocuments {
		user := models.User{
			UserID:          "u" + utils.GenerateRandomString(10),
			Name:            input.Name,
			Email:           input.Email,
			Password:        string(hashedPassword),
			Role:            models.RoleUser,
			IsActive:        true,
			IsEmailVerified: false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}
	} else {
		// Unverified re-registration refreshes name and password.
		_, err = db.UserCollection.UpdateOne(r.Context(),
			bson.M{"email": input.Email},
			bson.M{"$set": bson.M{"name": input.Name, "password": string(hashedPassword), "updated_at": now}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	otp := GenerateOTP(otpLength)
	if err := storeOTP(input.Email, otp); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := Mail.SendOTP(input.Email, input.Name, otp); err != nil {
		log.Printf("OTP email to %s failed: %v", input.Email, err)
		// Drop the unverified account so the address can retry cleanly.
		db.UserCollection.DeleteOne(r.Context(), bson.M{"email": input.Email, "isEmailVerified": false})
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP email. Please check your email address and try again.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "OTP sent to your email. Please verify to complete registration.",
		"email":   input.Email,
	})
}

// POST /api/auth/verify-otp
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Email == "" || input.OTP == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide email and OTP")
		return
	}
	if len(input.OTP) != otpLength {
		utils.RespondWithError(w, http.StatusBadRequest, "OTP must be 6 digits")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": input.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if user.IsEmailVerified {
		utils.RespondWithError(w, http.StatusBadRequest, "Email already verified. Please login.")
		return
	}

	switch err := validateOTP(input.Email, input.OTP); {
	case errors.Is(err, errOTPExpired):
		utils.RespondWithError(w, http.StatusBadRequest, "No valid OTP found. Please request a new OTP.")
		return
	case errors.Is(err, errOTPAttempts):
		utils.RespondWithError(w, http.StatusBadRequest, "Too many failed attempts. Please request a new OTP.")
		return
	case errors.Is(err, errOTPInvalid):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid OTP.")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"email": input.Email},
		bson.M{"$set": bson.M{"isEmailVerified": true, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify user")
		return
	}
	user.IsEmailVerified = true

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Email verified successfully!",
		"token":   token,
		"user":    userPayload(user),
	})
}

// POST /api/auth/resend-otp
func ResendOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide email")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": input.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if user.IsEmailVerified {
		utils.RespondWithError(w, http.StatusBadRequest, "Email already verified. Please login.")
		return
	}

	otp := GenerateOTP(otpLength)
	if err := storeOTP(input.Email, otp); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := Mail.SendOTP(input.Email, user.Name, otp); err != nil {
		log.Printf("OTP email to %s failed: %v", input.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP email. Please try again.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "New OTP sent to your email",
	})
}

// POST /api/auth/register — direct registration without email
// verification, kept for backward compatibility.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "User already exists with this email")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:          "u" + utils.GenerateRandomString(10),
		Name:            input.Name,
		Email:           input.Email,
		Password:        string(hashedPassword),
		Role:            models.RoleUser,
		IsActive:        true,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Registration successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	// Seeded admins skip email verification.
	if user.Role != models.RoleAdmin && !user.IsEmailVerified {
		utils.RespondWithError(w, http.StatusForbidden, "Please verify your email first. Check your inbox for the OTP.")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// GET /api/auth/me
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"user":    userPayload(user),
	})
}
