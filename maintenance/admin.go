package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cityguide/db"
	"cityguide/models"
	"cityguide/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// CreateAdmin seeds an admin account. Idempotent: if the email is already
// registered, nothing changes and the existing user is returned.
func CreateAdmin(ctx context.Context, name, email, password string) (models.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 6 {
		return models.User{}, false, fmt.Errorf("name, email and a password of at least 6 characters are required")
	}

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false, err
	}

	now := time.Now()
	admin := models.User{
		UserID:          "u" + utils.GenerateRandomString(10),
		Name:            name,
		Email:           email,
		Password:        string(hashed),
		Role:            models.RoleAdmin,
		IsActive:        true,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, admin); err != nil {
		return models.User{}, false, err
	}
	return admin, true, nil
}
