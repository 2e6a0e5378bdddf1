package models

import "time"

type User struct {
	UserID          string    `json:"userid" bson:"userid"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email"`
	Password        string    `json:"-" bson:"password"`
	Role            string    `json:"role" bson:"role"`
	IsActive        bool      `json:"isActive" bson:"isActive"`
	IsEmailVerified bool      `json:"isEmailVerified" bson:"isEmailVerified"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin       time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
