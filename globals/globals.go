package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var JwtSecret = []byte(envOr("JWT_SECRET", "cityguide_secret_key_2024"))

var Ctx = context.Background()

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
