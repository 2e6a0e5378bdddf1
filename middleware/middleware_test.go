package middleware

import (
	"testing"
	"time"

	"cityguide/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signToken(t, &Claims{
		Name:   "Asha",
		Email:  "asha@example.com",
		UserID: "u42",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u42" || claims.Role != "user" || claims.Email != "asha@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "u42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestValidateJWTBadFormat(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Token abc", "garbage"} {
		if _, err := ValidateJWT(header); err == nil {
			t.Errorf("header %q accepted", header)
		}
	}
}

func TestValidateJWTTampered(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "u42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tampered := token[:len(token)-2] + "xx"

	if _, err := ValidateJWT("Bearer " + tampered); err == nil {
		t.Error("tampered token accepted")
	}
}
