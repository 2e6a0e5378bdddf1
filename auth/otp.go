package auth

import (
	"errors"
	"fmt"
	"time"

	"cityguide/rdx"
	"cityguide/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	otpLength      = 6
	otpTTL         = 10 * time.Minute
	maxOTPAttempts = 3
)

var (
	errOTPExpired  = errors.New("no valid OTP found")
	errOTPInvalid  = errors.New("invalid OTP")
	errOTPAttempts = errors.New("too many failed attempts")
)

func GenerateOTP(length int) string {
	return utils.GenerateRandomDigitString(length)
}

func otpKey(email string) string         { return "otp:" + email }
func otpAttemptsKey(email string) string { return "otpattempts:" + email }

// storeOTP hashes the code and stores it with a 10-minute expiry,
// resetting the attempt counter. Only the hash ever reaches Redis.
func storeOTP(email, otp string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := rdx.SetWithExpiry(otpKey(email), string(hashed), otpTTL); err != nil {
		return err
	}
	return rdx.RdxDel(otpAttemptsKey(email))
}

// validateOTP checks a submitted code against the stored hash, enforcing
// the attempt limit. On success both keys are cleaned up.
func validateOTP(email, otp string) error {
	storedHash, err := rdx.RdxGet(otpKey(email))
	if err != nil || storedHash == "" {
		return errOTPExpired
	}

	attempts, err := rdx.RdxIncr(otpAttemptsKey(email), otpTTL)
	if err != nil {
		return fmt.Errorf("checking OTP attempts: %w", err)
	}
	if attempts > maxOTPAttempts {
		return errOTPAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(otp)) != nil {
		return errOTPInvalid
	}

	rdx.RdxDel(otpKey(email))
	rdx.RdxDel(otpAttemptsKey(email))
	return nil
}
