package auth

import (
	"errors"
	"testing"
	"time"

	"cityguide/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(otpLength)
	if len(otp) != otpLength {
		t.Fatalf("len = %d, want %d", len(otp), otpLength)
	}
	for _, c := range otp {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit %q in OTP %q", c, otp)
		}
	}
}

func TestValidateOTPSuccess(t *testing.T) {
	setupRedis(t)

	if err := storeOTP("a@b.com", "123456"); err != nil {
		t.Fatalf("storeOTP: %v", err)
	}
	if err := validateOTP("a@b.com", "123456"); err != nil {
		t.Fatalf("validateOTP: %v", err)
	}

	// A second validation must fail: the code is single-use.
	if err := validateOTP("a@b.com", "123456"); !errors.Is(err, errOTPExpired) {
		t.Errorf("reuse: err = %v, want errOTPExpired", err)
	}
}

func TestValidateOTPWrongCode(t *testing.T) {
	setupRedis(t)

	if err := storeOTP("a@b.com", "123456"); err != nil {
		t.Fatalf("storeOTP: %v", err)
	}
	if err := validateOTP("a@b.com", "654321"); !errors.Is(err, errOTPInvalid) {
		t.Errorf("err = %v, want errOTPInvalid", err)
	}

	// Right code still works after one failure.
	if err := validateOTP("a@b.com", "123456"); err != nil {
		t.Errorf("err after one failure = %v, want nil", err)
	}
}

func TestValidateOTPAttemptLimit(t *testing.T) {
	setupRedis(t)

	if err := storeOTP("a@b.com", "123456"); err != nil {
		t.Fatalf("storeOTP: %v", err)
	}
	for i := 0; i < maxOTPAttempts; i++ {
		if err := validateOTP("a@b.com", "000000"); !errors.Is(err, errOTPInvalid) {
			t.Fatalf("attempt %d: err = %v, want errOTPInvalid", i+1, err)
		}
	}

	// Even the correct code is rejected once the limit is exhausted.
	if err := validateOTP("a@b.com", "123456"); !errors.Is(err, errOTPAttempts) {
		t.Errorf("err = %v, want errOTPAttempts", err)
	}
}

func TestValidateOTPExpiry(t *testing.T) {
	mr := setupRedis(t)

	if err := storeOTP("a@b.com", "123456"); err != nil {
		t.Fatalf("storeOTP: %v", err)
	}
	mr.FastForward(otpTTL + time.Second)

	if err := validateOTP("a@b.com", "123456"); !errors.Is(err, errOTPExpired) {
		t.Errorf("err = %v, want errOTPExpired", err)
	}
}

func TestStoreOTPResetsAttempts(t *testing.T) {
	setupRedis(t)

	if err := storeOTP("a@b.com", "123456"); err != nil {
		t.Fatalf("storeOTP: %v", err)
	}
	for i := 0; i < maxOTPAttempts; i++ {
		validateOTP("a@b.com", "000000")
	}

	// Requesting a fresh OTP clears the exhausted counter.
	if err := storeOTP("a@b.com", "999999"); err != nil {
		t.Fatalf("storeOTP: %v", err)
	}
	if err := validateOTP("a@b.com", "999999"); err != nil {
		t.Errorf("err after reset = %v, want nil", err)
	}
}
