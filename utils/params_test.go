package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "/api/places", 0, 20},
		{"page two", "/api/places?page=2&limit=10", 10, 10},
		{"clamped limit", "/api/places?limit=5000", 0, 100},
		{"garbage values", "/api/places?page=abc&limit=-3", 0, 20},
		{"zero page", "/api/places?page=0", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			skip, limit := ParsePagination(r, 20, 100)
			if skip != tt.wantSkip || limit != tt.wantLimit {
				t.Errorf("got skip=%d limit=%d, want skip=%d limit=%d", skip, limit, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("len = %d, want 16", len(s))
	}
	if s == GenerateRandomString(16) {
		t.Error("two generated strings are identical")
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(6)
	if len(s) != 6 {
		t.Fatalf("len = %d, want 6", len(s))
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit %q in %q", c, s)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name+tag@sub.example.co.in"}
	invalid := []string{"", "plainaddress", "@no-local.com", "user@", "a b@c.com"}

	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("%q rejected", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("%q accepted", e)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":        "photo.jpg",
		"../../etc/passwd": "passwd",
		"my file (1).png":  "my_file__1_.png",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
