package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestTokenService_IssueVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenService("test-secret", 0, WithClock(clock.Now))

	token, err := svc.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if id.UserID != "user-1" {
		t.Errorf("Verify() userID = %v, want %v", id.UserID, "user-1")
	}
	if id.Email != "a@x.com" {
		t.Errorf("Verify() email = %v, want %v", id.Email, "a@x.com")
	}
	if want := clock.t.Add(7 * 24 * time.Hour); !id.ExpiresAt.Equal(want) {
		t.Errorf("Verify() expiresAt = %v, want %v", id.ExpiresAt, want)
	}
	if !id.IssuedAt.Equal(clock.t) {
		t.Errorf("Verify() issuedAt = %v, want %v", id.IssuedAt, clock.t)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := NewTokenService("test-secret", DefaultTokenTTL, WithClock(clock.Now))

	token, err := svc.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{name: "just issued", at: start, wantErr: false},
		{name: "one second before expiry", at: start.Add(DefaultTokenTTL - time.Second), wantErr: false},
		{name: "exactly at expiry", at: start.Add(DefaultTokenTTL), wantErr: true},
		{name: "after expiry", at: start.Add(DefaultTokenTTL + time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = tt.at
			_, err := svc.Verify(token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("Verify() error = %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestTokenService_RejectsTampering(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		altered := token[:i] + string(replacement) + token[i+1:]
		if _, err := svc.Verify(altered); err == nil {
			t.Fatalf("Verify() accepted token altered at index %d", i)
		}
	}
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 300)} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "empty", header: "", wantOK: false},
		{name: "missing token", header: "Bearer ", wantOK: false},
		{name: "scheme only", header: "Bearer", wantOK: false},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantOK: false},
		{name: "lowercase scheme", header: "bearer abc", wantOK: false},
		{name: "extra parts", header: "Bearer abc def", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearer(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("ExtractBearer() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractBearer() = %q, want %q", got, tt.want)
			}
		})
	}
}
