package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "interviewxp", "interviewxp-web", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := issuer.Issue("user-123", "Ada", "user")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q", claims.Subject)
	}
	if claims.Name != "Ada" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a", "", "", time.Hour)
	b, _ := NewTokenIssuer("secret-b", "", "", time.Hour)

	raw, err := a.Issue("user-123", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Parse(raw); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", "", "", -time.Minute)
	// ttl <= 0 falls back to the default, so build an expired token by hand
	issuer.ttl = -time.Minute

	raw, err := issuer.Issue("user-123", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.Parse(raw); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestTokenIssuerMismatch(t *testing.T) {
	a, _ := NewTokenIssuer("test-secret", "issuer-a", "", time.Hour)
	b, _ := NewTokenIssuer("test-secret", "issuer-b", "", time.Hour)

	raw, err := a.Issue("user-123", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Parse(raw); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestTokenMissingSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", "", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
