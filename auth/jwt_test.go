package auth

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	pair, err := IssueTokenPair(42, "margaux", true)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	claims, err := ParseToken(pair.Access)
	if err != nil {
		t.Fatalf("ParseToken(access): %v", err)
	}
	if claims.UserID != 42 || claims.Username != "margaux" || !claims.IsStaff {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected a jti on the access token")
	}

	refreshClaims, err := ParseToken(pair.Refresh)
	if err != nil {
		t.Fatalf("ParseToken(refresh): %v", err)
	}
	if refreshClaims.TokenType != TokenTypeRefresh {
		t.Errorf("expected refresh token type, got %q", refreshClaims.TokenType)
	}
	if refreshClaims.ID == claims.ID {
		t.Error("access and refresh tokens must not share a jti")
	}
}

func TestParseTokenOfTypeRejectsWrongKind(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	pair, err := IssueTokenPair(7, "sam", false)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	if _, err := ParseTokenOfType(pair.Refresh, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token, err = %v", err)
	}
	if _, err := ParseTokenOfType(pair.Access, TokenTypeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh token, err = %v", err)
	}
}

func TestParseTokenRejectsGarbageAndWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	if _, err := ParseToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}

	pair, err := IssueTokenPair(7, "sam", false)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	if _, err := ParseToken(pair.Access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken under a different key, got %v", err)
	}
}
