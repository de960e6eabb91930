package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/mcp-protocol/authorization"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	return token
}

func Test_Caller(t *testing.T) {
	id := New()
	if got := id.Caller(context.Background()); got != Anonymous {
		t.Fatalf("expected anonymous without token, got %q", got)
	}

	ctx := context.WithValue(context.Background(), authorization.TokenKey, &authorization.Token{Token: signed(t, jwt.MapClaims{"email": "dev@viantinc.com", "sub": "42"})})
	if got := id.Caller(ctx); got != "dev@viantinc.com" {
		t.Fatalf("expected email claim, got %q", got)
	}

	ctx = context.WithValue(context.Background(), authorization.TokenKey, signed(t, jwt.MapClaims{"sub": "42"}))
	if got := id.Caller(ctx); got != "42" {
		t.Fatalf("expected sub claim, got %q", got)
	}

	ctx = context.WithValue(context.Background(), authorization.TokenKey, "not-a-jwt")
	if got := id.Caller(ctx); got != Anonymous {
		t.Fatalf("expected anonymous for malformed token, got %q", got)
	}
}
