package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/mcp-protocol/authorization"
)

// Anonymous identifies callers without a usable token.
const Anonymous = "anonymous"

// Identity resolves who invoked a tool from the bearer token the MCP auth middleware puts in context.
// Tokens are parsed without verification; the middleware has already validated them.
type Identity struct {
	Fallback string
	Claims   []string
}

// New returns an Identity reading "email" then "sub".
func New() *Identity {
	return &Identity{Fallback: Anonymous, Claims: []string{"email", "sub"}}
}

// Caller returns the first non empty configured claim, or Fallback.
func (i *Identity) Caller(ctx context.Context) string {
	if i == nil {
		return Anonymous
	}
	token := bearer(ctx)
	if token == "" {
		return i.Fallback
	}
	var claims jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return i.Fallback
	}
	for _, name := range i.Claims {
		if v, _ := claims[name].(string); v != "" {
			return v
		}
	}
	return i.Fallback
}

func bearer(ctx context.Context) string {
	switch tv := ctx.Value(authorization.TokenKey).(type) {
	case string:
		return tv
	case *authorization.Token:
		if tv != nil {
			return tv.Token
		}
	}
	return ""
}
