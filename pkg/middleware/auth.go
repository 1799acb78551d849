package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/pkg/auth"
	"github.com/aurigalabs/storefront/pkg/response"
)

type claimsKey struct{}

// Auth validates the Bearer token and stores the claims in the request
// context for UserIDFromCtx and RoleFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the validated claims stored by Auth.
func ClaimsFromCtx(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user's ObjectID.
// The second return is false when unauthenticated or the ID is malformed.
func UserIDFromCtx(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := ClaimsFromCtx(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	claims, ok := ClaimsFromCtx(r)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
