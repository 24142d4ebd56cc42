package handler

import (
	"context"
	"net/http"
	"strings"
	"wiser-api/common"
	"wiser-api/config"
	"wiser-api/model"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserIDKey       contextKey = "userID"
	UserEmailKey    contextKey = "userEmail"
	UserRolesKey    contextKey = "userRoles"
	RefreshTokenKey contextKey = "refreshToken"
)

func bearerToken(r *http.Request) (string, *common.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return "", common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
	}
	return headerParts[1], nil
}

func parseClaims(tokenString, secret string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// AuthMiddleware validates the bearer access token and puts the caller's
// identity into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, appErr := bearerToken(r)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		claims, err := parseClaims(tokenString, config.AppConfig.JWT.AccessSecret)
		if err != nil {
			common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err).Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, UserRolesKey, claims.Roles)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RefreshMiddleware validates the bearer token against the refresh secret
// and passes the raw token through so the service can match it against the
// stored hashes.
func RefreshMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, appErr := bearerToken(r)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		claims, err := parseClaims(tokenString, config.AppConfig.JWT.RefreshSecret)
		if err != nil {
			common.NewAppError(http.StatusForbidden, "Access denied", err).Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RefreshTokenKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleMiddleware lets the request through only when the caller holds at
// least one of the allowed roles. It must run after AuthMiddleware.
func RoleMiddleware(next http.Handler, allowed ...model.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roles, ok := r.Context().Value(UserRolesKey).([]string)
		if !ok {
			common.NewAppError(http.StatusForbidden, "Access denied", nil).Send(w)
			return
		}

		for _, role := range allowed {
			if model.HasRole(roles, role) {
				next.ServeHTTP(w, r)
				return
			}
		}

		common.NewAppError(http.StatusForbidden, "Access denied", nil).Send(w)
	})
}
