package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the fixed claim shape embedded in both access and refresh
// tokens. Tokens whose claims do not unmarshal into this shape are rejected.
type AppClaims struct {
	UserID int      `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
