package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity assertion carried by every authenticated request.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
