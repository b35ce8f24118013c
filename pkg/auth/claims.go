package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// AccessTokenClaims is the typed JWT issued by the identity service. The
// scheduling engine trusts these claims and uses them for audit attribution
// only, never for access decisions.
type AccessTokenClaims struct {
	UserID uuid.UUID        `json:"user_id"`
	Email  string           `json:"email"`
	Role   enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
