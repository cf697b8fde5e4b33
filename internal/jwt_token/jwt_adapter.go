package jwttoken

import (
	id "notely/pkg/domain"
	"notely/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *AccessTokenClaims) *auth.Claims {
	return &auth.Claims{
		UserID:   id.UserID(claims.UserID),
		TenantID: id.TenantID(claims.TenantID),
		Role:     claims.Role,
	}
}

// JWTServiceAdapter satisfies auth.TokenValidator.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
