package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	CustomerID     uuid.UUID
	SalesChannelID uuid.UUID
	JTI            string
}

// AccessTokenClaims represents the typed JWT issued to storefront customers.
type AccessTokenClaims struct {
	CustomerID     uuid.UUID `json:"customer_id"`
	SalesChannelID uuid.UUID `json:"sales_channel_id"`
	jwt.RegisteredClaims
}
