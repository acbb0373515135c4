package models

import "github.com/golang-jwt/jwt/v5"

// TenantClaims is the verified identity attached to every request. The
// tenant ID is the sole scoping key for all entities; the core trusts it
// completely and performs no credential checks of its own. The claim key
// matches what the external credential service signs: { userId, email }.
type TenantClaims struct {
	TenantID string `json:"userId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
