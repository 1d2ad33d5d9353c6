package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for credential-issuing endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PurchaseStatusResponse is the check-purchase view. It degrades to the
// zero value on any credential problem instead of erroring.
type PurchaseStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	HasPurchased  bool   `json:"hasPurchased"`
	Username      string `json:"username,omitempty"`
}
