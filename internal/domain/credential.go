package domain

import "time"

// Credential is the verified identity carried by a signed token. It is
// never mutated after issuance; a purchase issues a replacement credential
// instead.
type Credential struct {
	SubjectID    string
	Username     string
	HasPurchased bool
	IssuedAt     time.Time
	ExpiresAt    time.Time
}
