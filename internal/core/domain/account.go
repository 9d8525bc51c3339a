package domain

import "time"

// Account models a login-capable identity managed by the account directory.
// Username is the account's email address.
type Account struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Username       string    `json:"username" bson:"username"`
	CredentialHash string    `json:"-" bson:"credential_hash"`
	Role           string    `json:"role" bson:"role"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
