package models

import "time"

// Session records a token issued at signup or login. A token is only
// accepted while its session row exists and has not expired; logout
// deletes the row, which revokes the token.
type Session struct {
	TokenID   string    `json:"tokenId" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expires_at"`
}
