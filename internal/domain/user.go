package domain

import "time"

// User is the authenticated identity the core operates on behalf of.
// Account management itself lives outside this service.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
