package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	GithubID     string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
