package domain

import "time"

// Post represents a published blog entry.
type Post struct {
	ID        string
	Title     string
	Tags      []string
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
