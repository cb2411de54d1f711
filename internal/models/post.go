package models

import "time"

// Post is a single blog entry. AuthorName is filled on reads that join the
// users table; writes leave it empty.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   int       `json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
	AuthorName string    `json:"authorName,omitempty"`
}
