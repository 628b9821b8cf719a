package domain

import "time"

// Comment belongs to exactly one post or project and is immutable once
// created; there is no edit path.
type Comment struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Provisional marks a comment whose id was generated locally and is
	// still awaiting the canonical server record.
	Provisional bool `json:"-"`
}
