package posts

import (
	"time"

	"Galleria/internal/core/images"
)

// Post is a published content item. The store assigns ID and CreatedAt on
// creation; both are immutable afterwards and identifiers are never reused.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Caption   string    `json:"caption" db:"caption"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Image is the post's owned media, eager-loaded on every read so
	// callers never observe a published post without it. A post created
	// through the administrative path may lack one until its image row
	// is attached; promotion always produces the pair together.
	Image *images.Image `json:"image,omitempty"`
}

// CreatePostRequest represents the input for creating a post directly
type CreatePostRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// UpdatePostRequest carries the fields an update may change.
// Nil fields keep their stored value.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Caption *string `json:"caption,omitempty"`
}
