package images

// Image is the single media reference owned by a post. The ref string is
// opaque to us - it points into whatever blob store the uploader used.
type Image struct {
	ID       int64  `json:"id" db:"id"`
	ImageRef string `json:"imageRef" db:"image_ref"`
	PostID   int64  `json:"postId" db:"post_id"`
}

// CreateImageRequest represents the input for attaching an image to a post
type CreateImageRequest struct {
	ImageRef string `json:"imageRef"`
	PostID   int64  `json:"postId"`
}

// UpdateImageRequest carries the fields an update may change.
// Nil fields are left untouched; PostID is immutable after creation.
type UpdateImageRequest struct {
	ImageRef *string `json:"imageRef,omitempty"`
}
