package images

import "context"

// Repository defines the data access interface for images
type Repository interface {
	// Create inserts a new image row. The referenced post must exist and
	// must not already own an image; the repository maps constraint
	// violations to ErrPostNotFound / ErrPostAlreadyHasImage.
	Create(ctx context.Context, image *Image) error

	// GetByID retrieves an image by its identifier
	GetByID(ctx context.Context, id int64) (*Image, error)

	// GetByPostID retrieves the image owned by a post
	GetByPostID(ctx context.Context, postID int64) (*Image, error)

	// List returns all live images ordered by identifier
	List(ctx context.Context) ([]*Image, error)

	// Count returns the number of live image rows
	Count(ctx context.Context) (int, error)

	// Update persists a changed image row
	Update(ctx context.Context, image *Image) error

	// Delete removes an image row
	Delete(ctx context.Context, id int64) error
}

// Service defines the business logic interface for images
type Service interface {
	CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error)
	GetImage(ctx context.Context, id int64) (*Image, error)
	ListImages(ctx context.Context) ([]*Image, error)
	CountImages(ctx context.Context) (int, error)
	UpdateImage(ctx context.Context, id int64, req UpdateImageRequest) (*Image, error)
	DeleteImage(ctx context.Context, id int64) error
}
