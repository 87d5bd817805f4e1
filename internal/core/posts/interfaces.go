package posts

import "context"

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post row and fills in ID and CreatedAt
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post with its image eager-loaded
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List returns all live posts, images attached, ordered by identifier
	List(ctx context.Context) ([]*Post, error)

	// Count returns the number of live post rows
	Count(ctx context.Context) (int, error)

	// Update persists changed title/caption for an existing row
	Update(ctx context.Context, post *Post) error

	// Delete removes a post. The owned image row goes with it; the
	// cascade is a storage-level guarantee, not caller bookkeeping.
	Delete(ctx context.Context, id int64) error

	// RandomID returns the identifier of one post chosen uniformly over
	// all live posts. Count and fetch must share a single consistent
	// snapshot so a concurrent delete can never yield a dangling id.
	// Returns ErrEmptyStore when no posts exist.
	RandomID(ctx context.Context) (int64, error)
}

// Service defines the business logic interface for the content store
type Service interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	CountPosts(ctx context.Context) (int, error)
	UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// RandomSelector guarantees uniform random selection among live posts
type RandomSelector interface {
	// RandomPostID returns one post identifier with probability 1/N over
	// the N posts live at selection time, or ErrEmptyStore when N is zero
	RandomPostID(ctx context.Context) (int64, error)
}
