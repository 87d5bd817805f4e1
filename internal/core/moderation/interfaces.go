package moderation

import (
	"context"

	"Galleria/internal/core/posts"
)

// Repository defines the data access interface for pending posts.
// Publish and Reject are repository-level because they are transactions:
// the status check, the new rows, and the status write must commit or
// roll back as one unit against the shared store.
type Repository interface {
	// Create inserts a new pending row with status pending
	Create(ctx context.Context, pending *PendingPost) error

	// GetByID retrieves a pending post by its identifier
	GetByID(ctx context.Context, id int64) (*PendingPost, error)

	// List returns all pending posts ordered by identifier, every
	// status included - terminal rows are review history
	List(ctx context.Context) ([]*PendingPost, error)

	// Count returns the number of pending post rows
	Count(ctx context.Context) (int, error)

	// Update persists amended content fields. Fails with
	// *InvalidTransitionError if the row has left pending.
	Update(ctx context.Context, pending *PendingPost) error

	// Delete removes a pending row
	Delete(ctx context.Context, id int64) error

	// Publish atomically creates a Post and its Image from the pending
	// content and marks the row published. On any failure no post row
	// survives and the status stays pending.
	Publish(ctx context.Context, id int64) (*posts.Post, error)

	// Reject marks a pending row rejected. No other side effect.
	Reject(ctx context.Context, id int64) error
}

// Service defines the business logic interface for the moderation queue
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*PendingPost, error)
	GetPendingPost(ctx context.Context, id int64) (*PendingPost, error)
	ListPendingPosts(ctx context.Context) ([]*PendingPost, error)
	CountPendingPosts(ctx context.Context) (int, error)
	UpdatePendingPost(ctx context.Context, id int64, req UpdatePendingRequest) (*PendingPost, error)
	DeletePendingPost(ctx context.Context, id int64) error

	// Publish promotes a pending submission into live content.
	// Returns the new Post with its Image attached.
	Publish(ctx context.Context, id int64) (*posts.Post, error)

	// Reject declines a pending submission; the row is kept as history
	Reject(ctx context.Context, id int64) error
}
