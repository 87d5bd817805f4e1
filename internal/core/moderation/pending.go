package moderation

import "time"

// Status is the review state of a pending post.
// Pending is the only non-terminal state; published and rejected rows
// are retained as review history and never transition again.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusRejected
}

// PendingPost is a submitted-but-unreviewed candidate. It carries its own
// copy of the content; nothing links it to the posts table until a
// reviewer publishes it, at which point a fresh Post+Image pair is
// created and this row becomes terminal history.
type PendingPost struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Caption   string    `json:"caption" db:"caption"`
	ImageRef  string    `json:"imageRef" db:"image_ref"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SubmitRequest represents a new submission entering the queue
type SubmitRequest struct {
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	ImageRef string `json:"imageRef"`
}

// UpdatePendingRequest carries the content fields a reviewer may amend
// before deciding. Status is not here on purpose - it only moves through
// Publish and Reject.
type UpdatePendingRequest struct {
	Title    *string `json:"title,omitempty"`
	Caption  *string `json:"caption,omitempty"`
	ImageRef *string `json:"imageRef,omitempty"`
}
