package moderation

import (
	"context"
	"strings"

	"Galleria/internal/core/posts"
)

const (
	maxTitleLength    = 300
	maxCaptionLength  = 2000
	maxImageRefLength = 512
)

type moderationService struct {
	pendingRepo Repository
}

// NewModerationService creates a new moderation queue service
func NewModerationService(pendingRepo Repository) Service {
	return &moderationService{pendingRepo: pendingRepo}
}

// Submit validates a submission and places it in the queue as pending.
// Validation happens up front so reviewers only see well-formed
// candidates and Publish cannot fail on content it accepted earlier.
func (s *moderationService) Submit(ctx context.Context, req SubmitRequest) (*PendingPost, error) {
	if err := validateSubmission(req.Title, req.Caption, req.ImageRef); err != nil {
		return nil, err
	}

	pending := &PendingPost{
		Title:    strings.TrimSpace(req.Title),
		Caption:  strings.TrimSpace(req.Caption),
		ImageRef: strings.TrimSpace(req.ImageRef),
		Status:   StatusPending,
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *moderationService) GetPendingPost(ctx context.Context, id int64) (*PendingPost, error) {
	return s.pendingRepo.GetByID(ctx, id)
}

func (s *moderationService) ListPendingPosts(ctx context.Context) ([]*PendingPost, error) {
	return s.pendingRepo.List(ctx)
}

func (s *moderationService) CountPendingPosts(ctx context.Context) (int, error) {
	return s.pendingRepo.Count(ctx)
}

// UpdatePendingPost merges amended content onto the stored row and
// re-validates. Terminal rows are immutable; the repository enforces
// that under the same lock it uses for transitions.
func (s *moderationService) UpdatePendingPost(ctx context.Context, id int64, req UpdatePendingRequest) (*PendingPost, error) {
	pending, err := s.pendingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pending.Status != StatusPending {
		return nil, &InvalidTransitionError{ID: id, Status: pending.Status}
	}

	if req.Title != nil {
		pending.Title = strings.TrimSpace(*req.Title)
	}
	if req.Caption != nil {
		pending.Caption = strings.TrimSpace(*req.Caption)
	}
	if req.ImageRef != nil {
		pending.ImageRef = strings.TrimSpace(*req.ImageRef)
	}
	if err := validateSubmission(pending.Title, pending.Caption, pending.ImageRef); err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Update(ctx, pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *moderationService) DeletePendingPost(ctx context.Context, id int64) error {
	return s.pendingRepo.Delete(ctx, id)
}

func (s *moderationService) Publish(ctx context.Context, id int64) (*posts.Post, error) {
	return s.pendingRepo.Publish(ctx, id)
}

func (s *moderationService) Reject(ctx context.Context, id int64) error {
	return s.pendingRepo.Reject(ctx, id)
}

func validateSubmission(title, caption, imageRef string) error {
	fields := map[string]string{}

	title = strings.TrimSpace(title)
	if title == "" {
		fields["title"] = "is required"
	} else if len(title) > maxTitleLength {
		fields["title"] = "must be at most 300 characters"
	}

	caption = strings.TrimSpace(caption)
	if caption == "" {
		fields["caption"] = "is required"
	} else if len(caption) > maxCaptionLength {
		fields["caption"] = "must be at most 2000 characters"
	}

	imageRef = strings.TrimSpace(imageRef)
	if imageRef == "" {
		fields["imageRef"] = "is required"
	} else if len(imageRef) > maxImageRefLength {
		fields["imageRef"] = "must be at most 512 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
