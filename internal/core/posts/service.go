package posts

import (
	"context"
	"strings"
)

const (
	maxTitleLength   = 300
	maxCaptionLength = 2000
)

type postService struct {
	postRepo Repository
}

// NewPostService creates a new content store service
func NewPostService(postRepo Repository) Service {
	return &postService{postRepo: postRepo}
}

// CreatePost validates the request and persists a new post.
// Validation failures come back as a *ValidationError result.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := validateContent(req.Title, req.Caption); err != nil {
		return nil, err
	}

	post := &Post{
		Title:   strings.TrimSpace(req.Title),
		Caption: strings.TrimSpace(req.Caption),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.postRepo.List(ctx)
}

func (s *postService) CountPosts(ctx context.Context) (int, error) {
	return s.postRepo.Count(ctx)
}

// UpdatePost merges the request onto the stored row, re-validates, and
// persists. Fields the request leaves nil keep their prior values.
func (s *postService) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Caption != nil {
		post.Caption = strings.TrimSpace(*req.Caption)
	}
	if err := validateContent(post.Title, post.Caption); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, id int64) error {
	return s.postRepo.Delete(ctx, id)
}

// validateContent enforces the title/caption rules, collecting every
// failing field so callers can report them all at once
func validateContent(title, caption string) error {
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

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
