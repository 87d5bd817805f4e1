package images

import (
	"context"
	"strings"
)

// maxImageRefLength mirrors the CHECK constraint on images.image_ref
const maxImageRefLength = 512

type imageService struct {
	imageRepo Repository
}

// NewImageService creates a new image service
func NewImageService(imageRepo Repository) Service {
	return &imageService{imageRepo: imageRepo}
}

// CreateImage validates the request and attaches an image to a post.
// Referential checks (post exists, post has no image yet) are enforced
// by the repository so they hold under concurrent writes.
func (s *imageService) CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error) {
	fields := map[string]string{}
	if err := validateImageRef(req.ImageRef); err != "" {
		fields["imageRef"] = err
	}
	if req.PostID <= 0 {
		fields["postId"] = "must be a positive identifier"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	image := &Image{
		ImageRef: strings.TrimSpace(req.ImageRef),
		PostID:   req.PostID,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) GetImage(ctx context.Context, id int64) (*Image, error) {
	return s.imageRepo.GetByID(ctx, id)
}

func (s *imageService) ListImages(ctx context.Context) ([]*Image, error) {
	return s.imageRepo.List(ctx)
}

func (s *imageService) CountImages(ctx context.Context) (int, error) {
	return s.imageRepo.Count(ctx)
}

// UpdateImage merges the request onto the stored row and re-validates
func (s *imageService) UpdateImage(ctx context.Context, id int64, req UpdateImageRequest) (*Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ImageRef != nil {
		if msg := validateImageRef(*req.ImageRef); msg != "" {
			return nil, &ValidationError{Fields: map[string]string{"imageRef": msg}}
		}
		image.ImageRef = strings.TrimSpace(*req.ImageRef)
	}

	if err := s.imageRepo.Update(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) DeleteImage(ctx context.Context, id int64) error {
	return s.imageRepo.Delete(ctx, id)
}

// validateImageRef returns a reason string, empty when valid
func validateImageRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "is required"
	}
	if len(ref) > maxImageRefLength {
		return "must be at most 512 characters"
	}
	return ""
}
