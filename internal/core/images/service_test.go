package images

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repository for testing
type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) Create(ctx context.Context, image *Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *mockImageRepository) GetByID(ctx context.Context, id int64) (*Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Image), args.Error(1)
}

func (m *mockImageRepository) GetByPostID(ctx context.Context, postID int64) (*Image, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Image), args.Error(1)
}

func (m *mockImageRepository) List(ctx context.Context) ([]*Image, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Image), args.Error(1)
}

func (m *mockImageRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockImageRepository) Update(ctx context.Context, image *Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *mockImageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestImageService_CreateImage tests attaching an image to a post
func TestImageService_CreateImage(t *testing.T) {
	mockRepo := new(mockImageRepository)
	service := NewImageService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*images.Image")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Image).ID = 7
		}).
		Return(nil)

	image, err := service.CreateImage(ctx, CreateImageRequest{ImageRef: "z.png", PostID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), image.ID)
	assert.Equal(t, "z.png", image.ImageRef)
	assert.Equal(t, int64(1), image.PostID)

	mockRepo.AssertExpectations(t)
}

// TestImageService_CreateImage_Validation tests field-level rejection
func TestImageService_CreateImage_Validation(t *testing.T) {
	mockRepo := new(mockImageRepository)
	service := NewImageService(mockRepo)
	ctx := context.Background()

	tests := []struct {
		name          string
		req           CreateImageRequest
		expectedField string
	}{
		{
			name:          "missing ref",
			req:           CreateImageRequest{ImageRef: "", PostID: 1},
			expectedField: "imageRef",
		},
		{
			name:          "ref too long",
			req:           CreateImageRequest{ImageRef: strings.Repeat("x", 513), PostID: 1},
			expectedField: "imageRef",
		},
		{
			name:          "missing post id",
			req:           CreateImageRequest{ImageRef: "z.png"},
			expectedField: "postId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateImage(ctx, tt.req)
			require.Error(t, err)
			require.True(t, IsValidationError(err))
			assert.Contains(t, err.(*ValidationError).Fields, tt.expectedField)
		})
	}

	mockRepo.AssertNotCalled(t, "Create")
}

// TestImageService_CreateImage_DeadPost tests that a dangling post_id is
// surfaced as the referential error, not a crash
func TestImageService_CreateImage_DeadPost(t *testing.T) {
	mockRepo := new(mockImageRepository)
	service := NewImageService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*images.Image")).
		Return(ErrPostNotFound)

	_, err := service.CreateImage(ctx, CreateImageRequest{ImageRef: "z.png", PostID: 999})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

// TestImageService_CreateImage_SecondImage tests the 1:1 upper bound
func TestImageService_CreateImage_SecondImage(t *testing.T) {
	mockRepo := new(mockImageRepository)
	service := NewImageService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*images.Image")).
		Return(ErrPostAlreadyHasImage)

	_, err := service.CreateImage(ctx, CreateImageRequest{ImageRef: "z.png", PostID: 1})
	assert.ErrorIs(t, err, ErrPostAlreadyHasImage)
}

// TestImageService_UpdateImage tests ref replacement with re-validation
func TestImageService_UpdateImage(t *testing.T) {
	mockRepo := new(mockImageRepository)
	service := NewImageService(mockRepo)
	ctx := context.Background()

	stored := &Image{ID: 7, ImageRef: "old.png", PostID: 1}
	mockRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*images.Image")).Return(nil)

	newRef := "new.png"
	image, err := service.UpdateImage(ctx, 7, UpdateImageRequest{ImageRef: &newRef})
	require.NoError(t, err)
	assert.Equal(t, "new.png", image.ImageRef)
	assert.Equal(t, int64(1), image.PostID)

	mockRepo.AssertExpectations(t)
}

// TestImageService_DeleteImage_NotFound tests deleting an absent image
func TestImageService_DeleteImage_NotFound(t *testing.T) {
	mockRepo := new(mockImageRepository)
	service := NewImageService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(99)).Return(ErrNotFound)

	assert.ErrorIs(t, service.DeleteImage(ctx, 99), ErrNotFound)
}
