package posts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Galleria/internal/core/images"
)

// Mock repository for testing
type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockPostRepository) List(ctx context.Context) ([]*Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *mockPostRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, post *Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepository) RandomID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// TestPostService_CreatePost tests creating a post with valid content
func TestPostService_CreatePost(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*posts.Post")).
		Run(func(args mock.Arguments) {
			post := args.Get(1).(*Post)
			post.ID = 1
			post.CreatedAt = time.Now()
		}).
		Return(nil)

	post, err := service.CreatePost(ctx, CreatePostRequest{Title: "Cats", Caption: "meow"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, "Cats", post.Title)
	assert.Equal(t, "meow", post.Caption)

	mockRepo.AssertExpectations(t)
}

// TestPostService_CreatePost_Validation tests that validation failures
// come back as results enumerating the failing fields
func TestPostService_CreatePost_Validation(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	tests := []struct {
		name           string
		req            CreatePostRequest
		expectedFields []string
	}{
		{
			name:           "missing title",
			req:            CreatePostRequest{Title: "", Caption: "meow"},
			expectedFields: []string{"title"},
		},
		{
			name:           "missing caption",
			req:            CreatePostRequest{Title: "Cats", Caption: "   "},
			expectedFields: []string{"caption"},
		},
		{
			name:           "both missing",
			req:            CreatePostRequest{},
			expectedFields: []string{"title", "caption"},
		},
		{
			name:           "title too long",
			req:            CreatePostRequest{Title: strings.Repeat("x", 301), Caption: "meow"},
			expectedFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePost(ctx, tt.req)
			require.Error(t, err)
			require.True(t, IsValidationError(err))

			valErr := err.(*ValidationError)
			assert.Len(t, valErr.Fields, len(tt.expectedFields))
			for _, field := range tt.expectedFields {
				assert.Contains(t, valErr.Fields, field)
			}
		})
	}

	// No validation failure ever reaches the repository
	mockRepo.AssertNotCalled(t, "Create")
}

// TestPostService_GetPost_NotFound tests getting a non-existent post
func TestPostService_GetPost_NotFound(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(42)).Return(nil, ErrNotFound)

	_, err := service.GetPost(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
}

// TestPostService_GetPost_EagerImage tests that a retrieved post carries
// its image
func TestPostService_GetPost_EagerImage(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	stored := &Post{
		ID:        1,
		Title:     "Cats",
		Caption:   "meow",
		CreatedAt: time.Now(),
		Image:     &images.Image{ID: 7, ImageRef: "z.png", PostID: 1},
	}
	mockRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)

	post, err := service.GetPost(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, post.Image)
	assert.Equal(t, "z.png", post.Image.ImageRef)
	assert.Equal(t, post.ID, post.Image.PostID)
}

// TestPostService_UpdatePost_Merge tests that nil fields keep their
// stored values while set fields replace them
func TestPostService_UpdatePost_Merge(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	stored := &Post{ID: 1, Title: "Cats", Caption: "meow", CreatedAt: time.Now()}
	mockRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*posts.Post")).Return(nil)

	newTitle := "Dogs"
	post, err := service.UpdatePost(ctx, 1, UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Dogs", post.Title)
	assert.Equal(t, "meow", post.Caption)

	mockRepo.AssertExpectations(t)
}

// TestPostService_UpdatePost_NotFound tests updating a deleted post
func TestPostService_UpdatePost_NotFound(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(9)).Return(nil, ErrNotFound)

	newTitle := "Dogs"
	_, err := service.UpdatePost(ctx, 9, UpdatePostRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestPostService_UpdatePost_Revalidates tests that a merge producing
// invalid content is rejected without touching the store
func TestPostService_UpdatePost_Revalidates(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	stored := &Post{ID: 1, Title: "Cats", Caption: "meow"}
	mockRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)

	empty := ""
	_, err := service.UpdatePost(ctx, 1, UpdatePostRequest{Title: &empty})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	mockRepo.AssertNotCalled(t, "Update")
}

// TestPostService_DeletePost tests delete passthrough and NotFound
func TestPostService_DeletePost(t *testing.T) {
	mockRepo := new(mockPostRepository)
	service := NewPostService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(nil)
	mockRepo.On("Delete", ctx, int64(2)).Return(ErrNotFound)

	assert.NoError(t, service.DeletePost(ctx, 1))
	assert.ErrorIs(t, service.DeletePost(ctx, 2), ErrNotFound)
}
