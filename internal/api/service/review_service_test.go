package service

import (
	"errors"
	"testing"

	"gamehub/internal/api/models"
	"gamehub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) UpdateStatus(reviewID int64, status string) (int64, error) {
	args := m.Called(reviewID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) Delete(reviewID int64) (int64, error) {
	args := m.Called(reviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	args := m.Called(reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByUserAndGame(userID, gameID int64) (*models.Review, error) {
	args := m.Called(userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListPending() ([]models.PendingReview, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingReview), args.Error(1)
}

func (m *MockReviewRepository) ListApprovedByGame(gameID int64) ([]models.GameReview, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameReview), args.Error(1)
}

func newReviewServiceForTest(reviewRepo *MockReviewRepository, gameRepo *MockGameRepository) (ReviewService, *MockGameCache) {
	mockCache := new(MockGameCache)
	return NewReviewService(reviewRepo, gameRepo, mockCache), mockCache
}

func TestSubmit_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockGameRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.GameRow{ID: 2, Name: "Half-Life"}, nil)
	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(nil, gorm.ErrRecordNotFound)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil)

	review, err := svc.Submit(1, 2, 9, "great game")

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, models.StatusPending, review.Status)
	assert.Equal(t, 9, review.Rank)
	mockReviewRepo.AssertExpectations(t)
	mockGameRepo.AssertExpectations(t)
}

func TestSubmit_RankOutOfRange(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	for _, rank := range []int{0, 11, -3} {
		review, err := svc.Submit(1, 2, rank, "text")
		assert.Equal(t, ErrRankOutOfRange, err)
		assert.Nil(t, review)
	}
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_GameNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockGameRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	review, err := svc.Submit(1, 99, 8, "text")

	assert.Equal(t, ErrGameNotFound, err)
	assert.Nil(t, review)
	mockGameRepo.AssertExpectations(t)
}

func TestSubmit_AlreadyReviewed(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockGameRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.GameRow{ID: 2}, nil)
	existing := &models.Review{ID: 5, UserID: 1, GameID: 2, Rank: 7, Status: models.StatusApproved}
	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(existing, nil)

	review, err := svc.Submit(1, 2, 9, "text")

	assert.Equal(t, ErrReviewExists, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_ConcurrentDuplicate(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	// The pre-check misses but the (user_id, game_id) unique index rejects
	// the concurrent insert.
	mockGameRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.GameRow{ID: 2}, nil)
	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(nil, gorm.ErrRecordNotFound)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(repository.ErrDuplicateReview)

	review, err := svc.Submit(1, 2, 9, "text")

	assert.Equal(t, ErrReviewExists, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertExpectations(t)
}

func TestUpdateOwn_ResetsToPending(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, mockCache := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	existing := &models.Review{ID: 5, UserID: 1, GameID: 2, Rank: 7, ReviewText: "old", Status: models.StatusApproved}
	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(existing, nil)
	mockReviewRepo.On("Update", mock.MatchedBy(func(r *models.Review) bool {
		return r.Status == models.StatusPending && r.Rank == 3 && r.ReviewText == "old"
	})).Return(nil)
	mockCache.On("Invalidate", mock.Anything, int64(2))

	rank := 3
	review, err := svc.UpdateOwn(1, 2, &rank, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, review.Status)
	assert.Equal(t, 3, review.Rank)
	assert.Equal(t, "old", review.ReviewText)
	mockReviewRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestUpdateOwn_NothingToUpdate(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	review, err := svc.UpdateOwn(1, 2, nil, nil)

	assert.Equal(t, ErrNothingToUpdate, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateOwn_NotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(nil, gorm.ErrRecordNotFound)

	text := "new text"
	review, err := svc.UpdateOwn(1, 2, nil, &text)

	assert.Equal(t, ErrReviewNotFound, err)
	assert.Nil(t, review)
	mockReviewRepo.AssertExpectations(t)
}

func TestSetStatus_Approve(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, mockCache := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByID", int64(5)).Return(&models.Review{ID: 5, GameID: 2, Status: models.StatusPending}, nil)
	mockReviewRepo.On("UpdateStatus", int64(5), models.StatusApproved).Return(int64(1), nil)
	mockCache.On("Invalidate", mock.Anything, int64(2))

	changed, err := svc.SetStatus(5, models.StatusApproved)

	assert.NoError(t, err)
	assert.True(t, changed)
	mockReviewRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestSetStatus_AlreadyInState(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, mockCache := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByID", int64(5)).Return(&models.Review{ID: 5, GameID: 2, Status: models.StatusApproved}, nil)
	mockReviewRepo.On("UpdateStatus", int64(5), models.StatusApproved).Return(int64(0), nil)

	changed, err := svc.SetStatus(5, models.StatusApproved)

	assert.NoError(t, err)
	assert.False(t, changed)
	mockReviewRepo.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	changed, err := svc.SetStatus(5, "published")

	assert.Equal(t, ErrInvalidReviewStatus, err)
	assert.False(t, changed)
	mockReviewRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestSetStatus_NotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	changed, err := svc.SetStatus(99, models.StatusRejected)

	assert.Equal(t, ErrReviewNotFound, err)
	assert.False(t, changed)
	mockReviewRepo.AssertExpectations(t)
}

func TestRemove_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, mockCache := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByID", int64(5)).Return(&models.Review{ID: 5, GameID: 2}, nil)
	mockReviewRepo.On("Delete", int64(5)).Return(int64(1), nil)
	mockCache.On("Invalidate", mock.Anything, int64(2))

	err := svc.Remove(5)

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestRemove_NotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Remove(99)

	assert.Equal(t, ErrReviewNotFound, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestGetOwn_Found(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	existing := &models.Review{ID: 5, UserID: 1, GameID: 2, Rank: 7}
	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(existing, nil)

	review, err := svc.GetOwn(1, 2)

	assert.NoError(t, err)
	assert.Equal(t, existing, review)
}

func TestGetOwn_NotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(nil, gorm.ErrRecordNotFound)

	review, err := svc.GetOwn(1, 2)

	assert.Equal(t, ErrReviewNotFound, err)
	assert.Nil(t, review)
}

func TestGetOwn_RepoError(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockGameRepo := new(MockGameRepository)
	svc, _ := newReviewServiceForTest(mockReviewRepo, mockGameRepo)

	mockReviewRepo.On("GetByUserAndGame", int64(1), int64(2)).Return(nil, errors.New("connection reset"))

	review, err := svc.GetOwn(1, 2)

	assert.Error(t, err)
	assert.NotEqual(t, ErrReviewNotFound, err)
	assert.Nil(t, review)
}
