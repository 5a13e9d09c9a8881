package service

import (
	"testing"

	"gamehub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newUserServiceForTest(userRepo *MockUserRepository) (UserService, *MockGameCache) {
	mockCache := new(MockGameCache)
	return NewUserService(userRepo, mockCache), mockCache
}

func TestListUsers(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	users := []models.User{
		{ID: 1, Login: "admin", Role: models.RoleAdmin, Status: models.UserActive},
		{ID: 2, Login: "bob", Role: models.RoleUser, Status: models.UserBlocked},
	}
	mockUserRepo.On("List").Return(users, nil)

	got, err := svc.ListUsers()

	assert.NoError(t, err)
	assert.Equal(t, users, got)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateUserStatus_Block(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	mockUserRepo.On("UpdateStatus", int64(2), models.UserBlocked).Return(int64(1), nil)

	err := svc.UpdateStatus(2, models.UserBlocked)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateUserStatus_Invalid(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	err := svc.UpdateStatus(2, "suspended")

	assert.Equal(t, ErrInvalidUserStatus, err)
	mockUserRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestUpdateUserStatus_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	mockUserRepo.On("UpdateStatus", int64(99), models.UserActive).Return(int64(0), nil)

	err := svc.UpdateStatus(99, models.UserActive)

	assert.Equal(t, ErrUserNotFound, err)
	mockUserRepo.AssertExpectations(t)
}

func TestGetProfile_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	user := &models.User{ID: 2, Login: "bob", Status: models.UserActive}
	mockUserRepo.On("FindByID", int64(2)).Return(user, nil)

	profile, err := svc.GetProfile(2)

	assert.NoError(t, err)
	assert.Equal(t, "bob", profile.Login)
	assert.Equal(t, models.UserActive, profile.Status)
	mockUserRepo.AssertExpectations(t)
}

func TestGetProfile_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	mockUserRepo.On("FindByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	profile, err := svc.GetProfile(99)

	assert.Equal(t, ErrUserNotFound, err)
	assert.Nil(t, profile)
}

func TestDeleteUser_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, mockCache := newUserServiceForTest(mockUserRepo)

	mockUserRepo.On("Delete", int64(2)).Return(int64(1), nil, nil)

	err := svc.DeleteUser(2)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestDeleteUser_InvalidatesReviewedGames(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, mockCache := newUserServiceForTest(mockUserRepo)

	// Deleting a user cascades their reviews away, so the cached details
	// of every game they had an approved review on are stale.
	mockUserRepo.On("Delete", int64(2)).Return(int64(1), []int64{2, 3}, nil)
	mockCache.On("Invalidate", mock.Anything, int64(2))
	mockCache.On("Invalidate", mock.Anything, int64(3))

	err := svc.DeleteUser(2)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newUserServiceForTest(mockUserRepo)

	mockUserRepo.On("Delete", int64(99)).Return(int64(0), nil, nil)

	err := svc.DeleteUser(99)

	assert.Equal(t, ErrUserNotFound, err)
}
