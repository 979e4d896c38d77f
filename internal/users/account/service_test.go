// Copyright (c) 2026 VidTube. All rights reserved.

package account_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshwar777/vidtube/internal/platform/apperr"
	"github.com/lokeshwar777/vidtube/internal/users/account"
	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

// # Test Doubles

type fakeAccountRepository struct {
	users map[string]*auth.User
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{users: map[string]*auth.User{}}
}

func (repository *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repository *fakeAccountRepository) UpdateProfile(_ context.Context, id, fullName, email string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.FullName = fullName
	user.Email = email
	copied := *user
	return &copied, nil
}

func (repository *fakeAccountRepository) UpdateAvatar(_ context.Context, id, avatarURL string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.AvatarURL = avatarURL
	copied := *user
	return &copied, nil
}

func (repository *fakeAccountRepository) UpdateCoverImage(_ context.Context, id, coverImageURL string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.CoverImageURL = coverImageURL
	copied := *user
	return &copied, nil
}

// fakeGateway uploads succeed unless fail is set.
type fakeGateway struct {
	fail bool
}

func (gateway *fakeGateway) Upload(_ context.Context, localPath string) (string, error) {
	if gateway.fail {
		return "", errors.New("upload failed")
	}
	return "https://cdn.vidtube.test/new-asset.png", nil
}

// fakeInvalidator records each channel whose cached views were dropped.
type fakeInvalidator struct {
	usernames []string
}

func (invalidator *fakeInvalidator) Invalidate(_ context.Context, username string) error {
	invalidator.usernames = append(invalidator.usernames, username)
	return nil
}

// # Harness

func newTestService() (*account.Service, *fakeAccountRepository, *fakeGateway, *fakeInvalidator) {
	repository := newFakeAccountRepository()
	repository.users["user-1"] = &auth.User{
		ID:        "user-1",
		Username:  "lokeshwar777",
		Email:     "lokesh@example.com",
		FullName:  "Lokeshwar",
		AvatarURL: "https://cdn.vidtube.test/old-avatar.png",
	}

	gateway := &fakeGateway{}
	invalidator := &fakeInvalidator{}
	return account.NewService(repository, gateway, invalidator), repository, gateway, invalidator
}

// # Tests

/*
TestCurrentUser verifies the read path.
*/
func TestCurrentUser(t *testing.T) {
	service, _, _, _ := newTestService()

	user, err := service.CurrentUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "lokeshwar777", user.Username)

	_, err = service.CurrentUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestUpdateProfile verifies both fields are replaced.
*/
func TestUpdateProfile(t *testing.T) {
	service, repository, _, _ := newTestService()

	user, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
		FullName: "Lokeshwar Reddy",
		Email:    "reddy@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Lokeshwar Reddy", user.FullName)
	assert.Equal(t, "reddy@example.com", user.Email)
	assert.Equal(t, "Lokeshwar Reddy", repository.users["user-1"].FullName)
}

/*
TestUpdateAvatar verifies the gateway-then-persist order: a failed upload
leaves the stored URL untouched.
*/
func TestUpdateAvatar(t *testing.T) {
	service, repository, gateway, _ := newTestService()

	// 1. Successful upload replaces the URL
	user, err := service.UpdateAvatar(context.Background(), "user-1", "/tmp/new-avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.vidtube.test/new-asset.png", user.AvatarURL)

	// 2. Failed upload aborts before persisting
	gateway.fail = true
	_, err = service.UpdateAvatar(context.Background(), "user-1", "/tmp/another.png")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, "https://cdn.vidtube.test/new-asset.png", repository.users["user-1"].AvatarURL)
}

/*
TestUpdateCoverImage mirrors the avatar flow for the cover field.
*/
func TestUpdateCoverImage(t *testing.T) {
	service, repository, _, _ := newTestService()

	user, err := service.UpdateCoverImage(context.Background(), "user-1", "/tmp/new-cover.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.vidtube.test/new-asset.png", user.CoverImageURL)
	assert.Equal(t, "https://cdn.vidtube.test/new-asset.png", repository.users["user-1"].CoverImageURL)
}

/*
TestUpdates_DropChannelProfileCache verifies that every successful profile or
media update invalidates the channel's cached public views, and that a failed
update leaves the cache alone.
*/
func TestUpdates_DropChannelProfileCache(t *testing.T) {
	service, _, gateway, invalidator := newTestService()

	// 1. Profile edit invalidates by username
	_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
		FullName: "Lokeshwar Reddy",
		Email:    "reddy@example.com",
	})
	require.NoError(t, err)

	// 2. Avatar and cover image updates invalidate too
	_, err = service.UpdateAvatar(context.Background(), "user-1", "/tmp/new-avatar.png")
	require.NoError(t, err)
	_, err = service.UpdateCoverImage(context.Background(), "user-1", "/tmp/new-cover.png")
	require.NoError(t, err)

	assert.Equal(t, []string{"lokeshwar777", "lokeshwar777", "lokeshwar777"}, invalidator.usernames)

	// 3. A failed upload never reaches the cache
	gateway.fail = true
	_, err = service.UpdateAvatar(context.Background(), "user-1", "/tmp/broken.png")
	require.Error(t, err)
	assert.Len(t, invalidator.usernames, 3)
}

/*
TestUpdate_WithoutCache verifies the service tolerates a nil invalidator.
*/
func TestUpdate_WithoutCache(t *testing.T) {
	repository := newFakeAccountRepository()
	repository.users["user-1"] = &auth.User{ID: "user-1", Username: "lokeshwar777"}
	service := account.NewService(repository, &fakeGateway{}, nil)

	_, err := service.UpdateAvatar(context.Background(), "user-1", "/tmp/new-avatar.png")
	require.NoError(t, err)
}
