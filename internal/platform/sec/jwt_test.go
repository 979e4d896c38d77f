// Copyright (c) 2026 VidTube. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshwar777/vidtube/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidtube.test")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Validation verifies constructor guard rails.
*/
func TestNewTokenService_Validation(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
		wantError     bool
	}{
		{"valid_pair", "access", "refresh", false},
		{"empty_access", "", "refresh", true},
		{"empty_refresh", "access", "", true},
		{"identical_secrets", "same", "same", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.accessSecret, tt.refreshSecret, "vidtube.test")

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestTokenService_AccessRoundTrip verifies that a generated access token
verifies and carries the identity claims.
*/
func TestTokenService_AccessRoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-123", "lokeshwar777", "lokesh@example.com", "Lokeshwar", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "lokeshwar777", claims.Username)
	assert.Equal(t, "lokesh@example.com", claims.Email)
	assert.Equal(t, "Lokeshwar", claims.FullName)
	assert.Equal(t, "vidtube.test", claims.Issuer)
}

/*
TestTokenService_RefreshRoundTrip verifies the refresh token only carries
the account ID.
*/
func TestTokenService_RefreshRoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateRefreshToken("user-123", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

/*
TestTokenService_SecretsAreNotInterchangeable verifies that an access token
never verifies as a refresh token and vice versa.
*/
func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	service := newTestTokenService(t)

	accessToken, err := service.GenerateAccessToken("user-123", "lokeshwar777", "lokesh@example.com", "Lokeshwar", time.Minute)
	require.NoError(t, err)

	refreshToken, err := service.GenerateRefreshToken("user-123", time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)
}

/*
TestTokenService_Expiry verifies that an expired token is rejected.
*/
func TestTokenService_Expiry(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-123", "lokeshwar777", "lokesh@example.com", "Lokeshwar", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_TamperedToken verifies signature validation.
*/
func TestTokenService_TamperedToken(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-123", "lokeshwar777", "lokesh@example.com", "Lokeshwar", time.Minute)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = service.VerifyAccessToken(tampered)
	assert.Error(t, err)
}
