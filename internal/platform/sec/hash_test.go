// Copyright (c) 2026 VidTube. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshwar777/vidtube/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies hashing and verification of a password.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("p1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// A bcrypt hash never equals the plain text.
	assert.NotEqual(t, "p1", hash)

	assert.True(t, sec.CheckPasswordHash("p1", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

/*
TestHashPassword_UniqueSalts verifies that hashing the same password twice
yields different hashes.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("secret")
	require.NoError(t, err)

	second, err := sec.HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("secret", first))
	assert.True(t, sec.CheckPasswordHash("secret", second))
}
