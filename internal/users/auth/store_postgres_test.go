// Copyright (c) 2026 VidTube. All rights reserved.

package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshwar777/vidtube/internal/platform/database/schema"
	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

/*
TestUserColumns_MatchesSchemaRegistry verifies that the shared select list is
derived from the schema registry, in the exact order [auth.ScanUser] scans.
A drift here would silently shuffle scanned fields.
*/
func TestUserColumns_MatchesSchemaRegistry(t *testing.T) {
	expected := strings.Join(schema.UserAccount.Columns(), ", ")
	assert.Equal(t, expected, auth.UserColumns)

	// ScanUser reads exactly these ten destinations, in registry order.
	columns := schema.UserAccount.Columns()
	require.Len(t, columns, 10)
	assert.Equal(t, []string{
		schema.UserAccount.ID,
		schema.UserAccount.Username,
		schema.UserAccount.Email,
		schema.UserAccount.FullName,
		schema.UserAccount.Password,
		schema.UserAccount.AvatarURL,
		schema.UserAccount.CoverImageURL,
		schema.UserAccount.RefreshToken,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.UpdatedAt,
	}, columns)
}
