// Copyright (c) 2026 VidTube. All rights reserved.

package media_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshwar777/vidtube/internal/media"
)

// stageMultipartFile builds a real multipart request and opens the named
// file from it, mirroring what handlers receive.
func stageMultipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest("POST", "/", body)
	request.Header.Set("Content-Type", form.FormDataContentType())

	file, header, err := request.FormFile("avatar")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	return file, header
}

/*
TestSaveTemp_StagesFile verifies content, location, and extension of the
staged temp file.
*/
func TestSaveTemp_StagesFile(t *testing.T) {
	dir := t.TempDir()
	file, header := stageMultipartFile(t, "avatar.png", []byte("png-bytes"))

	path, err := media.SaveTemp(file, header, dir)
	require.NoError(t, err)

	// 1. The file landed in the requested directory with its extension intact
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".png", filepath.Ext(path))

	// 2. Content survived the copy
	staged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), staged)
}

/*
TestDiscard_RemovesStagedFiles verifies cleanup of staged files, tolerance of
already-removed paths, and the empty-path no-op.
*/
func TestDiscard_RemovesStagedFiles(t *testing.T) {
	dir := t.TempDir()
	file, header := stageMultipartFile(t, "avatar.png", []byte("png-bytes"))

	path, err := media.SaveTemp(file, header, dir)
	require.NoError(t, err)

	// 1. First discard removes the file
	media.Discard(path, "")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// 2. Discarding again is a silent no-op
	media.Discard(path)
}
