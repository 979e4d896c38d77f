// Copyright (c) 2026 VidTube. All rights reserved.

/*
Package media implements the upload gateway for user-submitted image assets.

Handlers stage each multipart file into a local temp file, then hand the path
to the [Gateway], which pushes the bytes to durable object storage and returns
a public URL.

# Resource Contract

A staged temp file is removed on every exit path of the upload attempt,
success or failure. Callers additionally defer [Discard] so that files staged
but never uploaded (e.g. a validation short-circuit) do not leak either.
*/
package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/lokeshwar777/vidtube/internal/platform/constants"
)

// Gateway is the contract for pushing a locally staged file to durable storage.
type Gateway interface {

	/*
		Upload pushes the file at localPath to object storage.

		The local file is deleted before Upload returns, regardless of outcome.

		Parameters:
		  - context: context.Context
		  - localPath: string (staged temp file)

		Returns:
		  - string: Durable public URL of the stored asset
		  - error: Transfer or storage failures
	*/
	Upload(context context.Context, localPath string) (string, error)
}

// SaveTemp stages an uploaded multipart file into a temp file under dir.
//
// dir may be empty, in which case the OS temp directory is used. The caller
// owns the returned path and must arrange its removal (see [Discard]).
func SaveTemp(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if header.Size > constants.MaxUploadSize {
		return "", fmt.Errorf("media: file %q exceeds upload size limit", header.Filename)
	}

	// Keep the original extension so the gateway can infer a content type.
	pattern := "upload-*" + filepath.Ext(header.Filename)
	tempFile, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("media: failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tempFile, file); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
		return "", fmt.Errorf("media: failed to stage upload: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempFile.Name())
		return "", fmt.Errorf("media: failed to flush staged upload: %w", err)
	}

	return tempFile.Name(), nil
}

// Discard removes any staged temp files that still exist.
//
// Meant to be deferred right after staging: paths already consumed by
// [Gateway.Upload] are gone and are silently skipped.
func Discard(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		_ = os.Remove(path)
	}
}
