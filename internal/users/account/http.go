// Copyright (c) 2026 VidTube. All rights reserved.

// HTTP delivery layer for the authenticated user's profile.

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lokeshwar777/vidtube/internal/media"
	"github.com/lokeshwar777/vidtube/internal/platform/apperr"
	"github.com/lokeshwar777/vidtube/internal/platform/constants"
	"github.com/lokeshwar777/vidtube/internal/platform/middleware"
	requestutil "github.com/lokeshwar777/vidtube/internal/platform/request"
	"github.com/lokeshwar777/vidtube/internal/platform/respond"
	"github.com/lokeshwar777/vidtube/internal/platform/validate"
	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

// Handler implements profile-related HTTP endpoints.
type Handler struct {
	accountService *Service
	tempDir        string
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, tempDir string) *Handler {
	return &Handler{accountService: service, tempDir: tempDir}
}

// Routes returns a [chi.Router] with the profile routes. Every endpoint
// requires an authenticated session.
//
// # Endpoints
//   - GET   /me             : Current account.
//   - PATCH /me             : Update full name and email.
//   - PATCH /me/avatar      : Replace the avatar image.
//   - PATCH /me/cover-image : Replace the cover image.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.currentUser)
		r.Patch("/me", handler.updateProfile)
		r.Patch("/me/avatar", handler.updateAvatar)
		r.Patch("/me/cover-image", handler.updateCoverImage)
	})

	return router
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

/*
CurrentUser returns the authenticated user's account.

GET /api/v1/users/me

Response:
  - 200: User: Sanitized current account
  - 401: Authentication required
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CurrentUser(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Current user fetched successfully")
}

/*
UpdateProfile replaces the account's full name and email.

PATCH /api/v1/users/me

Request:
  - Body: updateProfileRequest (both fields required)

Response:
  - 200: User: Refreshed account
  - 400: Either field missing
  - 409: Email already in use
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldFullName, input.FullName).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateProfileInput{
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Account details updated successfully")
}

/*
UpdateAvatar replaces the avatar image.

PATCH /api/v1/users/me/avatar

Request:
  - Multipart form: avatar (single file, required)

Response:
  - 200: User: Refreshed account
  - 400: Missing file or failed upload
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.updateMedia(writer, request, auth.FieldAvatar, handler.accountService.UpdateAvatar, "Avatar updated successfully")
}

/*
UpdateCoverImage replaces the cover image.

PATCH /api/v1/users/me/cover-image

Request:
  - Multipart form: coverImage (single file, required)

Response:
  - 200: User: Refreshed account
  - 400: Missing file or failed upload
*/
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.updateMedia(writer, request, auth.FieldCoverImage, handler.accountService.UpdateCoverImage, "Cover image updated successfully")
}

// updateMedia stages a single multipart file and hands it to the given update
// func. Both media endpoints differ only in field name and service call.
func (handler *Handler) updateMedia(
	writer http.ResponseWriter,
	request *http.Request,
	field string,
	update func(ctx context.Context, userID, localPath string) (*auth.User, error),
	message string,
) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form data"))
		return
	}

	file, header, err := requestutil.FormFile(request, field)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if file == nil {
		respond.Error(writer, request, validate.RequiredError(field, "File is required"))
		return
	}
	defer func() { _ = file.Close() }()

	localPath, err := media.SaveTemp(file, header, handler.tempDir)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("File could not be processed"))
		return
	}
	defer media.Discard(localPath)

	user, err := update(request.Context(), claims.UserID, localPath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, message)
}
