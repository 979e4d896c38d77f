// Copyright (c) 2026 VidTube. All rights reserved.

/*
HTTP delivery layer for the authentication lifecycle.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: RESTful JSON, plus multipart form data for registration.
  - Security: Handles session cookie injection and clearing.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes,
headers, cookies, JSON).
*/

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lokeshwar777/vidtube/internal/media"
	"github.com/lokeshwar777/vidtube/internal/platform/apperr"
	"github.com/lokeshwar777/vidtube/internal/platform/constants"
	"github.com/lokeshwar777/vidtube/internal/platform/middleware"
	requestutil "github.com/lokeshwar777/vidtube/internal/platform/request"
	"github.com/lokeshwar777/vidtube/internal/platform/respond"
	"github.com/lokeshwar777/vidtube/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the session lifecycle entry
// points (Registration, Login, Logout, Refresh, Password change).
type Handler struct {
	authService *Service
	tempDir     string // Staging directory for multipart uploads; empty means OS default.
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, tempDir string) *Handler {
	return &Handler{authService: service, tempDir: tempDir}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account (multipart).
//   - POST /login           : Authenticates and sets the session cookies.
//   - POST /refresh         : Rotates the refresh token.
//   - POST /logout          : Clears the session (authenticated).
//   - POST /change-password : Replaces the credential (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Parses the multipart payload (avatar required, coverImage
optional), validates input, stages the files locally, and delegates account
creation plus gateway uploads to [Service.Register].

Request:
  - Multipart form: fullName, username, email, password, avatar, coverImage?

Response:
  - 201: User: Created user profile (credential fields excluded)
  - 400: Validation failure or missing avatar
  - 409: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form data"))
		return
	}

	fullName := request.FormValue(FieldFullName)
	usernameValue := request.FormValue(FieldUsername)
	email := request.FormValue(FieldEmail)
	password := request.FormValue(FieldPassword)

	validator := &validate.Validator{}
	validator.Required(FieldFullName, fullName).
		Required(FieldUsername, usernameValue).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	avatarFile, avatarHeader, err := requestutil.FormFile(request, FieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if avatarFile == nil {
		respond.Error(writer, request, validate.RequiredError(FieldAvatar, "Avatar file is required"))
		return
	}
	defer func() { _ = avatarFile.Close() }()

	avatarPath, err := media.SaveTemp(avatarFile, avatarHeader, handler.tempDir)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Avatar file could not be processed"))
		return
	}

	// Cover image is optional; a missing field is not an error.
	coverPath := ""
	coverFile, coverHeader, err := requestutil.FormFile(request, FieldCoverImage)
	if err == nil && coverFile != nil {
		defer func() { _ = coverFile.Close() }()
		if staged, stageErr := media.SaveTemp(coverFile, coverHeader, handler.tempDir); stageErr == nil {
			coverPath = staged
		}
	}

	// Staged files are released on every exit path. Paths already consumed
	// by the gateway are skipped.
	defer media.Discard(avatarPath, coverPath)

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		FullName:       fullName,
		Username:       usernameValue,
		Email:          email,
		Password:       password,
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user, "User registered successfully")
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, mints the access/refresh token pair, sets
both as HttpOnly+Secure cookies, and returns the sanitized user plus both
tokens in the body.

Request:
  - Body: loginRequest (Username and/or Email, Password)

Response:
  - 200: Session: Token pair and sanitized user profile
  - 400: Neither username nor email supplied
  - 404: No matching account
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldUser:         session.User,
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
	}, "User logged in successfully")
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Clears the stored refresh token and expires both session cookies.

Response:
  - 200: Session terminated
  - 401: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)

	respond.OK(writer, nil, "User logged out successfully")
}

/*
Refresh issues a new token pair using a valid refresh token.

POST /api/v1/auth/refresh

Description: Reads the refresh token from the refreshToken cookie, falling
back to a body field of the same name, then rotates the session.

Response:
  - 200: New access and refresh tokens (cookies updated)
  - 401: Missing, invalid, or already-used refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var input refreshRequest
		if err := requestutil.DecodeJSON(request, &input); err == nil {
			refreshToken = input.RefreshToken
		}
	}

	session, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
	}, "Access token refreshed")
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying the new one. The
stored refresh token is cleared as a side effect, so other devices must log
in again.

Request:
  - Body: changePasswordRequest (OldPassword, NewPassword)

Response:
  - 200: Empty payload success envelope
  - 401: Session invalid or old password incorrect
  - 400: Validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		claims.UserID,
		input.OldPassword,
		input.NewPassword,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{}, "Password changed successfully")
}

// # Cookie Wiring

// setSessionCookies injects both session tokens as HttpOnly+Secure cookies.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.AccessTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both session cookies on the client.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.SessionCookiePath,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
