// Copyright (c) 2026 VidTube. All rights reserved.

package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokeshwar777/vidtube/internal/platform/constants"
	"github.com/lokeshwar777/vidtube/internal/platform/middleware"
	"github.com/lokeshwar777/vidtube/internal/platform/sec"
	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

// envelope mirrors the standard response envelope for assertions.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

// newTestRouter wires the auth handler behind the real Authenticate
// middleware and a real HS256 token service.
func newTestRouter(t *testing.T) (chi.Router, *auth.Service, *fakeUserRepository) {
	t.Helper()

	repository := newFakeUserRepository()
	gateway := newFakeGateway()

	tokenService, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidtube.test")
	require.NoError(t, err)

	service := auth.NewService(repository, gateway, tokenService, auth.TokenTTLs{
		Access:  15 * time.Minute,
		Refresh: 240 * time.Hour,
	})
	handler := auth.NewHandler(service, t.TempDir())

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/", handler.Routes())

	return router, service, repository
}

// buildRegisterForm builds a multipart registration payload. Zero-valued
// fields are omitted entirely.
func buildRegisterForm(t *testing.T, fields map[string]string, withAvatar bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	for field, value := range fields {
		require.NoError(t, form.WriteField(field, value))
	}

	if withAvatar {
		part, err := form.CreateFormFile(auth.FieldAvatar, "avatar.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, form.Close())
	return body, form.FormDataContentType()
}

func defaultRegisterFields() map[string]string {
	return map[string]string{
		auth.FieldFullName: "Lokeshwar",
		auth.FieldUsername: "lokeshwar777",
		auth.FieldEmail:    "lokesh@example.com",
		auth.FieldPassword: "p1",
	}
}

/*
TestHTTP_Register_Created verifies the 201 happy path and that credential
fields never leak into the response body.
*/
func TestHTTP_Register_Created(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body, contentType := buildRegisterForm(t, defaultRegisterFields(), true)
	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", contentType)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	env := decodeEnvelope(t, recorder.Body)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.True(t, env.Success)

	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "lokeshwar777", user["username"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "refreshToken")
}

/*
TestHTTP_Register_Validation covers the 400 rejection paths.
*/
func TestHTTP_Register_Validation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(fields map[string]string)
		withAvatar bool
	}{
		{"missing_avatar", func(map[string]string) {}, false},
		{"missing_email", func(fields map[string]string) { delete(fields, auth.FieldEmail) }, true},
		{"invalid_email", func(fields map[string]string) { fields[auth.FieldEmail] = "not-an-email" }, true},
		{"missing_password", func(fields map[string]string) { delete(fields, auth.FieldPassword) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := newTestRouter(t)

			fields := defaultRegisterFields()
			tt.mutate(fields)

			body, contentType := buildRegisterForm(t, fields, tt.withAvatar)
			request := httptest.NewRequest(http.MethodPost, "/register", body)
			request.Header.Set("Content-Type", contentType)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

// registerViaHTTP enrolls the default test user through the HTTP surface.
func registerViaHTTP(t *testing.T, router chi.Router) {
	t.Helper()

	body, contentType := buildRegisterForm(t, defaultRegisterFields(), true)
	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", contentType)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
}

// loginViaHTTP performs a login and returns the response recorder.
func loginViaHTTP(t *testing.T, router chi.Router) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"lokeshwar777","password":"p1"}`))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

/*
TestHTTP_Login_SetsSessionCookies verifies that login returns the token pair
in the body and as hardened cookies.
*/
func TestHTTP_Login_SetsSessionCookies(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	recorder := loginViaHTTP(t, router)

	accessCookie := sessionCookie(t, recorder, constants.AccessTokenCookieName)
	refreshCookie := sessionCookie(t, recorder, constants.RefreshTokenCookieName)

	for _, cookie := range []*http.Cookie{accessCookie, refreshCookie} {
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, constants.SessionCookiePath, cookie.Path)
	}

	env := decodeEnvelope(t, recorder.Body)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, accessCookie.Value, data[auth.FieldAccessToken])
	assert.Equal(t, refreshCookie.Value, data[auth.FieldRefreshToken])
}

/*
TestHTTP_Login_WrongPassword verifies the 401 path.
*/
func TestHTTP_Login_WrongPassword(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	request := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"lokeshwar777","password":"wrong"}`))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	env := decodeEnvelope(t, recorder.Body)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
}

/*
TestHTTP_Logout verifies authentication enforcement and cookie clearing.
*/
func TestHTTP_Logout(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	// 1. Without a session: 401
	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. With a bearer token: 200 and both cookies expired
	login := loginViaHTTP(t, router)
	accessToken := sessionCookie(t, login, constants.AccessTokenCookieName).Value

	request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	request.Header.Set("Authorization", "Bearer "+accessToken)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		cookie := sessionCookie(t, recorder, name)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}

/*
TestHTTP_Refresh_FromCookie verifies the cookie-first token source.
*/
func TestHTTP_Refresh_FromCookie(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	login := loginViaHTTP(t, router)
	refreshCookie := sessionCookie(t, login, constants.RefreshTokenCookieName)

	request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	request.AddCookie(refreshCookie)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	env := decodeEnvelope(t, recorder.Body)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data[auth.FieldAccessToken])
	assert.NotEmpty(t, data[auth.FieldRefreshToken])
}

/*
TestHTTP_Refresh_MissingToken verifies the 401 path when neither cookie nor
body carries a token.
*/
func TestHTTP_Refresh_MissingToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHTTP_ChangePassword verifies the authenticated password change flow end
to end over HTTP.
*/
func TestHTTP_ChangePassword(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	login := loginViaHTTP(t, router)
	accessToken := sessionCookie(t, login, constants.AccessTokenCookieName).Value

	request := httptest.NewRequest(http.MethodPost, "/change-password",
		strings.NewReader(`{"oldPassword":"p1","newPassword":"p2"}`))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+accessToken)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Old credential rejected, new one accepted.
	request = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"lokeshwar777","password":"p1"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"lokeshwar777","password":"p2"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
