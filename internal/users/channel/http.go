// Copyright (c) 2026 VidTube. All rights reserved.

// HTTP delivery layer for the aggregation views.

package channel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lokeshwar777/vidtube/internal/platform/middleware"
	requestutil "github.com/lokeshwar777/vidtube/internal/platform/request"
	"github.com/lokeshwar777/vidtube/internal/platform/respond"
)

// Handler implements channel-related HTTP endpoints.
type Handler struct {
	channelService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{channelService: service}
}

// Routes returns a [chi.Router] configured with the channel routes.
//
// # Endpoints
//   - GET /me/history : Watch history (authenticated).
//   - GET /{username} : Public channel profile (anonymous allowed).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me/history", handler.watchHistory)
	})

	router.Get("/{username}", handler.profile)

	return router
}

/*
Profile returns the public channel profile for a username.

GET /api/v1/channels/{username}

Description: Anonymous requests are served with IsSubscribed always false;
authenticated requests compute it relative to the caller.

Response:
  - 200: ChannelProfile
  - 400: Blank username
  - 404: No such channel
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	channelUsername := requestutil.Param(request, "username")

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	profile, err := handler.channelService.Profile(request.Context(), channelUsername, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile, "Channel profile fetched successfully")
}

/*
WatchHistory returns the authenticated user's watch history.

GET /api/v1/channels/me/history

Response:
  - 200: []WatchedVideo in watch order (empty slice when none)
  - 401: Authentication required
*/
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	history, err := handler.channelService.WatchHistory(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, history, "Watch history fetched successfully")
}
