package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/rockrider-app/backend/internal/entities"
	mm "github.com/rockrider-app/backend/internal/middleware"
	"github.com/rockrider-app/backend/internal/service"
)

var errInvalidRequest = errors.New("invalid request")

func (s server) followingFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feed/following Feed FollowingFeed
	//
	// Return posts of the viewer and everyone they follow, pinned first.
	//
	// ---
	// produces:
	// - application/json
	// security:
	// - bearer: []
	// parameters:
	// - name: page
	//   description: 1-based page number
	//   in: query
	//   required: false
	//   default: 1
	// - name: limit
	//   description: limits count of returned posts
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     description: Feed page
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '401':
	//     description: unauthorized
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: viewer not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	viewer, _ := mm.ViewerID(r.Context())

	page, limit, err := extractPageParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	feed, err := s.s.FollowingFeed(r.Context(), viewer, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "viewer not found")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to build following feed")
		return
	}

	writeOK(w, http.StatusOK, toAPIFeed(feed))
}

func (s server) forYouFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feed/for-you Feed ForYouFeed
	//
	// Return a blend of recent popular, verified-author and diverse recent
	// posts by authors the viewer does not follow. The page is reshuffled on
	// every request.
	//
	// ---
	// produces:
	// - application/json
	// security:
	// - bearer: []
	// parameters:
	// - name: page
	//   in: query
	//   required: false
	//   default: 1
	// - name: limit
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     description: Feed page
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '401':
	//     description: unauthorized
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: viewer not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	viewer, _ := mm.ViewerID(r.Context())

	page, limit, err := extractPageParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	feed, err := s.s.ForYouFeed(r.Context(), viewer, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "viewer not found")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to build for-you feed")
		return
	}

	writeOK(w, http.StatusOK, toAPIFeed(feed))
}

func (s server) discoverFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feed/discover Feed DiscoverFeed
	//
	// Return recently created or interacted-with posts. Works without
	// authentication, the liked flag is present only for authenticated
	// viewers.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: page
	//   in: query
	//   required: false
	//   default: 1
	// - name: limit
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     description: Feed page
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	page, limit, err := extractPageParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var viewer *string
	if id, ok := mm.ViewerID(r.Context()); ok {
		viewer = &id
	}

	feed, err := s.s.DiscoverFeed(r.Context(), viewer, page, limit)
	if err != nil {
		writeInternalError(r.Context(), w, err, "failed to build discover feed")
		return
	}

	writeOK(w, http.StatusOK, toAPIFeed(feed))
}

func (s server) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "username, email and a password of at least 8 characters are required")
		return
	}

	t := entities.UserType(req.Type)
	if req.Type != "" && t != entities.ArtistUserType && t != entities.FanUserType {
		writeError(w, http.StatusBadRequest, "invalid user type")
		return
	}

	u, err := s.s.Register(r.Context(), &service.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Type:        t,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "username or email is already taken")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to register user")
		return
	}

	s.writeAuthResponse(r.Context(), w, u)
}

func (s server) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.s.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to login")
		return
	}

	s.writeAuthResponse(r.Context(), w, u)
}

func (s server) writeAuthResponse(ctx context.Context, w http.ResponseWriter, u *entities.User) {
	token, err := s.auth.IssueToken(u.ID, time.Now())
	if err != nil {
		writeInternalError(ctx, w, err, "failed to issue token")
		return
	}

	writeOK(w, http.StatusOK, AuthResponse{
		Token: token,
		User: Profile{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Avatar:      u.Avatar,
			Type:        string(u.Type),
			Verified:    u.Verified,
		},
	})
}

func (s server) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	u, err := s.s.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to get user")
		return
	}

	writeOK(w, http.StatusOK, toAPIUser(u))
}

func (s server) follow(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())
	followee := chi.URLParam(r, "id")

	if err := s.s.Follow(r.Context(), viewer, followee); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to follow")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) unfollow(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())
	followee := chi.URLParam(r, "id")

	if err := s.s.Unfollow(r.Context(), viewer, followee); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to unfollow")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	var req CreatePostRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Text == "" || len(req.Text) > maxPostLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("text must be 1..%d characters", maxPostLength))
		return
	}

	p, err := s.s.CreatePost(r.Context(), viewer, req.Text, req.EventID)
	if err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to create post")
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(p))
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var viewer *string
	if v, ok := mm.ViewerID(r.Context()); ok {
		viewer = &v
	}

	p, err := s.s.GetPost(r.Context(), id, viewer)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to get post")
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p))
}

func (s server) deletePost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	if err := s.s.DeletePost(r.Context(), chi.URLParam(r, "id"), viewer); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to delete post")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) pinPost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	if err := s.s.PinPost(r.Context(), chi.URLParam(r, "id"), viewer, true); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to pin post")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) unpinPost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	if err := s.s.PinPost(r.Context(), chi.URLParam(r, "id"), viewer, false); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to unpin post")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) likePost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	if err := s.s.LikePost(r.Context(), chi.URLParam(r, "id"), viewer); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to like post")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) unlikePost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	if err := s.s.UnlikePost(r.Context(), chi.URLParam(r, "id"), viewer); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to unlike post")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) addComment(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	var req CommentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Text == "" || len(req.Text) > maxCommentLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("text must be 1..%d characters", maxCommentLength))
		return
	}

	c, err := s.s.AddComment(r.Context(), chi.URLParam(r, "id"), viewer, req.Text)
	if err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to add comment")
		return
	}

	writeOK(w, http.StatusCreated, toAPIComment(*c))
}

func (s server) createEvent(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	var req CreateEventRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Title == "" || req.StartsAt <= 0 {
		writeError(w, http.StatusBadRequest, "title and startsAt are required")
		return
	}

	e, err := s.s.CreateEvent(r.Context(), &service.CreateEventParams{
		Owner:       viewer,
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    time.Unix(req.StartsAt, 0),
	})
	if err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to create event")
		return
	}

	writeOK(w, http.StatusCreated, toAPIEvent(e))
}

func (s server) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.s.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}

		writeInternalError(r.Context(), w, err, "failed to get event")
		return
	}

	writeOK(w, http.StatusOK, toAPIEvent(e))
}

func (s server) listEvents(w http.ResponseWriter, r *http.Request) {
	page, limit, err := extractPageParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ee, err := s.s.ListEvents(r.Context(), page, limit)
	if err != nil {
		writeInternalError(r.Context(), w, err, "failed to list events")
		return
	}

	out := make([]*Event, len(ee))
	for i, e := range ee {
		out[i] = toAPIEvent(e)
	}

	writeOK(w, http.StatusOK, out)
}

func (s server) setAttendance(w http.ResponseWriter, r *http.Request) {
	viewer, _ := mm.ViewerID(r.Context())

	var req AttendanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := entities.AttendanceStatus(req.Status)
	switch status {
	case entities.GoingAttendanceStatus, entities.InterestedAttendanceStatus, entities.DeclinedAttendanceStatus:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := s.s.SetAttendance(r.Context(), chi.URLParam(r, "id"), viewer, status); err != nil {
		s.writeServiceError(r.Context(), w, err, "failed to set attendance")
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) getNetworkStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.s.GetNetworkStats(r.Context())
	if err != nil {
		writeInternalError(r.Context(), w, err, "failed to get network stats")
		return
	}

	writeOK(w, http.StatusOK, StatsResponse{
		Users:  st.Users,
		Posts:  st.Posts,
		Events: st.Events,
	})
}

func (s server) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeInternalError(ctx, w, err, message)
	}
}

func extractPageParamsFromQuery(q url.Values) (page, limit int, err error) {
	page, limit = 1, defaultLimit

	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return 0, 0, fmt.Errorf("%w: invalid page", errInvalidRequest)
		}

		if v > maxPage {
			return 0, 0, fmt.Errorf("%w: page is too big", errInvalidRequest)
		}

		page = v
	}

	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return 0, 0, fmt.Errorf("%w: invalid limit", errInvalidRequest)
		}

		if v > maxLimit {
			return 0, 0, fmt.Errorf("%w: limit is too big", errInvalidRequest)
		}

		limit = v
	}

	return page, limit, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode body", errInvalidRequest)
	}

	return nil
}
