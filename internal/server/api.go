package server

import (
	"context"
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"

	"github.com/rockrider-app/backend/internal/entities"
	"github.com/rockrider-app/backend/internal/service"
)

const maxLimit = 100
const maxPage = 10000
const defaultLimit = 20

const maxPostLength = 2000
const maxCommentLength = 1000

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// Profile ...
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Type        string `json:"type"`
	Verified    bool   `json:"verified"`
}

// Comment ...
type Comment struct {
	ID        string  `json:"id"`
	Author    Profile `json:"author"`
	Text      string  `json:"text"`
	CreatedAt uint64  `json:"createdAt"`
}

// Event ...
type Event struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartsAt    uint64 `json:"startsAt"`
	CreatedAt   uint64 `json:"createdAt"`
	Going       uint32 `json:"going"`
	Interested  uint32 `json:"interested"`
}

// Post ...
type Post struct {
	ID            string    `json:"id"`
	Author        Profile   `json:"author"`
	Event         *Event    `json:"event,omitempty"`
	Text          string    `json:"text"`
	Pinned        bool      `json:"pinned"`
	LikesCount    uint32    `json:"likesCount"`
	CommentsCount uint32    `json:"commentsCount"`
	Comments      []Comment `json:"comments"`
	IsLikedByUser *bool     `json:"isLikedByUser,omitempty"`
	CreatedAt     uint64    `json:"createdAt"`
}

// Pagination ...
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"hasNext"`
}

// FeedMeta ...
type FeedMeta struct {
	Algorithm  string         `json:"algorithm"`
	PoolCounts map[string]int `json:"poolCounts"`
}

// FeedResponse ...
// swagger:model
type FeedResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
	Meta       FeedMeta   `json:"meta"`
}

// User ...
type User struct {
	Profile
	Followers uint32 `json:"followers"`
	Following uint32 `json:"following"`
}

// AuthResponse ...
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// StatsResponse ...
type StatsResponse struct {
	Users  uint64 `json:"users"`
	Posts  uint64 `json:"posts"`
	Events uint64 `json:"events"`
}

// RegisterRequest ...
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
}

// LoginRequest ...
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreatePostRequest ...
type CreatePostRequest struct {
	Text    string  `json:"text"`
	EventID *string `json:"eventId"`
}

// CommentRequest ...
type CommentRequest struct {
	Text string `json:"text"`
}

// CreateEventRequest ...
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartsAt    int64  `json:"startsAt"`
}

// AttendanceRequest ...
type AttendanceRequest struct {
	Status string `json:"status"`
}

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	logrus.WithField("request_id", chimw.GetReqID(ctx)).WithError(err).Error(message)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func toAPIProfile(p entities.Profile) Profile {
	return Profile{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Avatar:      p.Avatar,
		Type:        string(p.Type),
		Verified:    p.Verified,
	}
}

func toAPIEvent(e *entities.Event) *Event {
	if e == nil {
		return nil
	}

	return &Event{
		ID:          e.ID,
		Owner:       e.Owner,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    uint64(e.StartsAt.Unix()),
		CreatedAt:   uint64(e.CreatedAt.Unix()),
		Going:       e.Going,
		Interested:  e.Interested,
	}
}

func toAPIComment(c entities.CommentView) Comment {
	return Comment{
		ID:        c.ID,
		Author:    toAPIProfile(c.Author),
		Text:      c.Text,
		CreatedAt: uint64(c.CreatedAt.Unix()),
	}
}

func toAPIPost(p *entities.FeedPost) Post {
	comments := make([]Comment, len(p.Replies))
	for i, c := range p.Replies {
		comments[i] = toAPIComment(c)
	}

	return Post{
		ID:            p.ID,
		Author:        toAPIProfile(p.Author),
		Event:         toAPIEvent(p.Event),
		Text:          p.Text,
		Pinned:        p.Pinned,
		LikesCount:    p.Likes,
		CommentsCount: p.Comments,
		Comments:      comments,
		IsLikedByUser: p.IsLiked,
		CreatedAt:     uint64(p.CreatedAt.Unix()),
	}
}

func toAPIFeed(f *entities.Feed) FeedResponse {
	posts := make([]Post, len(f.Posts))
	for i, p := range f.Posts {
		posts[i] = toAPIPost(p)
	}

	return FeedResponse{
		Posts: posts,
		Pagination: Pagination{
			Page:    f.Page,
			Limit:   f.Limit,
			HasNext: f.HasNext,
		},
		Meta: FeedMeta{
			Algorithm:  f.Meta.Algorithm,
			PoolCounts: f.Meta.PoolCounts,
		},
	}
}

func toAPIUser(u *service.UserView) User {
	return User{
		Profile:   toAPIProfile(u.Profile),
		Followers: u.Followers,
		Following: u.Following,
	}
}
