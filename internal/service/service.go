// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rockrider-app/backend/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ErrNotFound returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists returned when a username or email is already taken.
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalidCredentials returned on a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSelfFollow returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("can not follow yourself")

// ErrForbidden returned when the caller is not allowed to perform an operation.
var ErrForbidden = errors.New("forbidden")

// Service ...
type Service interface {
	Register(ctx context.Context, p *RegisterParams) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*UserView, error)

	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error

	CreatePost(ctx context.Context, owner, text string, eventID *string) (*entities.FeedPost, error)
	GetPost(ctx context.Context, id string, viewer *string) (*entities.FeedPost, error)
	DeletePost(ctx context.Context, id, deletedBy string) error
	PinPost(ctx context.Context, id, owner string, pinned bool) error
	LikePost(ctx context.Context, id, likedBy string) error
	UnlikePost(ctx context.Context, id, likedBy string) error
	AddComment(ctx context.Context, postID, owner, text string) (*entities.CommentView, error)

	CreateEvent(ctx context.Context, p *CreateEventParams) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	ListEvents(ctx context.Context, page, limit int) ([]*entities.Event, error)
	SetAttendance(ctx context.Context, eventID, userID string, status entities.AttendanceStatus) error

	FollowingFeed(ctx context.Context, viewer string, page, limit int) (*entities.Feed, error)
	ForYouFeed(ctx context.Context, viewer string, page, limit int) (*entities.Feed, error)
	DiscoverFeed(ctx context.Context, viewer *string, page, limit int) (*entities.Feed, error)

	GetNetworkStats(ctx context.Context) (*entities.NetworkStats, error)
}

// RegisterParams ...
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Type        entities.UserType
}

// CreateEventParams ...
type CreateEventParams struct {
	Owner       string
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
}

// UserView is a public profile with follow counts.
type UserView struct {
	entities.Profile
	Followers uint32
	Following uint32
}
