// Package storage contains a storage interface.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rockrider-app/backend/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists returned when a unique constraint is violated.
var ErrAlreadyExists = errors.New("already exists")

// Storage provides methods for interacting with database.
type Storage interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, p *CreateUserParams) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetProfiles(ctx context.Context, id ...string) ([]*entities.Profile, error)

	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	GetFollowing(ctx context.Context, follower string) ([]string, error)
	GetFollowCounts(ctx context.Context, id string) (*FollowCounts, error)

	CreatePost(ctx context.Context, p *CreatePostParams) error
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	DeletePost(ctx context.Context, id string, timestamp time.Time) error
	SetPostPin(ctx context.Context, id string, pinned bool) error
	ListPosts(ctx context.Context, p *ListPostsParams) ([]*entities.Post, error)

	SetLike(ctx context.Context, postID, likedBy string, timestamp time.Time) error
	DeleteLike(ctx context.Context, postID, likedBy string) error
	GetLikes(ctx context.Context, likedBy string, postID ...string) (map[string]struct{}, error)

	CreateComment(ctx context.Context, p *CreateCommentParams) error
	ListComments(ctx context.Context, postID ...string) (map[string][]*entities.Comment, error)

	CreateEvent(ctx context.Context, p *CreateEventParams) error
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	GetEvents(ctx context.Context, id ...string) ([]*entities.Event, error)
	ListEvents(ctx context.Context, p *ListEventsParams) ([]*entities.Event, error)
	SetAttendance(ctx context.Context, eventID, userID string, status entities.AttendanceStatus, timestamp time.Time) error

	GetNetworkStats(ctx context.Context) (*entities.NetworkStats, error)
}

// CreateUserParams ...
type CreateUserParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	Avatar       string
	Type         entities.UserType
	CreatedAt    time.Time
}

// FollowCounts ...
type FollowCounts struct {
	Followers uint32
	Following uint32
}

// CreatePostParams ...
type CreatePostParams struct {
	ID        string
	Owner     string
	EventID   *string
	Text      string
	CreatedAt time.Time
}

// ListPostsParams describes one candidate-pool query against active posts.
// Results are always ordered by created_at descending; PinnedFirst puts
// pinned posts ahead of that order.
type ListPostsParams struct {
	// AuthorIn limits posts to the given authors.
	AuthorIn []string
	// ExcludeAuthors removes posts of the given authors.
	ExcludeAuthors []string
	// CreatedAfter keeps posts created strictly after the given time.
	CreatedAfter *time.Time
	// MinInteractions keeps posts with likes+comments not below the value.
	MinInteractions *uint32
	// InteractedOrCreatedAfter keeps posts with at least one like or comment
	// OR created after the given time.
	InteractedOrCreatedAfter *time.Time
	// VerifiedArtistsOnly keeps posts authored by verified artists.
	VerifiedArtistsOnly bool

	PinnedFirst bool
	Offset      uint32
	Limit       uint32
}

// CreateCommentParams ...
type CreateCommentParams struct {
	ID        string
	PostID    string
	Owner     string
	Text      string
	CreatedAt time.Time
}

// CreateEventParams ...
type CreateEventParams struct {
	ID          string
	Owner       string
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	CreatedAt   time.Time
}

// ListEventsParams ...
type ListEventsParams struct {
	StartsAfter *time.Time
	Offset      uint32
	Limit       uint32
}
