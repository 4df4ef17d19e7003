// Package entities contains main entities of service.
package entities

import (
	"time"
)

// UserType ...
type UserType string

const (
	// ArtistUserType ...
	ArtistUserType UserType = "artist"
	// FanUserType ...
	FanUserType UserType = "fan"
)

// AttendanceStatus ...
type AttendanceStatus string

const (
	// GoingAttendanceStatus ...
	GoingAttendanceStatus AttendanceStatus = "going"
	// InterestedAttendanceStatus ...
	InterestedAttendanceStatus AttendanceStatus = "interested"
	// DeclinedAttendanceStatus ...
	DeclinedAttendanceStatus AttendanceStatus = "declined"
)

// FeedType names a feed algorithm.
type FeedType string

const (
	// FollowingFeedType ...
	FollowingFeedType FeedType = "following"
	// ForYouFeedType ...
	ForYouFeedType FeedType = "for-you"
	// DiscoverFeedType ...
	DiscoverFeedType FeedType = "discover"
)

// User ...
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	Avatar       string
	Type         UserType
	Verified     bool
	Active       bool
	CreatedAt    time.Time
}

// Profile is a public summary of a user.
type Profile struct {
	ID          string
	Username    string
	DisplayName string
	Avatar      string
	Type        UserType
	Verified    bool
}

// Post ...
// Likes and Comments are recomputed from the like and comment collections on
// every read, they are never stored on the post row.
type Post struct {
	ID        string
	Owner     string
	EventID   *string
	Text      string
	Pinned    bool
	CreatedAt time.Time
	Likes     uint32
	Comments  uint32
}

// Comment ...
type Comment struct {
	ID        string
	PostID    string
	Owner     string
	Text      string
	CreatedAt time.Time
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	Comment
	Author Profile
}

// Event ...
type Event struct {
	ID          string
	Owner       string
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	CreatedAt   time.Time
	Going       uint32
	Interested  uint32
}

// FeedPost is a post decorated for a concrete viewer.
// IsLiked is nil for anonymous viewers so clients can distinguish "unknown"
// from "not liked".
type FeedPost struct {
	Post
	Author  Profile
	Event   *Event
	Replies []CommentView
	IsLiked *bool
}

// Feed is a single page of a feed.
type Feed struct {
	Posts   []*FeedPost
	Page    int
	Limit   int
	HasNext bool
	Meta    FeedMeta
}

// FeedMeta describes how the page was produced.
type FeedMeta struct {
	Algorithm  string
	PoolCounts map[string]int
}

// NetworkStats ...
type NetworkStats struct {
	Users  uint64
	Posts  uint64
	Events uint64
}
