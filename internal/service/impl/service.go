// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rockrider-app/backend/internal/entities"
	"github.com/rockrider-app/backend/internal/service"
	"github.com/rockrider-app/backend/internal/storage"
)

var log = logrus.WithField("layer", "service")

// Shuffler reorders n elements in place. The production implementation is
// math/rand's unseeded global Shuffle, tests inject a seeded one.
type Shuffler func(n int, swap func(i, j int))

type srv struct {
	s       storage.Storage
	shuffle Shuffler
	now     func() time.Time
}

// New creates new instance of service.
func New(s storage.Storage) service.Service {
	return &srv{
		s:       s,
		shuffle: rand.Shuffle,
		now:     time.Now,
	}
}

func (s *srv) Register(ctx context.Context, p *service.RegisterParams) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	t := p.Type
	if t == "" {
		t = entities.FanUserType
	}

	u, err := s.s.CreateUser(ctx, &storage.CreateUserParams{
		ID:           uuid.NewString(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hash),
		DisplayName:  p.DisplayName,
		Type:         t,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, service.ErrAlreadyExists
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *srv) Login(ctx context.Context, email, password string) (*entities.User, error) {
	u, err := s.s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, service.ErrInvalidCredentials
	}

	return u, nil
}

func (s *srv) GetUser(ctx context.Context, id string) (*service.UserView, error) {
	u, err := s.s.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	c, err := s.s.GetFollowCounts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow counts: %w", err)
	}

	return &service.UserView{
		Profile:   toProfile(u),
		Followers: c.Followers,
		Following: c.Following,
	}, nil
}

func (s *srv) Follow(ctx context.Context, follower, followee string) error {
	if follower == followee {
		return service.ErrSelfFollow
	}

	if _, err := s.s.GetUser(ctx, followee); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to get followee: %w", err)
	}

	if err := s.s.Follow(ctx, follower, followee); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}

	return nil
}

func (s *srv) Unfollow(ctx context.Context, follower, followee string) error {
	if follower == followee {
		return service.ErrSelfFollow
	}

	if err := s.s.Unfollow(ctx, follower, followee); err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}

	return nil
}

func (s *srv) CreatePost(ctx context.Context, owner, text string, eventID *string) (*entities.FeedPost, error) {
	if eventID != nil {
		if _, err := s.s.GetEvent(ctx, *eventID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, service.ErrNotFound
			}

			return nil, fmt.Errorf("failed to get event: %w", err)
		}
	}

	id := uuid.NewString()

	if err := s.s.CreatePost(ctx, &storage.CreatePostParams{
		ID:        id,
		Owner:     owner,
		EventID:   eventID,
		Text:      text,
		CreatedAt: s.now(),
	}); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.GetPost(ctx, id, &owner)
}

func (s *srv) GetPost(ctx context.Context, id string, viewer *string) (*entities.FeedPost, error) {
	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	pp, err := s.assemble(ctx, []*entities.Post{p}, viewer)
	if err != nil {
		return nil, err
	}

	if len(pp) == 0 {
		return nil, service.ErrNotFound
	}

	return pp[0], nil
}

func (s *srv) DeletePost(ctx context.Context, id, deletedBy string) error {
	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to get post: %w", err)
	}

	if p.Owner != deletedBy {
		return service.ErrForbidden
	}

	if err := s.s.DeletePost(ctx, id, s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// PinPost toggles the pinned flag, owners only. Pinned posts come first in
// the owner's following feed.
func (s *srv) PinPost(ctx context.Context, id, owner string, pinned bool) error {
	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to get post: %w", err)
	}

	if p.Owner != owner {
		return service.ErrForbidden
	}

	if err := s.s.SetPostPin(ctx, id, pinned); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to set pin: %w", err)
	}

	return nil
}

// LikePost overwrites any previous like of the same user, the last writer
// wins.
func (s *srv) LikePost(ctx context.Context, id, likedBy string) error {
	if _, err := s.s.GetPost(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to get post: %w", err)
	}

	if err := s.s.SetLike(ctx, id, likedBy, s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to set like: %w", err)
	}

	return nil
}

func (s *srv) UnlikePost(ctx context.Context, id, likedBy string) error {
	if err := s.s.DeleteLike(ctx, id, likedBy); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	return nil
}

func (s *srv) AddComment(ctx context.Context, postID, owner, text string) (*entities.CommentView, error) {
	if _, err := s.s.GetPost(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	c := storage.CreateCommentParams{
		ID:        uuid.NewString(),
		PostID:    postID,
		Owner:     owner,
		Text:      text,
		CreatedAt: s.now(),
	}

	if err := s.s.CreateComment(ctx, &c); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	pp, err := s.s.GetProfiles(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	out := entities.CommentView{
		Comment: entities.Comment{
			ID:        c.ID,
			PostID:    c.PostID,
			Owner:     c.Owner,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		},
	}

	if len(pp) == 1 {
		out.Author = *pp[0]
	}

	return &out, nil
}

func (s *srv) CreateEvent(ctx context.Context, p *service.CreateEventParams) (*entities.Event, error) {
	u, err := s.s.GetUser(ctx, p.Owner)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if u.Type != entities.ArtistUserType {
		return nil, service.ErrForbidden
	}

	id := uuid.NewString()

	if err := s.s.CreateEvent(ctx, &storage.CreateEventParams{
		ID:          id,
		Owner:       p.Owner,
		Title:       p.Title,
		Description: p.Description,
		Venue:       p.Venue,
		StartsAt:    p.StartsAt,
		CreatedAt:   s.now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return s.GetEvent(ctx, id)
}

func (s *srv) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	e, err := s.s.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return e, nil
}

func (s *srv) ListEvents(ctx context.Context, page, limit int) ([]*entities.Event, error) {
	now := s.now()

	ee, err := s.s.ListEvents(ctx, &storage.ListEventsParams{
		StartsAfter: &now,
		Offset:      uint32((page - 1) * limit),
		Limit:       uint32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return ee, nil
}

func (s *srv) SetAttendance(ctx context.Context, eventID, userID string, status entities.AttendanceStatus) error {
	if _, err := s.s.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := s.s.SetAttendance(ctx, eventID, userID, status, s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFound
		}

		return fmt.Errorf("failed to set attendance: %w", err)
	}

	return nil
}

func (s *srv) GetNetworkStats(ctx context.Context) (*entities.NetworkStats, error) {
	st, err := s.s.GetNetworkStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network stats: %w", err)
	}

	return st, nil
}

func toProfile(u *entities.User) entities.Profile {
	return entities.Profile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Type:        u.Type,
		Verified:    u.Verified,
	}
}
