package impl

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rockrider-app/backend/internal/entities"
	"github.com/rockrider-app/backend/internal/service"
	"github.com/rockrider-app/backend/internal/storage"
)

// Candidate-pool windows and composition of the for-you feed.
const (
	recentPopularWindow  = 14 * 24 * time.Hour
	verifiedAuthorWindow = 21 * 24 * time.Hour
	diverseRecentWindow  = 7 * 24 * time.Hour
	discoverWindow       = 7 * 24 * time.Hour

	recentPopularShare  = 0.4
	verifiedAuthorShare = 0.3
)

// FollowingFeed returns posts of the viewer and everyone they follow, pinned
// posts first. The pagination is applied by the query itself.
func (s *srv) FollowingFeed(ctx context.Context, viewer string, page, limit int) (*entities.Feed, error) {
	following, err := s.viewerFollowing(ctx, viewer)
	if err != nil {
		return nil, err
	}

	authors := append([]string{viewer}, following...)

	posts, err := s.s.ListPosts(ctx, &storage.ListPostsParams{
		AuthorIn:    authors,
		PinnedFirst: true,
		Offset:      uint32((page - 1) * limit),
		Limit:       uint32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	// hasNext is an approximation: a full page means there is probably more.
	hasNext := len(posts) == limit

	out, err := s.assemble(ctx, posts, &viewer)
	if err != nil {
		return nil, err
	}

	return &entities.Feed{
		Posts:   out,
		Page:    page,
		Limit:   limit,
		HasNext: hasNext,
		Meta: entities.FeedMeta{
			Algorithm: string(entities.FollowingFeedType),
			PoolCounts: map[string]int{
				"following": len(posts),
			},
		},
	}, nil
}

// ForYouFeed blends up to three candidate pools of posts by authors the
// viewer does NOT follow, reshuffles the merged set on every request and
// windows the result. Page boundaries are therefore not stable across
// requests.
func (s *srv) ForYouFeed(ctx context.Context, viewer string, page, limit int) (*entities.Feed, error) {
	following, err := s.viewerFollowing(ctx, viewer)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{viewer}, following...)
	now := s.now()

	one := uint32(1)
	popularAfter := now.Add(-recentPopularWindow)

	poolA, err := s.s.ListPosts(ctx, &storage.ListPostsParams{
		ExcludeAuthors:  exclude,
		CreatedAfter:    &popularAfter,
		MinInteractions: &one,
		Limit:           uint32(shareOf(limit, recentPopularShare)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent popular posts: %w", err)
	}

	accumulated := len(poolA)

	var poolB, poolC []*entities.Post

	if accumulated < limit {
		verifiedAfter := now.Add(-verifiedAuthorWindow)

		poolB, err = s.s.ListPosts(ctx, &storage.ListPostsParams{
			ExcludeAuthors:      exclude,
			CreatedAfter:        &verifiedAfter,
			VerifiedArtistsOnly: true,
			Limit:               uint32(shareOf(limit, verifiedAuthorShare)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list verified-author posts: %w", err)
		}

		accumulated += len(poolB)
	}

	if accumulated < limit {
		diverseAfter := now.Add(-diverseRecentWindow)

		poolC, err = s.s.ListPosts(ctx, &storage.ListPostsParams{
			ExcludeAuthors: exclude,
			CreatedAfter:   &diverseAfter,
			Limit:          uint32(limit - accumulated),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list diverse recent posts: %w", err)
		}
	}

	merged := mergePools(poolA, poolB, poolC)

	s.shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	window, hasNext := paginate(merged, page, limit)

	out, err := s.assemble(ctx, window, &viewer)
	if err != nil {
		return nil, err
	}

	return &entities.Feed{
		Posts:   out,
		Page:    page,
		Limit:   limit,
		HasNext: hasNext,
		Meta: entities.FeedMeta{
			Algorithm: string(entities.ForYouFeedType),
			PoolCounts: map[string]int{
				"recent_popular":  len(poolA),
				"verified_author": len(poolB),
				"diverse_recent":  len(poolC),
			},
		},
	}, nil
}

// DiscoverFeed returns recently created or interacted-with posts and works
// for anonymous viewers.
func (s *srv) DiscoverFeed(ctx context.Context, viewer *string, page, limit int) (*entities.Feed, error) {
	after := s.now().Add(-discoverWindow)

	posts, err := s.s.ListPosts(ctx, &storage.ListPostsParams{
		InteractedOrCreatedAfter: &after,
		Offset:                   uint32((page - 1) * limit),
		Limit:                    uint32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	hasNext := len(posts) == limit

	out, err := s.assemble(ctx, posts, viewer)
	if err != nil {
		return nil, err
	}

	return &entities.Feed{
		Posts:   out,
		Page:    page,
		Limit:   limit,
		HasNext: hasNext,
		Meta: entities.FeedMeta{
			Algorithm: string(entities.DiscoverFeedType),
			PoolCounts: map[string]int{
				"discover": len(posts),
			},
		},
	}, nil
}

// viewerFollowing resolves the viewer and returns their following set.
func (s *srv) viewerFollowing(ctx context.Context, viewer string) ([]string, error) {
	if _, err := s.s.GetUser(ctx, viewer); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	following, err := s.s.GetFollowing(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return following, nil
}

// assemble decorates posts with author summaries, event summaries, comments
// and the viewer's like flags. A post whose author can not be resolved is
// dropped from the page instead of failing the whole request.
func (s *srv) assemble(ctx context.Context, posts []*entities.Post, viewer *string) ([]*entities.FeedPost, error) {
	out := make([]*entities.FeedPost, 0, len(posts))

	if len(posts) == 0 {
		return out, nil
	}

	postIDs := make([]string, len(posts))
	authorIDs := make([]string, 0, len(posts))
	eventIDs := make([]string, 0)

	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs = append(authorIDs, p.Owner)
		if p.EventID != nil {
			eventIDs = append(eventIDs, *p.EventID)
		}
	}

	comments, err := s.s.ListComments(ctx, postIDs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	for _, cc := range comments {
		for _, c := range cc {
			authorIDs = append(authorIDs, c.Owner)
		}
	}

	profiles, err := s.s.GetProfiles(ctx, authorIDs...)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	profileByID := make(map[string]*entities.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	eventByID := make(map[string]*entities.Event)
	if len(eventIDs) > 0 {
		events, err := s.s.GetEvents(ctx, eventIDs...)
		if err != nil {
			return nil, fmt.Errorf("failed to get events: %w", err)
		}

		for _, e := range events {
			eventByID[e.ID] = e
		}
	}

	var liked map[string]struct{}
	if viewer != nil {
		if liked, err = s.s.GetLikes(ctx, *viewer, postIDs...); err != nil {
			return nil, fmt.Errorf("failed to get likes: %w", err)
		}
	}

	for _, p := range posts {
		author, ok := profileByID[p.Owner]
		if !ok {
			log.WithField("post", p.ID).Warn("dropping post with unresolvable author")
			continue
		}

		fp := entities.FeedPost{
			Post:    *p,
			Author:  *author,
			Replies: make([]entities.CommentView, 0, len(comments[p.ID])),
		}

		if p.EventID != nil {
			fp.Event = eventByID[*p.EventID]
		}

		for _, c := range comments[p.ID] {
			commenter, ok := profileByID[c.Owner]
			if !ok {
				continue
			}

			fp.Replies = append(fp.Replies, entities.CommentView{
				Comment: *c,
				Author:  *commenter,
			})
		}

		if viewer != nil {
			_, isLiked := liked[p.ID]
			fp.IsLiked = &isLiked
		}

		out = append(out, &fp)
	}

	return out, nil
}

// mergePools concatenates pools keeping the first occurrence of every post.
func mergePools(pools ...[]*entities.Post) []*entities.Post {
	seen := make(map[string]struct{})
	out := make([]*entities.Post, 0)

	for _, pool := range pools {
		for _, p := range pool {
			if _, ok := seen[p.ID]; ok {
				continue
			}

			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}

	return out
}

// paginate windows the sequence and reports whether the window is full,
// which is how hasNext is approximated for merged feeds.
func paginate(posts []*entities.Post, page, limit int) ([]*entities.Post, bool) {
	start := (page - 1) * limit
	if start >= len(posts) {
		return nil, false
	}

	end := start + limit
	if end > len(posts) {
		end = len(posts)
	}

	window := posts[start:end]

	return window, len(window) == limit
}

func shareOf(limit int, share float64) int {
	return int(math.Ceil(float64(limit) * share))
}
