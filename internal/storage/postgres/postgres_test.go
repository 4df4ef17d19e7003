//+build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rockrider-app/backend/internal/entities"
	"github.com/rockrider-app/backend/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx)
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	for _, q := range []string{
		`DELETE FROM event_attendance`,
		`DELETE FROM "like"`,
		`DELETE FROM comment`,
		`DELETE FROM post`,
		`DELETE FROM event`,
		`DELETE FROM follow`,
		`DELETE FROM "user"`,
	} {
		_, err := db.ExecContext(ctx, q)
		require.NoError(t, err)
	}
}

func createUser(t *testing.T, id string, userType entities.UserType, verified bool) {
	_, err := s.CreateUser(ctx, &storage.CreateUserParams{
		ID:           id,
		Username:     "u_" + id,
		Email:        id + "@example.com",
		PasswordHash: "hash",
		Type:         userType,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	if verified {
		_, err := db.ExecContext(ctx, `UPDATE "user" SET verified=TRUE WHERE id=$1`, id)
		require.NoError(t, err)
	}
}

func createPost(t *testing.T, id, owner string, createdAt time.Time) {
	require.NoError(t, s.CreatePost(ctx, &storage.CreatePostParams{
		ID:        id,
		Owner:     owner,
		Text:      "text " + id,
		CreatedAt: createdAt,
	}))
}

func TestPg_Ping(t *testing.T) {
	require.NoError(t, s.Ping(ctx))
}

func TestPg_CreateUser(t *testing.T) {
	defer cleanup(t)

	u, err := s.CreateUser(ctx, &storage.CreateUserParams{
		ID:           "user-1",
		Username:     "rider",
		Email:        "rider@example.com",
		PasswordHash: "hash",
		DisplayName:  "Rider",
		Type:         entities.ArtistUserType,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "rider", u.Username)
	assert.Equal(t, entities.ArtistUserType, u.Type)
	assert.False(t, u.Verified)
	assert.True(t, u.Active)

	_, err = s.CreateUser(ctx, &storage.CreateUserParams{
		ID:        "user-2",
		Username:  "rider",
		Email:     "other@example.com",
		CreatedAt: time.Now(),
	})
	assert.True(t, errors.Is(err, storage.ErrAlreadyExists))

	got, err := s.GetUserByEmail(ctx, "rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	_, err = s.GetUser(ctx, "ghost")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_GetUser_inactive(t *testing.T) {
	defer cleanup(t)

	createUser(t, "user-1", entities.FanUserType, false)

	_, err := db.ExecContext(ctx, `UPDATE "user" SET active=FALSE WHERE id=$1`, "user-1")
	require.NoError(t, err)

	_, err = s.GetUser(ctx, "user-1")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_GetProfiles(t *testing.T) {
	defer cleanup(t)

	createUser(t, "user-1", entities.ArtistUserType, true)
	createUser(t, "user-2", entities.FanUserType, false)

	// duplicated ids collapse to one row
	pp, err := s.GetProfiles(ctx, "user-1", "user-2", "user-1", "ghost")
	require.NoError(t, err)
	require.Len(t, pp, 2)
}

func TestPg_Follow(t *testing.T) {
	defer cleanup(t)

	createUser(t, "follower", entities.FanUserType, false)
	createUser(t, "followee", entities.ArtistUserType, false)

	require.NoError(t, s.Follow(ctx, "follower", "followee"))
	// repeated follow is a no-op
	require.NoError(t, s.Follow(ctx, "follower", "followee"))

	following, err := s.GetFollowing(ctx, "follower")
	require.NoError(t, err)
	assert.Equal(t, []string{"followee"}, following)

	c, err := s.GetFollowCounts(ctx, "followee")
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Followers)
	assert.EqualValues(t, 0, c.Following)

	assert.True(t, errors.Is(s.Follow(ctx, "follower", "ghost"), storage.ErrNotFound))

	require.NoError(t, s.Unfollow(ctx, "follower", "followee"))

	following, err = s.GetFollowing(ctx, "follower")
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestPg_Post(t *testing.T) {
	defer cleanup(t)

	createUser(t, "owner", entities.FanUserType, false)
	createUser(t, "fan", entities.FanUserType, false)

	createPost(t, "post-1", "owner", time.Now())

	p, err := s.GetPost(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "owner", p.Owner)
	assert.Zero(t, p.Likes)
	assert.Zero(t, p.Comments)

	// counts are always derived from the like and comment tables
	require.NoError(t, s.SetLike(ctx, "post-1", "fan", time.Now()))
	require.NoError(t, s.CreateComment(ctx, &storage.CreateCommentParams{
		ID:        "c1",
		PostID:    "post-1",
		Owner:     "fan",
		Text:      "nice",
		CreatedAt: time.Now(),
	}))

	p, err = s.GetPost(ctx, "post-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.Likes)
	assert.EqualValues(t, 1, p.Comments)

	assert.True(t, errors.Is(
		s.CreatePost(ctx, &storage.CreatePostParams{ID: "post-2", Owner: "ghost", Text: "t", CreatedAt: time.Now()}),
		storage.ErrNotFound,
	))
}

func TestPg_DeletePost(t *testing.T) {
	defer cleanup(t)

	createUser(t, "owner", entities.FanUserType, false)
	createPost(t, "post-1", "owner", time.Now())

	require.NoError(t, s.DeletePost(ctx, "post-1", time.Now()))

	_, err := s.GetPost(ctx, "post-1")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	// the row survives as an inactive record
	var active bool
	require.NoError(t, db.QueryRowContext(ctx, `SELECT active FROM post WHERE id=$1`, "post-1").Scan(&active))
	assert.False(t, active)

	assert.True(t, errors.Is(s.DeletePost(ctx, "post-1", time.Now()), storage.ErrNotFound))

	// deleted posts can not be pinned either
	assert.True(t, errors.Is(s.SetPostPin(ctx, "post-1", true), storage.ErrNotFound))
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	now := time.Now().UTC().Truncate(time.Second)

	createUser(t, "plain", entities.FanUserType, false)
	createUser(t, "artist", entities.ArtistUserType, true)
	createUser(t, "fan", entities.FanUserType, false)

	createPost(t, "old", "plain", now.Add(-30*24*time.Hour))
	createPost(t, "week", "plain", now.Add(-6*24*time.Hour))
	createPost(t, "fresh", "artist", now.Add(-time.Hour))
	createPost(t, "liked", "plain", now.Add(-10*24*time.Hour))

	require.NoError(t, s.SetLike(ctx, "liked", "fan", now))

	ids := func(pp []*entities.Post) []string {
		out := make([]string, len(pp))
		for i, p := range pp {
			out[i] = p.ID
		}
		return out
	}

	t.Run("author in", func(t *testing.T) {
		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			AuthorIn: []string{"artist"},
			Limit:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, ids(pp))
	})

	t.Run("exclude authors", func(t *testing.T) {
		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			ExcludeAuthors: []string{"plain"},
			Limit:          10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, ids(pp))
	})

	t.Run("created after", func(t *testing.T) {
		after := now.Add(-7 * 24 * time.Hour)

		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			CreatedAfter: &after,
			Limit:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh", "week"}, ids(pp))
	})

	t.Run("min interactions", func(t *testing.T) {
		one := uint32(1)

		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			MinInteractions: &one,
			Limit:           10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"liked"}, ids(pp))
	})

	t.Run("interacted or created after", func(t *testing.T) {
		after := now.Add(-7 * 24 * time.Hour)

		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			InteractedOrCreatedAfter: &after,
			Limit:                    10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh", "week", "liked"}, ids(pp))
	})

	t.Run("verified artists only", func(t *testing.T) {
		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			VerifiedArtistsOnly: true,
			Limit:               10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, ids(pp))
	})

	t.Run("pinned first", func(t *testing.T) {
		require.NoError(t, s.SetPostPin(ctx, "old", true))
		defer func() {
			require.NoError(t, s.SetPostPin(ctx, "old", false))
		}()

		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			PinnedFirst: true,
			Limit:       10,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"old", "fresh", "week", "liked"}, ids(pp))
	})

	t.Run("offset and limit", func(t *testing.T) {
		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{
			Offset: 1,
			Limit:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"week", "liked"}, ids(pp))
	})

	t.Run("deleted posts are invisible", func(t *testing.T) {
		require.NoError(t, s.DeletePost(ctx, "old", now))

		pp, err := s.ListPosts(ctx, &storage.ListPostsParams{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh", "week", "liked"}, ids(pp))
	})
}

func TestPg_Likes(t *testing.T) {
	defer cleanup(t)

	createUser(t, "owner", entities.FanUserType, false)
	createUser(t, "fan", entities.FanUserType, false)
	createPost(t, "post-1", "owner", time.Now())
	createPost(t, "post-2", "owner", time.Now())

	require.NoError(t, s.SetLike(ctx, "post-1", "fan", time.Now()))
	// a second like of the same post only moves the timestamp
	require.NoError(t, s.SetLike(ctx, "post-1", "fan", time.Now()))

	likes, err := s.GetLikes(ctx, "fan", "post-1", "post-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"post-1": {}}, likes)

	assert.True(t, errors.Is(s.SetLike(ctx, "ghost", "fan", time.Now()), storage.ErrNotFound))

	require.NoError(t, s.DeleteLike(ctx, "post-1", "fan"))

	likes, err = s.GetLikes(ctx, "fan", "post-1", "post-2")
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestPg_Comments(t *testing.T) {
	defer cleanup(t)

	createUser(t, "owner", entities.FanUserType, false)
	createUser(t, "fan", entities.FanUserType, false)
	createPost(t, "post-1", "owner", time.Now())
	createPost(t, "post-2", "owner", time.Now())

	base := time.Now().UTC().Truncate(time.Second)

	for i, c := range []storage.CreateCommentParams{
		{ID: "c2", PostID: "post-1", Owner: "fan", Text: "second"},
		{ID: "c1", PostID: "post-1", Owner: "owner", Text: "first"},
		{ID: "c3", PostID: "post-2", Owner: "fan", Text: "other"},
	} {
		c.CreatedAt = base.Add(time.Duration(-i) * time.Minute)
		require.NoError(t, s.CreateComment(ctx, &c))
	}

	cc, err := s.ListComments(ctx, "post-1", "post-2")
	require.NoError(t, err)

	require.Len(t, cc["post-1"], 2)
	// oldest first
	assert.Equal(t, "c1", cc["post-1"][0].ID)
	assert.Equal(t, "c2", cc["post-1"][1].ID)
	require.Len(t, cc["post-2"], 1)

	assert.True(t, errors.Is(
		s.CreateComment(ctx, &storage.CreateCommentParams{ID: "c4", PostID: "ghost", Owner: "fan", Text: "t", CreatedAt: base}),
		storage.ErrNotFound,
	))
}

func TestPg_Events(t *testing.T) {
	defer cleanup(t)

	createUser(t, "artist", entities.ArtistUserType, true)
	createUser(t, "fan", entities.FanUserType, false)

	now := time.Now().UTC().Truncate(time.Second)

	// the StartsAfter filter is strict, so upcoming events sit strictly past now
	offsets := map[string]time.Duration{
		"past":  -24 * time.Hour,
		"soon":  time.Hour,
		"later": 24 * time.Hour,
	}

	for _, id := range []string{"past", "soon", "later"} {
		startsAt := now.Add(offsets[id])

		require.NoError(t, s.CreateEvent(ctx, &storage.CreateEventParams{
			ID:        id,
			Owner:     "artist",
			Title:     "gig " + id,
			Venue:     "club",
			StartsAt:  startsAt,
			CreatedAt: now,
		}))
	}

	e, err := s.GetEvent(ctx, "soon")
	require.NoError(t, err)
	assert.Equal(t, "gig soon", e.Title)
	assert.Zero(t, e.Going)

	require.NoError(t, s.SetAttendance(ctx, "soon", "fan", entities.GoingAttendanceStatus, now))
	// the last status wins
	require.NoError(t, s.SetAttendance(ctx, "soon", "fan", entities.InterestedAttendanceStatus, now))

	e, err = s.GetEvent(ctx, "soon")
	require.NoError(t, err)
	assert.Zero(t, e.Going)
	assert.EqualValues(t, 1, e.Interested)

	ee, err := s.ListEvents(ctx, &storage.ListEventsParams{
		StartsAfter: &now,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, ee, 2)
	assert.Equal(t, "soon", ee[0].ID)
	assert.Equal(t, "later", ee[1].ID)

	// an event starting exactly at StartsAfter is excluded
	at := now.Add(time.Hour)

	ee, err = s.ListEvents(ctx, &storage.ListEventsParams{
		StartsAfter: &at,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, ee, 1)
	assert.Equal(t, "later", ee[0].ID)

	ee, err = s.GetEvents(ctx, "past", "later", "past")
	require.NoError(t, err)
	assert.Len(t, ee, 2)

	assert.True(t, errors.Is(
		s.SetAttendance(ctx, "ghost", "fan", entities.GoingAttendanceStatus, now),
		storage.ErrNotFound,
	))
}

func TestPg_GetNetworkStats(t *testing.T) {
	defer cleanup(t)

	createUser(t, "artist", entities.ArtistUserType, false)
	createUser(t, "fan", entities.FanUserType, false)
	createPost(t, "post-1", "artist", time.Now())

	require.NoError(t, s.CreateEvent(ctx, &storage.CreateEventParams{
		ID:        "event-1",
		Owner:     "artist",
		Title:     "gig",
		StartsAt:  time.Now(),
		CreatedAt: time.Now(),
	}))

	st, err := s.GetNetworkStats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, st.Users)
	assert.EqualValues(t, 1, st.Posts)
	assert.EqualValues(t, 1, st.Events)
}
