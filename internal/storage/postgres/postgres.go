// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rockrider-app/backend/internal/entities"
	"github.com/rockrider-app/backend/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type pg struct {
	ext sqlx.ExtContext
}

type userDTO struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	DisplayName  string    `db:"display_name"`
	Avatar       string    `db:"avatar"`
	Type         string    `db:"user_type"`
	Verified     bool      `db:"verified"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
}

type profileDTO struct {
	ID          string `db:"id"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
	Avatar      string `db:"avatar"`
	Type        string `db:"user_type"`
	Verified    bool   `db:"verified"`
}

type postDTO struct {
	ID        string         `db:"id"`
	Owner     string         `db:"owner"`
	EventID   sql.NullString `db:"event_id"`
	Text      string         `db:"text"`
	Pinned    bool           `db:"pinned"`
	CreatedAt time.Time      `db:"created_at"`
	Likes     uint32         `db:"likes"`
	Comments  uint32         `db:"comments"`
}

type commentDTO struct {
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	Owner     string    `db:"owner"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

type eventDTO struct {
	ID          string    `db:"id"`
	Owner       string    `db:"owner"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Venue       string    `db:"venue"`
	StartsAt    time.Time `db:"starts_at"`
	CreatedAt   time.Time `db:"created_at"`
	Going       uint32    `db:"going"`
	Interested  uint32    `db:"interested"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) Ping(ctx context.Context) error {
	if _, err := s.ext.ExecContext(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	return nil
}

func (s pg) CreateUser(ctx context.Context, p *storage.CreateUserParams) (*entities.User, error) {
	u := userDTO{
		ID:           p.ID,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		DisplayName:  p.DisplayName,
		Avatar:       p.Avatar,
		Type:         string(p.Type),
		CreatedAt:    p.CreatedAt.UTC(),
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO "user"(id, username, email, password_hash, display_name, avatar, user_type, created_at)
			VALUES(:id, :username, :email, :password_hash, :display_name, :avatar, :user_type, :created_at)
		`, u,
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == uniqueViolation {
			return nil, storage.ErrAlreadyExists
		}

		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return s.GetUser(ctx, p.ID)
}

func (s pg) GetUser(ctx context.Context, id string) (*entities.User, error) {
	var u userDTO

	if err := sqlx.GetContext(ctx, s.ext, &u, `
			SELECT id, username, email, password_hash, display_name, avatar, user_type, verified, active, created_at
			FROM "user"
			WHERE id = $1 AND active
		`, id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toUser(&u), nil
}

func (s pg) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var u userDTO

	if err := sqlx.GetContext(ctx, s.ext, &u, `
			SELECT id, username, email, password_hash, display_name, avatar, user_type, verified, active, created_at
			FROM "user"
			WHERE email = $1 AND active
		`, email,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toUser(&u), nil
}

func (s pg) GetProfiles(ctx context.Context, id ...string) ([]*entities.Profile, error) {
	if len(id) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
			SELECT id, username, display_name, avatar, user_type, verified FROM "user"
			WHERE id IN (?) AND active
		`, stringsUnique(id))

	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var pp []*profileDTO

	if err := sqlx.SelectContext(ctx, s.ext, &pp, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Profile, len(pp))
	for i, v := range pp {
		out[i] = &entities.Profile{
			ID:          v.ID,
			Username:    v.Username,
			DisplayName: v.DisplayName,
			Avatar:      v.Avatar,
			Type:        entities.UserType(v.Type),
			Verified:    v.Verified,
		}
	}

	return out, nil
}

func (s pg) Follow(ctx context.Context, follower, followee string) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO follow(follower, followee) VALUES($1, $2) ON CONFLICT DO NOTHING
		`, follower, followee,
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) Unfollow(ctx context.Context, follower, followee string) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			DELETE FROM follow WHERE follower=$1 AND followee=$2
		`, follower, followee,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetFollowing(ctx context.Context, follower string) ([]string, error) {
	var out []string

	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT followee FROM follow WHERE follower=$1`, follower,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return out, nil
}

func (s pg) GetFollowCounts(ctx context.Context, id string) (*storage.FollowCounts, error) {
	var c struct {
		Followers uint32 `db:"followers"`
		Following uint32 `db:"following"`
	}

	if err := sqlx.GetContext(ctx, s.ext, &c, `
			SELECT
				(SELECT COUNT(*) FROM follow WHERE followee=$1) AS followers,
				(SELECT COUNT(*) FROM follow WHERE follower=$1) AS following
		`, id,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &storage.FollowCounts{
		Followers: c.Followers,
		Following: c.Following,
	}, nil
}

func (s pg) CreatePost(ctx context.Context, p *storage.CreatePostParams) error {
	eventID := sql.NullString{}
	if p.EventID != nil {
		eventID = sql.NullString{String: *p.EventID, Valid: true}
	}

	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO post(id, owner, event_id, text, created_at)
			VALUES($1, $2, $3, $4, $5)
		`, p.ID, p.Owner, eventID, p.Text, p.CreatedAt.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

const postColumns = `
	p.id, p.owner, p.event_id, p.text, p.pinned, p.created_at,
	(SELECT COUNT(*) FROM "like" l WHERE l.post_id = p.id) AS likes,
	(SELECT COUNT(*) FROM comment c WHERE c.post_id = p.id) AS comments
`

func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p,
		fmt.Sprintf(`SELECT %s FROM post p WHERE p.id = $1 AND p.active`, postColumns), id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toPost(&p), nil
}

func (s pg) DeletePost(ctx context.Context, id string, timestamp time.Time) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE post SET active=FALSE, deleted_at=$2 WHERE id=$1 AND active`,
		id, timestamp.UTC(),
	)

	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) SetPostPin(ctx context.Context, id string, pinned bool) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE post SET pinned=$2 WHERE id=$1 AND active`,
		id, pinned,
	)

	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListPosts is the single query behind every candidate pool. Interaction
// counts are computed from the like and comment tables in the query itself.
func (s pg) ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]*entities.Post, error) {
	where := []string{"p.active"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(p.AuthorIn) > 0 {
		where = append(where, fmt.Sprintf("p.owner = ANY(%s)", arg(pq.Array(p.AuthorIn))))
	}

	if len(p.ExcludeAuthors) > 0 {
		where = append(where, fmt.Sprintf("NOT (p.owner = ANY(%s))", arg(pq.Array(p.ExcludeAuthors))))
	}

	if p.CreatedAfter != nil {
		where = append(where, fmt.Sprintf("p.created_at > %s", arg(p.CreatedAfter.UTC())))
	}

	if p.VerifiedArtistsOnly {
		where = append(where, `EXISTS (
			SELECT 1 FROM "user" u WHERE u.id = p.owner AND u.user_type = 'artist' AND u.verified AND u.active
		)`)
	}

	outer := make([]string, 0, 2)

	if p.MinInteractions != nil {
		outer = append(outer, fmt.Sprintf("likes + comments >= %s", arg(*p.MinInteractions)))
	}

	if p.InteractedOrCreatedAfter != nil {
		outer = append(outer, fmt.Sprintf("(likes + comments >= 1 OR created_at > %s)", arg(p.InteractedOrCreatedAfter.UTC())))
	}

	order := "created_at DESC, id DESC"
	if p.PinnedFirst {
		order = "pinned DESC, " + order
	}

	q := fmt.Sprintf(`SELECT * FROM (SELECT %s FROM post p WHERE %s) posts`,
		postColumns, strings.Join(where, " AND "))

	if len(outer) > 0 {
		q = fmt.Sprintf("%s WHERE %s", q, strings.Join(outer, " AND "))
	}

	q = fmt.Sprintf("%s ORDER BY %s OFFSET %s LIMIT %s", q, order, arg(p.Offset), arg(p.Limit))

	var pp []*postDTO

	if err := sqlx.SelectContext(ctx, s.ext, &pp, q, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(pp))
	for i, v := range pp {
		out[i] = toPost(v)
	}

	return out, nil
}

func (s pg) SetLike(ctx context.Context, postID, likedBy string, timestamp time.Time) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO "like"(post_id, liked_by, liked_at)
				VALUES($1, $2, $3)
			ON CONFLICT(post_id, liked_by) DO UPDATE SET
				liked_at=excluded.liked_at`,
		postID, likedBy, timestamp.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) DeleteLike(ctx context.Context, postID, likedBy string) error {
	if _, err := s.ext.ExecContext(ctx,
		`DELETE FROM "like" WHERE post_id=$1 AND liked_by=$2`,
		postID, likedBy,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetLikes(ctx context.Context, likedBy string, postID ...string) (map[string]struct{}, error) {
	if len(postID) == 0 {
		return map[string]struct{}{}, nil
	}

	query, args, err := sqlx.In(`
			SELECT post_id FROM "like" WHERE liked_by = ? AND post_id IN (?)
		`, likedBy, postID)

	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var ids []string

	if err := sqlx.SelectContext(ctx, s.ext, &ids, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		out[v] = struct{}{}
	}

	return out, nil
}

func (s pg) CreateComment(ctx context.Context, p *storage.CreateCommentParams) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO comment(id, post_id, owner, text, created_at)
			VALUES($1, $2, $3, $4, $5)
		`, p.ID, p.PostID, p.Owner, p.Text, p.CreatedAt.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListComments(ctx context.Context, postID ...string) (map[string][]*entities.Comment, error) {
	if len(postID) == 0 {
		return map[string][]*entities.Comment{}, nil
	}

	query, args, err := sqlx.In(`
			SELECT id, post_id, owner, text, created_at FROM comment
			WHERE post_id IN (?)
			ORDER BY created_at, id
		`, postID)

	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var cc []*commentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &cc, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make(map[string][]*entities.Comment, len(postID))
	for _, v := range cc {
		out[v.PostID] = append(out[v.PostID], &entities.Comment{
			ID:        v.ID,
			PostID:    v.PostID,
			Owner:     v.Owner,
			Text:      v.Text,
			CreatedAt: v.CreatedAt,
		})
	}

	return out, nil
}

func (s pg) CreateEvent(ctx context.Context, p *storage.CreateEventParams) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO event(id, owner, title, description, venue, starts_at, created_at)
			VALUES($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, p.Owner, p.Title, p.Description, p.Venue, p.StartsAt.UTC(), p.CreatedAt.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

const eventColumns = `
	e.id, e.owner, e.title, e.description, e.venue, e.starts_at, e.created_at,
	(SELECT COUNT(*) FROM event_attendance a WHERE a.event_id = e.id AND a.status = 'going') AS going,
	(SELECT COUNT(*) FROM event_attendance a WHERE a.event_id = e.id AND a.status = 'interested') AS interested
`

func (s pg) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	var e eventDTO

	if err := sqlx.GetContext(ctx, s.ext, &e,
		fmt.Sprintf(`SELECT %s FROM event e WHERE e.id = $1 AND e.active`, eventColumns), id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toEvent(&e), nil
}

func (s pg) GetEvents(ctx context.Context, id ...string) ([]*entities.Event, error) {
	if len(id) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf(`SELECT %s FROM event e WHERE e.id IN (?) AND e.active`, eventColumns),
		stringsUnique(id))

	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var ee []*eventDTO

	if err := sqlx.SelectContext(ctx, s.ext, &ee, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Event, len(ee))
	for i, v := range ee {
		out[i] = toEvent(v)
	}

	return out, nil
}

func (s pg) ListEvents(ctx context.Context, p *storage.ListEventsParams) ([]*entities.Event, error) {
	where := "e.active"
	var args []interface{}

	if p.StartsAfter != nil {
		args = append(args, p.StartsAfter.UTC())
		where = fmt.Sprintf("%s AND e.starts_at > $%d", where, len(args))
	}

	args = append(args, p.Offset, p.Limit)

	q := fmt.Sprintf(`SELECT %s FROM event e WHERE %s ORDER BY e.starts_at, e.id OFFSET $%d LIMIT $%d`,
		eventColumns, where, len(args)-1, len(args))

	var ee []*eventDTO

	if err := sqlx.SelectContext(ctx, s.ext, &ee, q, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Event, len(ee))
	for i, v := range ee {
		out[i] = toEvent(v)
	}

	return out, nil
}

func (s pg) SetAttendance(ctx context.Context, eventID, userID string, status entities.AttendanceStatus, timestamp time.Time) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO event_attendance(event_id, user_id, status, updated_at)
				VALUES($1, $2, $3, $4)
			ON CONFLICT(event_id, user_id) DO UPDATE SET
				status=excluded.status, updated_at=excluded.updated_at`,
		eventID, userID, string(status), timestamp.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetNetworkStats(ctx context.Context) (*entities.NetworkStats, error) {
	var st struct {
		Users  uint64 `db:"users"`
		Posts  uint64 `db:"posts"`
		Events uint64 `db:"events"`
	}

	if err := sqlx.GetContext(ctx, s.ext, &st, `
			SELECT
				(SELECT COUNT(*) FROM "user" WHERE active) AS users,
				(SELECT COUNT(*) FROM post WHERE active) AS posts,
				(SELECT COUNT(*) FROM event WHERE active) AS events
		`,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.NetworkStats{
		Users:  st.Users,
		Posts:  st.Posts,
		Events: st.Events,
	}, nil
}

func toUser(u *userDTO) *entities.User {
	return &entities.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Avatar:       u.Avatar,
		Type:         entities.UserType(u.Type),
		Verified:     u.Verified,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
}

func toPost(p *postDTO) *entities.Post {
	out := entities.Post{
		ID:        p.ID,
		Owner:     p.Owner,
		Text:      p.Text,
		Pinned:    p.Pinned,
		CreatedAt: p.CreatedAt,
		Likes:     p.Likes,
		Comments:  p.Comments,
	}

	if p.EventID.Valid {
		out.EventID = &p.EventID.String
	}

	return &out
}

func toEvent(e *eventDTO) *entities.Event {
	return &entities.Event{
		ID:          e.ID,
		Owner:       e.Owner,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		CreatedAt:   e.CreatedAt,
		Going:       e.Going,
		Interested:  e.Interested,
	}
}

func stringsUnique(s []string) []string {
	m := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
