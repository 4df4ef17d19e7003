package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rockrider-app/backend/internal/entities"
	"github.com/rockrider-app/backend/internal/storage"
	"github.com/rockrider-app/backend/internal/storage/postgres"
)

var opts = struct {
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"migrations/postgres" description:"postgres migrations directory"`

	Users    int    `long:"users" env:"USERS" default:"50" description:"users to create"`
	Posts    int    `long:"posts" env:"POSTS" default:"300" description:"posts to create"`
	Events   int    `long:"events" env:"EVENTS" default:"20" description:"events to create"`
	Seed     int64  `long:"seed" env:"SEED" default:"1" description:"random seed"`
	Password string `long:"password" env:"PASSWORD" default:"password123" description:"password of every seeded user"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "seed"
	parser.LongDescription = "Development data seeder"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("seed started")
	logrus.Infof("%+v", opts)

	gofakeit.Seed(opts.Seed)
	rnd := rand.New(rand.NewSource(opts.Seed))

	db := mustGetDB()
	s := postgres.New(db)

	ctx := context.Background()
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	logrus.Info("creating users")

	users := make([]string, 0, opts.Users)
	artists := make([]string, 0)

	for i := 0; i < opts.Users; i++ {
		id := uuid.NewString()

		t := entities.FanUserType
		if rnd.Intn(4) == 0 {
			t = entities.ArtistUserType
		}

		if _, err := s.CreateUser(ctx, &storage.CreateUserParams{
			ID:           id,
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			PasswordHash: string(hash),
			DisplayName:  gofakeit.Name(),
			Type:         t,
			CreatedAt:    now.Add(-time.Duration(rnd.Intn(90*24)) * time.Hour),
		}); err != nil {
			logrus.WithError(err).Fatal("failed to create user")
		}

		users = append(users, id)
		if t == entities.ArtistUserType {
			artists = append(artists, id)

			if rnd.Intn(2) == 0 {
				if _, err := db.ExecContext(ctx, `UPDATE "user" SET verified=TRUE WHERE id=$1`, id); err != nil {
					logrus.WithError(err).Fatal("failed to verify artist")
				}
			}
		}
	}

	logrus.Info("creating follows")

	for _, follower := range users {
		for i := 0; i < rnd.Intn(8); i++ {
			followee := users[rnd.Intn(len(users))]
			if followee == follower {
				continue
			}

			if err := s.Follow(ctx, follower, followee); err != nil {
				logrus.WithError(err).Fatal("failed to follow")
			}
		}
	}

	logrus.Info("creating events")

	events := make([]string, 0, opts.Events)

	for i := 0; i < opts.Events && len(artists) > 0; i++ {
		id := uuid.NewString()

		if err := s.CreateEvent(ctx, &storage.CreateEventParams{
			ID:          id,
			Owner:       artists[rnd.Intn(len(artists))],
			Title:       gofakeit.Sentence(3),
			Description: gofakeit.Paragraph(1, 3, 10, " "),
			Venue:       gofakeit.City(),
			StartsAt:    now.Add(time.Duration(rnd.Intn(60*24)-7*24) * time.Hour),
			CreatedAt:   now,
		}); err != nil {
			logrus.WithError(err).Fatal("failed to create event")
		}

		events = append(events, id)
	}

	logrus.Info("creating posts")

	posts := make([]string, 0, opts.Posts)

	for i := 0; i < opts.Posts; i++ {
		id := uuid.NewString()

		var eventID *string
		if len(events) > 0 && rnd.Intn(10) == 0 {
			eventID = &events[rnd.Intn(len(events))]
		}

		if err := s.CreatePost(ctx, &storage.CreatePostParams{
			ID:        id,
			Owner:     users[rnd.Intn(len(users))],
			EventID:   eventID,
			Text:      gofakeit.Paragraph(1, 2, 12, " "),
			CreatedAt: now.Add(-time.Duration(rnd.Intn(30*24)) * time.Hour),
		}); err != nil {
			logrus.WithError(err).Fatal("failed to create post")
		}

		posts = append(posts, id)

		if rnd.Intn(20) == 0 {
			if err := s.SetPostPin(ctx, id, true); err != nil {
				logrus.WithError(err).Fatal("failed to pin post")
			}
		}
	}

	logrus.Info("creating likes and comments")

	for _, post := range posts {
		for i := 0; i < rnd.Intn(6); i++ {
			if err := s.SetLike(ctx, post, users[rnd.Intn(len(users))], now); err != nil {
				logrus.WithError(err).Fatal("failed to like post")
			}
		}

		for i := 0; i < rnd.Intn(3); i++ {
			if err := s.CreateComment(ctx, &storage.CreateCommentParams{
				ID:        uuid.NewString(),
				PostID:    post,
				Owner:     users[rnd.Intn(len(users))],
				Text:      gofakeit.Sentence(8),
				CreatedAt: now,
			}); err != nil {
				logrus.WithError(err).Fatal("failed to comment post")
			}
		}
	}

	logrus.Info("creating attendance")

	for _, event := range events {
		for i := 0; i < rnd.Intn(10); i++ {
			statuses := []entities.AttendanceStatus{
				entities.GoingAttendanceStatus,
				entities.InterestedAttendanceStatus,
				entities.DeclinedAttendanceStatus,
			}

			if err := s.SetAttendance(ctx, event, users[rnd.Intn(len(users))], statuses[rnd.Intn(len(statuses))], now); err != nil {
				logrus.WithError(err).Fatal("failed to set attendance")
			}
		}
	}

	logrus.Info("seed finished")
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
