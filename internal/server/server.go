// Package server RockRider
//
// RockRider is a social-networking backend: accounts, posts with likes and
// comments, events with attendance, a follow graph and three feed endpoints.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	mm "github.com/rockrider-app/backend/internal/middleware"
	"github.com/rockrider-app/backend/internal/service"
)

const maxBodySize = 16 * 1024

type server struct {
	s    service.Service
	auth *mm.Auth
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, auth *mm.Auth, limiter *mm.RateLimiter, r chi.Router, timeout time.Duration) {
	r.Use(
		chimw.StripSlashes,
		chimw.RealIP,
		chimw.RequestID,
		chimw.Logger,
		chimw.Recoverer,
		chimw.Timeout(timeout),
		cors.AllowAll().Handler,
	)

	srv := server{
		s:    s,
		auth: auth,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", srv.register)
		r.Post("/login", srv.login)

		r.Get("/stats", mm.Cached(10*time.Minute, srv.getNetworkStats))
		r.Get("/users/{id}", srv.getUser)

		r.Group(func(r chi.Router) {
			r.Use(srv.auth.Optional)

			r.Get("/feed/discover", srv.discoverFeed)
			r.Get("/posts/{id}", srv.getPost)
			r.Get("/events", srv.listEvents)
			r.Get("/events/{id}", srv.getEvent)
		})

		r.Group(func(r chi.Router) {
			r.Use(srv.auth.Required)

			r.Get("/feed/following", srv.followingFeed)
			r.Get("/feed/for-you", srv.forYouFeed)

			r.Group(func(r chi.Router) {
				r.Use(limiter.Handle)

				r.Post("/users/{id}/follow", srv.follow)
				r.Delete("/users/{id}/follow", srv.unfollow)

				r.Post("/posts", srv.createPost)
				r.Delete("/posts/{id}", srv.deletePost)
				r.Post("/posts/{id}/pin", srv.pinPost)
				r.Delete("/posts/{id}/pin", srv.unpinPost)
				r.Post("/posts/{id}/like", srv.likePost)
				r.Delete("/posts/{id}/like", srv.unlikePost)
				r.Post("/posts/{id}/comments", srv.addComment)

				r.Post("/events", srv.createEvent)
				r.Put("/events/{id}/attendance", srv.setAttendance)
			})
		})
	})
}
