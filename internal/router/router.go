package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/config"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/handlers"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/middleware"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository/postgres"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/service"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))

	// Repos + services
	users := postgres.NewUserRepo(db)
	sessions := postgres.NewSessionRepo(db)
	entries := postgres.NewEntryRepo(db)
	auth := service.NewAuthService(users, sessions, cfg.JWTSecret)

	r.Use(middleware.WithAuth(auth))

	ah := handlers.NewAuthHTTP(auth, users, entries, log)
	ph := handlers.NewProfileHTTP(users, cfg.UploadDir, log)
	wh := handlers.NewWorkEntryHTTP(entries, log)
	rh := handlers.NewReportsHTTP(entries, users, log)

	// Health
	r.Get("/healthz", handlers.Health())

	// Uploaded profile images, served back verbatim.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", ah.Me())
			r.Post("/logout", ah.Logout())

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(models.RoleAdmin))
				r.Post("/create-admin", ah.CreateAdmin())
				r.Get("/students", ah.StudentsWithEntries())
				r.Get("/admins", ah.Admins())
			})
		})
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", ph.Me())
		r.Post("/me/image", ph.UploadImage())
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(models.RoleStudent))
			r.Patch("/me", ph.Update())
			r.Post("/me/submit", ph.Submit())
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(models.RoleAdmin))
			r.Get("/students", ph.ListStudents())
			r.Get("/students/{id}", ph.GetStudent())
			r.Patch("/students/{id}/status", ph.SetStudentStatus())
		})
	})

	r.Route("/api/work-entries", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", wh.Create())
		r.Get("/my-entries", wh.MyEntries())
		r.Delete("/{id}", wh.Delete())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(models.RoleAdmin))
			r.Get("/", wh.ListAll())
			r.Patch("/{id}/status", wh.SetStatus())
		})
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireSelfOrRoles("studentId", models.RoleAdmin))

		r.Get("/monthly/{studentId}/{year}/{month}", rh.Monthly())
		r.Get("/available-months/{studentId}", rh.AvailableMonths())
	})

	return r
}
