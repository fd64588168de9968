package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/handler/http/middleware"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	timeSheetHandler TimeSheetHandler,
	attachmentHandler AttachmentHandler,
	recordHandler RecordHandler,
	exportHandler ExportHandler,
	frontendURL string,
	uploadsBasePath string,
	appEnv string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldforms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Stored attachments, signatures and exports
	fileServer := http.FileServer(http.Dir(uploadsBasePath))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// PDF downloads accept either an access token or a short-lived
		// export token in the query string, so they sit outside the
		// AuthRequired group; the handler resolves the actor itself.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Get("/forms/daily-time-sheet/{id}/pdf", exportHandler.TimeSheetPDF)
			r.Get("/records/{id}/pdf", exportHandler.RecordPDF)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Profile)
				r.Post("/me/signature", userHandler.UploadSignature)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", userHandler.List)
					r.Patch("/{id}/role", userHandler.UpdateRole)
				})
			})

			r.With(middleware.RequireAssignedRole).Get("/exports/token", exportHandler.ExportToken)
			r.With(middleware.RequireAssignedRole).Get("/folders", recordHandler.Folders)

			r.Route("/forms/daily-time-sheet", func(r chi.Router) {
				r.Use(middleware.RequireAssignedRole)

				r.Route("/attachments", func(r chi.Router) {
					r.Get("/", attachmentHandler.List)
					r.Post("/", attachmentHandler.Save)
				})

				r.With(middleware.RequirePermission(user.PermissionTimeSheetCreate)).Post("/", timeSheetHandler.Create)
				r.Get("/", timeSheetHandler.List)
				r.Get("/{id}", timeSheetHandler.Get)
				r.Patch("/{id}", timeSheetHandler.Update)

				// Supervisor or admin only
				r.With(middleware.RequireSupervisor).Delete("/{id}", timeSheetHandler.Delete)
			})

			r.Route("/records", func(r chi.Router) {
				r.Use(middleware.RequireAssignedRole)

				r.With(middleware.RequirePermission(user.PermissionRecordCreate)).Post("/", recordHandler.Create)
				r.Get("/", recordHandler.List)
				r.Get("/{id}", recordHandler.Get)
				r.Put("/{id}", recordHandler.Update)

				// Supervisor or admin only
				r.With(middleware.RequireSupervisor).Delete("/{id}", recordHandler.Delete)
			})
		})
	})
	return r
}
