package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tritonmech/fieldforms-backend-go/internal/config"
	appHTTP "github.com/tritonmech/fieldforms-backend-go/internal/handler/http"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/cron"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/jwt"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/oauth"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/storage"
	"github.com/tritonmech/fieldforms-backend-go/internal/repository/postgresql"
	attachmentService "github.com/tritonmech/fieldforms-backend-go/internal/service/attachment"
	serviceAuth "github.com/tritonmech/fieldforms-backend-go/internal/service/auth"
	exportService "github.com/tritonmech/fieldforms-backend-go/internal/service/export"
	"github.com/tritonmech/fieldforms-backend-go/internal/service/file"
	recordService "github.com/tritonmech/fieldforms-backend-go/internal/service/record"
	timesheetService "github.com/tritonmech/fieldforms-backend-go/internal/service/timesheet"
	userService "github.com/tritonmech/fieldforms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	timeSheetRepo := postgresql.NewTimeSheetRepository(db)
	attachmentRepo := postgresql.NewAttachmentRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var GoogleService oauth.GoogleService
	if cfg.GoogleEnabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(userRepo, fileService)
	timeSheetSvc := timesheetService.NewTimeSheetService(db, timeSheetRepo)
	attachmentSvc := attachmentService.NewAttachmentService(db, attachmentRepo, timeSheetRepo, fileService)
	recordSvc := recordService.NewRecordService(db, recordRepo)
	exportSvc := exportService.NewExportService(timeSheetRepo, recordRepo, fileService)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	userHandler := appHTTP.NewUserHandler(userSvc)
	timeSheetHandler := appHTTP.NewTimeSheetHandler(timeSheetSvc)
	attachmentHandler := appHTTP.NewAttachmentHandler(attachmentSvc)
	recordHandler := appHTTP.NewRecordHandler(recordSvc)
	exportHandler := appHTTP.NewExportHandler(exportSvc, JWTService, userRepo)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		userHandler,
		timeSheetHandler,
		attachmentHandler,
		recordHandler,
		exportHandler,
		cfg.App.FrontendURL,
		cfg.Storage.BasePath,
		cfg.App.Env,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("purge-expired-refresh-tokens", 6*time.Hour, func(ctx context.Context) error {
		purged, err := JWTRepository.DeleteExpiredRefreshTokens(ctx)
		if err != nil {
			return err
		}
		if purged > 0 {
			slog.Info("Expired refresh tokens purged", "count", purged)
		}
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
