package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/config"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/handler"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/scheduler"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/server"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/service"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/stats"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// Firebase Auth (optional)
	var firebaseAuth *auth.Client
	if cfg.FirebaseProjectID != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOptions(cfg)...)
		if err != nil {
			logger.Error("failed to init firebase app", "err", err)
			os.Exit(1)
		}
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Error("failed to init firebase auth", "err", err)
			os.Exit(1)
		}
		firebaseAuth = client
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	officeRepo := repository.OfficeRepository{DB: pg}
	customerRepo := repository.CustomerRepository{DB: pg}
	propertyRepo := repository.PropertyRepository{DB: pg}
	requestRepo := repository.RequestRepository{DB: pg}
	activityRepo := repository.ActivityRepository{DB: pg}
	saleRepo := repository.SaleRepository{DB: pg}
	dailyStatRepo := repository.DailyStatRepository{DB: pg}
	dashboardRepo := repository.DashboardRepository{DB: pg}
	statsRepo := repository.NewStatsRepository(pg)

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger, FirebaseAuth: firebaseAuth}
	statsRunner := stats.NewRunner(statsRepo, logger, cfg.StatsWorkers)

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	customerHandler := handler.CustomerHandler{Repo: customerRepo}
	propertyHandler := handler.PropertyHandler{Repo: propertyRepo}
	requestHandler := handler.RequestHandler{Repo: requestRepo}
	activityHandler := handler.ActivityHandler{Repo: activityRepo}
	saleHandler := handler.SaleHandler{Repo: saleRepo}
	dashboardHandler := handler.DashboardHandler{Repo: dashboardRepo}
	officeHandler := handler.OfficeHandler{Repo: officeRepo}
	agentHandler := handler.AgentHandler{Users: userRepo, DailyStats: dailyStatRepo}
	dailyStatsHandler := handler.DailyStatsHandler{Runner: statsRunner, Logger: logger}

	router := server.NewRouter(cfg, logger,
		healthHandler, authHandler,
		customerHandler, propertyHandler, requestHandler,
		activityHandler, saleHandler,
		dashboardHandler, officeHandler, agentHandler,
		dailyStatsHandler)

	if cfg.StatsSchedule {
		sched := scheduler.New(statsRunner, logger, cfg.StatsRunHour, cfg.StatsBackfillDays)
		sched.Start()
		defer sched.Stop()
	}

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.Config) []option.ClientOption {
	if cfg.FirebaseCredFile == "" {
		return nil
	}

	cred := cfg.FirebaseCredFile
	// Allow inline JSON or base64-encoded JSON in env to avoid writing a file.
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
