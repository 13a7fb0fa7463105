package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowai-dashboard/config"
	"flowai-dashboard/handlers"
	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
	"flowai-dashboard/services"
	"flowai-dashboard/utils"
	"flowai-dashboard/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := utils.OpenDB(cfg.DatabaseURL, cfg.DataDir)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}
	if err := db.AutoMigrate(
		&models.StatsSnapshot{},
		&models.LogEntry{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	titles, err := services.LoadTitleTable(cfg.TitlesFile)
	if err != nil {
		log.Fatal("failed to load task titles:", err)
	}

	sortCriterion, err := services.ParseSortCriterion(cfg.DefaultSort)
	if err != nil {
		log.Printf("⚠️  %v, using default order", err)
		sortCriterion = services.SortDefault
	}

	translator := i18n.NewTranslator(cfg.DefaultLanguage)
	backend := services.NewBackendClient(cfg.BackendURL, utils.NewHTTPClient(cfg.BackendTimeout))

	hub := services.NewEventHub(translator, db)
	presenter := services.MultiPresenter{hub, &services.ConsolePresenter{Translator: translator, ASCII: cfg.ASCIILog}}

	session := services.NewSession(backend, presenter, translator, titles)
	session.SetSort(sortCriterion)

	statsService := services.NewStatsService(backend, db, hub)
	hub.SetAggregateRefresher(statsService)
	agent := services.NewAgent(session, statsService, hub)

	var reports *services.ReportService
	if cfg.R2.Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, cfg.R2)
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		reports = services.NewReportService(uploader, statsService, hub)
		log.Printf("✅ Report export enabled (bucket %s)", cfg.R2.Bucket)
	} else {
		log.Println("⚠️  R2 settings incomplete, report export disabled")
	}

	schedule, err := workers.NewSchedule()
	if err != nil {
		log.Fatal("failed to start scheduler:", err)
	}
	poller := workers.NewPoller(ctx, session, schedule)

	app := fiber.New(fiber.Config{
		AppName:               "flowai-dashboard",
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Origins(),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Accept-Language, Cache-Control",
		MaxAge:       86400, // 24 hours
	}))

	handlers.SetupDashboardRoutes(app, &handlers.Dashboard{
		Session:         session,
		Agent:           agent,
		Poller:          poller,
		Hub:             hub,
		Stats:           statsService,
		Reports:         reports,
		DefaultInterval: cfg.AutoWorkInterval,
	}, cfg.DashboardToken)

	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := agent.LoadInitialData(loadCtx); err != nil {
			log.Printf("❌ Initial load failed: %v", err)
		}
		if cfg.AutoStart {
			if _, err := poller.Start(cfg.AutoWorkInterval); err != nil {
				log.Printf("❌ Failed to start auto work: %v", err)
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.DashboardAddr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Dashboard running on %s", cfg.DashboardAddr)
	log.Printf("✅ Backend: %s", cfg.BackendURL)
	log.Printf("✅ Auto work interval: %s (auto start: %t)", cfg.AutoWorkInterval, cfg.AutoStart)
	if cfg.DashboardToken == "" {
		log.Println("⚠️  DASHBOARD_TOKEN not set, dashboard API is unauthenticated")
	}

	<-ctx.Done()
	log.Println("Shutting down dashboard...")

	if _, err := poller.Stop(); err != nil {
		log.Printf("Poller stop error: %v", err)
	}
	if err := schedule.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
