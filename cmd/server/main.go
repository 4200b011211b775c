package main

import (
	"strconv"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/database"
	"casa_arbol_gateway/internal/handlers"
	"casa_arbol_gateway/internal/router"
	"casa_arbol_gateway/internal/services"
	"casa_arbol_gateway/internal/session"
	"casa_arbol_gateway/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger()

	db, err := database.InitDB(
		utils.Getenv("DB_HOST", "localhost"),
		utils.Getenv("DB_PORT", "5432"),
		utils.Getenv("DB_USER", "postgres"),
		utils.Getenv("DB_PASSWORD", "postgres"),
		utils.Getenv("DB_NAME", "casa_arbol"),
		utils.Getenv("DB_SSLMODE", "disable"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Database initialization failed")
	}
	defer db.Close()

	if err := database.ApplySchema(db, utils.Getenv("DB_SCHEMA_FILE", "db/schema.sql")); err != nil {
		log.Fatal().Err(err).Msg("Schema application failed")
	}

	sessions := session.NewManager(session.NewRepository(db), durationEnv("SESSION_TTL", 12*time.Hour))

	backendClient, err := backend.New(backend.Config{
		BaseURL:           utils.Getenv("BACKEND_BASE_URL", "http://localhost:8000"),
		RequestsPerSecond: floatEnv("BACKEND_RPS", 50),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Backend client initialization failed")
	}

	coordinator := cache.New(cache.Config{
		TTL:     durationEnv("CACHE_TTL", 30*time.Second),
		Metrics: cache.NewMetrics(prometheus.DefaultRegisterer),
	})

	authService := services.NewAuthService(backendClient, coordinator, sessions)
	clientService := services.NewClientService(backendClient, coordinator)
	planService := services.NewPlanService(backendClient, coordinator)
	visitService := services.NewVisitService(backendClient, coordinator)
	paymentService := services.NewPaymentService(backendClient, coordinator)
	notificationService := services.NewNotificationService(backendClient, coordinator)
	itemService := services.NewItemService(backendClient, coordinator)
	workspaceService := services.NewWorkspaceService(backendClient, coordinator)
	dashboardService := services.NewDashboardService(clientService, planService, visitService, paymentService)

	// Janitor: evict settled cache entries and purge dead sessions.
	janitor := cron.New()
	_, err = janitor.AddFunc("@every 5m", func() {
		evicted := coordinator.Sweep()
		purged, err := sessions.PurgeExpired()
		if err != nil {
			utils.LogError(err, "Session purge failed")
		}
		utils.LogDebug("Janitor pass", map[string]interface{}{"cache_evicted": evicted, "sessions_purged": purged})
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Janitor scheduling failed")
	}
	janitor.Start()
	defer janitor.Stop()

	if utils.Getenv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.GinLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{utils.Getenv("FRONTEND_ORIGIN", "http://localhost:5173")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Setup(r, router.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Clients:       handlers.NewClientHandler(clientService),
		Plans:         handlers.NewPlanHandler(planService),
		Visits:        handlers.NewVisitHandler(visitService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Items:         handlers.NewItemHandler(itemService),
		Workspace:     handlers.NewWorkspaceHandler(workspaceService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
	}, sessions)

	port := utils.Getenv("PORT", "8080")
	log.Info().Str("port", port).Msg("Starting gateway")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := utils.Getenv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

func floatEnv(key string, fallback float64) float64 {
	raw := utils.Getenv(key, "")
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
