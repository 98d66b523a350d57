package app

import (
	"proptrack-backend/internal/assets"
	"proptrack-backend/internal/auth"
	"proptrack-backend/internal/cases"
	"proptrack-backend/internal/config"
	"proptrack-backend/internal/database"
	"proptrack-backend/internal/health"
	"proptrack-backend/internal/middleware"
	"proptrack-backend/internal/notes"
	"proptrack-backend/internal/projects"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and routes.
// The returned DB and Redis client are owned by the caller for lifecycle
// management (ping at startup, close at shutdown).
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); the client is shared with the health marker
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health (no auth)
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/reset", healthHandlers.Reset)

	// Auth (no auth middleware)
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		DB:         db,
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Protected modules (auth required) ---
	if db != nil {
		assetService := &assets.Service{DB: db}
		assetHandlers := &assets.Handlers{Service: assetService}
		assetGroup := app.Group("/api/v1/assets", middleware.RequireAuth())
		assetGroup.Post("/", assetHandlers.CreateAsset)
		assetGroup.Get("/", assetHandlers.ListAssets)
		assetGroup.Get("/map-markers", assetHandlers.MapMarkers)
		assetGroup.Get("/:id", assetHandlers.GetAsset)
		assetGroup.Put("/:id", assetHandlers.UpdateAsset)
		assetGroup.Delete("/:id", assetHandlers.DeleteAsset)

		projectService := &projects.Service{DB: db}
		projectHandlers := &projects.Handlers{Service: projectService}
		projectGroup := app.Group("/api/v1/projects", middleware.RequireAuth())
		projectGroup.Post("/", projectHandlers.CreateProject)
		projectGroup.Get("/", projectHandlers.ListProjects)
		projectGroup.Post("/assign-asset", projectHandlers.AssignAsset)
		projectGroup.Post("/unassign-asset", projectHandlers.UnassignAsset)
		projectGroup.Get("/:id", projectHandlers.GetProject)
		projectGroup.Put("/:id", projectHandlers.UpdateProject)
		projectGroup.Delete("/:id", projectHandlers.DeleteProject)

		caseService := &cases.Service{DB: db}
		caseHandlers := &cases.Handlers{Service: caseService}
		caseGroup := app.Group("/api/v1/cases", middleware.RequireAuth())
		caseGroup.Post("/", caseHandlers.CreateCase)
		caseGroup.Get("/", caseHandlers.ListCases)
		caseGroup.Get("/:id", caseHandlers.GetCase)
		caseGroup.Put("/:id", caseHandlers.UpdateCase)
		caseGroup.Delete("/:id", caseHandlers.DeleteCase)

		noteService := &notes.Service{DB: db}
		noteHandlers := &notes.Handlers{Service: noteService}
		noteGroup := app.Group("/api/v1/notes", middleware.RequireAuth())
		noteGroup.Post("/", noteHandlers.CreateNote)
		noteGroup.Get("/", noteHandlers.ListNotes)
		noteGroup.Get("/:id", noteHandlers.GetNote)
		noteGroup.Put("/:id", noteHandlers.UpdateNote)
		noteGroup.Delete("/:id", noteHandlers.DeleteNote)
	}

	return app, db, rdb, nil
}
