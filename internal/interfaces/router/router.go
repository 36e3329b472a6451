package router

import (
	"errors"
	"net/http"
	"time"

	authsvc "rmclub-backend/internal/application/auth"
	custsvc "rmclub-backend/internal/application/customers"
	dashsvc "rmclub-backend/internal/application/dashboard"
	notifsvc "rmclub-backend/internal/application/notifications"
	"rmclub-backend/internal/config"
	"rmclub-backend/internal/infrastructure/database"
	"rmclub-backend/internal/infrastructure/metrics"
	"rmclub-backend/internal/infrastructure/push"
	authhandler "rmclub-backend/internal/interfaces/handlers/auth"
	custhandler "rmclub-backend/internal/interfaces/handlers/customers"
	dashhandler "rmclub-backend/internal/interfaces/handlers/dashboard"
	healthhandler "rmclub-backend/internal/interfaces/handlers/health"
	notifhandler "rmclub-backend/internal/interfaces/handlers/notifications"
	pfhandler "rmclub-backend/internal/interfaces/handlers/portfolio"
	"rmclub-backend/internal/middleware"
	"rmclub-backend/internal/pkg/constants"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const metricsNamespace = "rmclub"

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	return database.Ping(g.db)
}

// CreateApp wires config, stores, middleware and routes. Domain routes are
// mounted only when DATABASE_URL is set.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil, nil, errors.New("REDIS_URL is required")
	}
	rdb, err := middleware.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		JSONEncoder:             json.Marshal,
		JSONDecoder:             json.Unmarshal,
	})
	m := metrics.New(metricsNamespace)
	expo := push.NewExpoClient(cfg.ExpoPushURL, cfg.ExpoAccessToken)

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Session(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Metrics(m))

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		Push:           expo,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}
	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Post("/logout-all", middleware.RequireAuth(), ah.LogoutAll)

	if db != nil {
		cs := &custsvc.Service{DB: db, Currency: cfg.Currency}
		ns := &notifsvc.Service{
			DB:       db,
			Push:     expo,
			Metrics:  m,
			Location: cfg.DisplayTimezone,
			Currency: cfg.Currency,
		}

		// Admin (RM + admin)
		dh := &dashhandler.Handlers{Service: &dashsvc.Service{
			DB:          db,
			Now:         time.Now,
			Location:    cfg.DisplayTimezone,
			RecentLimit: cfg.RecentLimit,
			Currency:    cfg.Currency,
		}}
		ch := &custhandler.Handlers{Service: cs}
		nh := &notifhandler.Handlers{Service: ns}
		ag := app.Group("/api/v1/admin", middleware.RequireAuth())
		ag.Get("/dashboard", middleware.AuthorizePermission(constants.ViewDashboard), dh.Get)
		ag.Get("/customers", middleware.AuthorizePermission(constants.ViewCustomers), ch.List)
		ag.Get("/customers/:id", middleware.AuthorizePermission(constants.ViewCustomers), ch.Profile)
		ag.Post("/customers/:id/remind", middleware.AuthorizePermission(constants.SendReminders), nh.SendReminder)

		// Customer app
		ph := &pfhandler.Handlers{Service: cs}
		pg := app.Group("/api/v1/portfolio", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ViewPortfolio))
		pg.Get("/summary", ph.Summary)
		pg.Get("/upcoming-payments", ph.UpcomingPayments)

		ng := app.Group("/api/v1/notifications", middleware.RequireAuth())
		ng.Post("/register-token", middleware.AuthorizePermission(constants.RegisterDevice), nh.RegisterToken)
	}

	return app, db, rdb, nil
}

// Handler exposes app as a net/http handler.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
