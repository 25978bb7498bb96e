package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"koon7r-storefront/app/controller"
	"koon7r-storefront/app/middleware"
	"koon7r-storefront/app/router"
	"koon7r-storefront/auth"
	"koon7r-storefront/cart"
	"koon7r-storefront/compositor"
	"koon7r-storefront/config"
	"koon7r-storefront/db"
	"koon7r-storefront/notify"
	"koon7r-storefront/pricing"
	"koon7r-storefront/repository"
	"koon7r-storefront/service"
)

// App is the wired HTTP application
type App struct {
	Handler http.Handler

	closers []func() error
	stop    chan struct{}
}

// Close releases the resources opened by Initialize
func (a *App) Close() {
	close(a.stop)
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("⚠️ Close: %v", err)
		}
	}
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{stop: make(chan struct{})}

	// Initialize database connection
	if err := db.InitDB(ctx, cfg.DatabaseDSN()); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.closers = append(a.closers, db.CloseDB)

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			a.Close()
			return nil, err
		}
	}

	handler, err := a.wire(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Handler = otelhttp.NewHandler(middleware.Logging(handler), "koon7r-storefront")
	return a, nil
}

func (a *App) wire(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	engine, err := pricing.NewEngine(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	// Repositories
	orderRepo := repository.NewOrderRepository()
	messageRepo := repository.NewMessageRepository()
	settingsRepo := repository.NewSettingsRepository()
	userRepo := repository.NewUserRepository()
	designRepo := repository.NewCustomDesignRepository()

	// Auth
	credentials, err := auth.NewStaticCredentialStore(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, err
	}
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	// Notification channels
	notifiers := []notify.Notifier{notify.OwnerLogNotifier{}}
	telegram := notify.NewTelegramClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, nil)
	if telegram.Enabled() {
		notifiers = append(notifiers, telegram)
	} else {
		log.Printf("⚠️ Initialize: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set, Telegram notifications disabled")
	}

	archive, err := newDesignArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := a.newCartStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Compositing
	mockups := compositor.NewMockupRegistry(cfg.MockupFront, cfg.MockupBack)
	designService := service.NewDesignService(compositor.New(
		compositor.NewSourceLoader(nil, ""),
		compositor.NewUploadLoader(),
		mockups,
		cfg.CanvasSize,
	))

	sheetService, err := service.NewOrderSheetService(cfg.ChromePath, "")
	if err != nil {
		return nil, err
	}

	// Services
	cartService := service.NewCartService(store, engine, designService)
	orderService := service.NewOrderService(orderRepo, designRepo, engine, notifiers, archive)
	messageService := service.NewMessageService(messageRepo, notifiers)
	adminService := service.NewAdminService(orderRepo, designRepo, messageRepo, settingsRepo)
	authService := service.NewAuthService(credentials, userRepo)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		proxies, err := cfg.TrustedProxyPrefixes()
		if err != nil {
			return nil, err
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, proxies...)
		limiter.StartCleanup(10*time.Minute, a.stop)
	}

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(service.NewCatalogService(engine)),
		Design:  controller.NewDesignController(designService),
		Cart:    controller.NewCartController(cartService, cfg.IsProduction()),
		Order:   controller.NewOrderController(orderService, cartService),
		Message: controller.NewMessageController(messageService),
		Admin:   controller.NewAdminController(adminService, sheetService),
		Auth:    controller.NewAuthController(authService, sessions),
	}

	return router.SetupRoutes(controllers, sessions, limiter), nil
}

// newDesignArchive returns nil for DESIGN_ARCHIVE=none
func newDesignArchive(ctx context.Context, cfg *config.Config) (service.DesignArchiveInterface, error) {
	switch cfg.DesignArchive {
	case "drive":
		log.Printf("📦 Initialize: Archiving designs to Drive folder %s", cfg.DriveFolderID)
		return service.NewDriveDesignArchive(ctx, cfg.GoogleCredentialsPath, cfg.DriveFolderID)
	case "local":
		log.Printf("📦 Initialize: Archiving designs under %s", cfg.DesignArchiveDir)
		return service.NewLocalDesignArchive(cfg.DesignArchiveDir)
	default:
		log.Printf("⚠️ Initialize: Design archiving disabled")
		return nil, nil
	}
}

// newCartStore returns a Redis store when REDIS_URL is set, else an in-process store
func (a *App) newCartStore(ctx context.Context, cfg *config.Config) (cart.Store, error) {
	if cfg.RedisURL == "" {
		log.Printf("⚠️ Initialize: REDIS_URL not set, carts are kept in memory")
		return cart.NewMemoryStore(), nil
	}

	store, err := cart.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	a.closers = append(a.closers, store.Close)
	log.Printf("✅ Initialize: Carts are stored in Redis")
	return store, nil
}
