package main

import (
	"time"

	"github.com/domgielar/UDash/internal/env"
	"github.com/domgielar/UDash/internal/queue"
	"github.com/domgielar/UDash/internal/ratelimiter"
	"github.com/domgielar/UDash/internal/scraper"
	"github.com/domgielar/UDash/internal/service"
	"github.com/domgielar/UDash/internal/store/memory"
	"github.com/domgielar/UDash/internal/worker"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:        env.GetString("ADDR", ":8080"),
		env:         env.GetString("ENV", "development"),
		frontendURL: env.GetString("FRONTEND_URL", "https://www.udash.tech"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		menu: menuConfig{
			baseURL:      env.GetString("MENU_BASE_URL", scraper.DefaultBaseURL),
			timeout:      time.Second * time.Duration(env.GetInt("MENU_FETCH_TIMEOUT_SECONDS", 15)),
			mockFallback: env.GetBool("MENU_MOCK_FALLBACK", false),
		},
		cooldown: time.Second * time.Duration(env.GetInt("DELIVERED_COOLDOWN_SECONDS", 5)),
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// storage
	storage := memory.New()
	orderRepo := memory.NewOrderRepository(storage)
	dasherRepo := memory.NewDasherRepository(storage)

	// in-process broker for order status notifications
	broker := queue.NewMemoryBroker()

	// upstream menu client
	menuClient := scraper.New(scraper.Config{
		BaseURL: cfg.menu.baseURL,
		Timeout: cfg.menu.timeout,
	})

	menuService := service.NewMenuService(menuClient, service.MenuConfig{
		MockFallback: cfg.menu.mockFallback,
	}, logger)

	orderService := service.NewOrderService(orderRepo, dasherRepo, broker, logger)

	statusWorker := worker.NewOrderStatusWorker(orderRepo, broker, cfg.cooldown, logger)

	app := &application{
		config:       cfg,
		logger:       logger,
		rateLimiter:  rateLimiter,
		storage:      storage,
		broker:       broker,
		menuService:  menuService,
		orderService: orderService,
		statusWorker: statusWorker,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
