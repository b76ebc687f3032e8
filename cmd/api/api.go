package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/domgielar/UDash/internal/queue"
	"github.com/domgielar/UDash/internal/ratelimiter"
	"github.com/domgielar/UDash/internal/service"
	"github.com/domgielar/UDash/internal/store/memory"
	"github.com/domgielar/UDash/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type application struct {
	config       config
	logger       *zap.SugaredLogger
	rateLimiter  ratelimiter.Limiter
	storage      *memory.Storage
	broker       queue.Broker
	menuService  *service.MenuService
	orderService *service.OrderService
	statusWorker *worker.OrderStatusWorker
}

type config struct {
	addr        string
	env         string
	frontendURL string
	rateLimiter ratelimiter.Config
	menu        menuConfig
	cooldown    time.Duration
}

type menuConfig struct {
	baseURL      string
	timeout      time.Duration
	mockFallback bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)

	r.Get("/healthz", app.healthCheckHandler)

	r.Get("/grabngo-menu", app.getMenuHandler)
	r.Post("/calculate-delivery-fee", app.calculateDeliveryFeeHandler)

	r.Post("/place-order", app.placeOrderHandler)
	r.Route("/order/{order_id}", func(r chi.Router) {
		r.Get("/", app.getOrderHandler)
		r.Post("/cancel", app.cancelOrderHandler)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/available", app.availableOrdersHandler)
		r.Post("/{order_id}/accept", app.acceptOrderHandler)
		r.Patch("/{order_id}/status", app.updateOrderStatusHandler)
	})

	r.Get("/dashers/{dasher_id}/earnings", app.dasherEarningsHandler)

	return r
}

func (app *application) run(mux http.Handler) error {
	if app.statusWorker != nil {
		if err := app.statusWorker.Start(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.statusWorker != nil {
			app.statusWorker.Stop()
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing broker", "error", err)
			}
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing storage", "error", err)
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
