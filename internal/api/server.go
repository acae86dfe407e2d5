package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"justfood/internal/content"
	"justfood/internal/fanout"
	"justfood/internal/order"
	"justfood/internal/payment"
	"justfood/internal/user"
	"justfood/pkg/config"
	"justfood/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg      *config.Config
	mylog    *logger.Logger
	orders   *order.Service
	hub      *fanout.Hub
	users    *user.Repo
	payments *payment.Client
	content  *content.Client
	srv      *http.Server
}

func NewServer(
	cfg *config.Config,
	mylog *logger.Logger,
	orders *order.Service,
	hub *fanout.Hub,
	users *user.Repo,
	payments *payment.Client,
	contentClient *content.Client,
) *Server {
	s := &Server{
		cfg:      cfg,
		mylog:    mylog,
		orders:   orders,
		hub:      hub,
		users:    users,
		payments: payments,
		content:  contentClient,
	}

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: s.routes(),
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.authenticate)

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.handleCreateOrder)
			r.Get("/{orderNumber}", s.handleGetOrder)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/profile", s.handleProfile)
				r.Get("/orders", s.handleUserOrders)
				r.Get("/addresses", s.handleListAddresses)
				r.Post("/addresses", s.handleCreateAddress)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireStaff)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/orders", s.handleListOrders)
			r.Patch("/orders/{orderNumber}/status", s.handleTransition)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/intent", s.handlePaymentIntent)
			r.Post("/verify", s.handlePaymentVerify)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", s.handleMenuItems)
			r.Get("/categories", s.handleMenuCategories)
		})

		r.Post("/webhooks/sanity", s.handleSanityWebhook)
	})

	r.Get("/ws", s.handleWebsocket)

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.mylog.Info("", "server_started",
			fmt.Sprintf("HTTP server listening on %s", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		s.mylog.Info("", "graceful_shutdown_started", "Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("", "graceful_shutdown_failed", "Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
		s.mylog.Info("", "graceful_shutdown_completed", "HTTP server shut down gracefully")
		return nil
	case err := <-errCh:
		return err
	}
}
