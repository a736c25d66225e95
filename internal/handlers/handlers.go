package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/lodelab/lode/docs"
	adminhandlers "github.com/lodelab/lode/internal/handlers/admin"
	authhandlers "github.com/lodelab/lode/internal/handlers/auth"
	balancehandlers "github.com/lodelab/lode/internal/handlers/balance"
	drawshandlers "github.com/lodelab/lode/internal/handlers/draws"
	wagershandlers "github.com/lodelab/lode/internal/handlers/wagers"
	"github.com/lodelab/lode/internal/service"
	"github.com/lodelab/lode/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WagerHandler interface {
	PlaceWager(w http.ResponseWriter, r *http.Request)
	GetWagers(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type DrawHandler interface {
	GetResult(w http.ResponseWriter, r *http.Request)
	GetView(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	PublishResult(w http.ResponseWriter, r *http.Request)
	GetRates(w http.ResponseWriter, r *http.Request)
	SetRates(w http.ResponseWriter, r *http.Request)
	TriggerSettlement(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	WagerHandler   WagerHandler
	BalanceHandler BalanceHandler
	DrawHandler    DrawHandler
	AdminHandler   AdminHandler
}

func New(s *service.Services, settler adminhandlers.Settler) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		WagerHandler:   wagershandlers.New(s.WagerService),
		BalanceHandler: balancehandlers.New(s.LedgerService),
		DrawHandler:    drawshandlers.New(s.DrawService),
		AdminHandler:   adminhandlers.New(s.Draws, settler),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Route("/wagers", func(r chi.Router) {
					r.Post("/", h.WagerHandler.PlaceWager)
					r.Get("/", h.WagerHandler.GetWagers)
				})
				r.Route("/balance", func(r chi.Router) {
					r.Get("/", h.BalanceHandler.GetBalance)
					r.Post("/deposit", h.BalanceHandler.Deposit)
					r.Post("/withdraw", h.BalanceHandler.Withdraw)
				})
				r.Get("/transactions", h.BalanceHandler.GetTransactions)
			})
		})

		r.Route("/draws", func(r chi.Router) {
			r.Get("/{date}", h.DrawHandler.GetResult)
			r.Get("/{date}/view", h.DrawHandler.GetView)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Post("/draws", h.AdminHandler.PublishResult)
			r.Get("/rates", h.AdminHandler.GetRates)
			r.Put("/rates", h.AdminHandler.SetRates)
			r.Post("/settlement", h.AdminHandler.TriggerSettlement)
		})
	})

	return r
}
