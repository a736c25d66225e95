package service

import (
	"github.com/lodelab/lode/internal/handlers/auth"
	"github.com/lodelab/lode/internal/handlers/balance"
	"github.com/lodelab/lode/internal/handlers/draws"
	"github.com/lodelab/lode/internal/handlers/wagers"

	pkgauth "github.com/lodelab/lode/pkg/auth"

	"github.com/lodelab/lode/internal/repo"
	"github.com/lodelab/lode/internal/service/authservice"
	"github.com/lodelab/lode/internal/service/drawservice"
	"github.com/lodelab/lode/internal/service/ledgerservice"
	"github.com/lodelab/lode/internal/service/wagerservice"
)

type Services struct {
	AuthService   auth.Service
	WagerService  wagers.Service
	LedgerService balance.Service
	DrawService   draws.Service

	Ledger *ledgerservice.Service
	Draws  *drawservice.Service
}

func New(repo *repo.Repositories) *Services {
	ledgerService := ledgerservice.New(repo.BalanceRepo, repo.TransactionRepo, repo.TXManager)
	wagerService := wagerservice.New(repo.WagerRepo, repo.DrawRepo, ledgerService, repo.TXManager)
	drawService := drawservice.New(repo.DrawRepo, repo.RateRepo)
	authService := authservice.New(repo.UserRepo, ledgerService, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:   authService,
		WagerService:  wagerService,
		LedgerService: ledgerService,
		DrawService:   drawService,
		Ledger:        ledgerService,
		Draws:         drawService,
	}
}
