package repo

import (
	"github.com/lodelab/lode/internal/pg"
	balancerepo "github.com/lodelab/lode/internal/repo/balance-repo"
	drawrepo "github.com/lodelab/lode/internal/repo/draw-repo"
	raterepo "github.com/lodelab/lode/internal/repo/rate-repo"
	transactionrepo "github.com/lodelab/lode/internal/repo/transaction-repo"
	userrepo "github.com/lodelab/lode/internal/repo/user-repo"
	wagerrepo "github.com/lodelab/lode/internal/repo/wager-repo"
)

// Repositories holds the concrete repositories; each service narrows them
// to the interface it declares.
type Repositories struct {
	UserRepo        *userrepo.Repository
	WagerRepo       *wagerrepo.Repository
	BalanceRepo     *balancerepo.Repository
	TransactionRepo *transactionrepo.Repository
	DrawRepo        *drawrepo.Repository
	RateRepo        *raterepo.Repository

	TXManager pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		WagerRepo:       wagerrepo.New(conn, txManager),
		BalanceRepo:     balancerepo.New(conn, txManager),
		TransactionRepo: transactionrepo.New(conn, txManager),
		DrawRepo:        drawrepo.New(conn, txManager),
		RateRepo:        raterepo.New(conn),

		TXManager: txManager,
	}
}
