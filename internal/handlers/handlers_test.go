package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/lodelab/lode/docs"
	"github.com/lodelab/lode/internal/handlers/admin"
	"github.com/lodelab/lode/internal/handlers/auth"
	"github.com/lodelab/lode/internal/handlers/balance"
	"github.com/lodelab/lode/internal/handlers/draws"
	"github.com/lodelab/lode/internal/handlers/wagers"
	"github.com/lodelab/lode/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:   auth.NewMockService(ctrl),
		WagerService:  wagers.NewMockService(ctrl),
		LedgerService: balance.NewMockService(ctrl),
		DrawService:   draws.NewMockService(ctrl),
	}
	settler := admin.NewMockSettler(ctrl)

	h := New(services, settler)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockWagerHandler := NewMockWagerHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockDrawHandler := NewMockDrawHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockWagerHandler.EXPECT().PlaceWager(gomock.Any(), gomock.Any()).AnyTimes()
	mockWagerHandler.EXPECT().GetWagers(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().Deposit(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()
	mockDrawHandler.EXPECT().GetResult(gomock.Any(), gomock.Any()).AnyTimes()
	mockDrawHandler.EXPECT().GetView(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().PublishResult(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().GetRates(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().SetRates(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().TriggerSettlement(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		WagerHandler:   mockWagerHandler,
		BalanceHandler: mockBalanceHandler,
		DrawHandler:    mockDrawHandler,
		AdminHandler:   mockAdminHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"POST", "/api/user/wagers/", http.StatusUnauthorized},
		{"GET", "/api/user/wagers/", http.StatusUnauthorized},
		{"GET", "/api/user/balance/", http.StatusUnauthorized},
		{"POST", "/api/user/balance/deposit", http.StatusUnauthorized},
		{"POST", "/api/user/balance/withdraw", http.StatusUnauthorized},
		{"GET", "/api/user/transactions", http.StatusUnauthorized},
		{"GET", "/api/draws/2024-11-20", http.StatusOK},
		{"GET", "/api/draws/2024-11-20/view", http.StatusOK},
		{"POST", "/api/admin/draws", http.StatusUnauthorized},
		{"GET", "/api/admin/rates", http.StatusUnauthorized},
		{"PUT", "/api/admin/rates", http.StatusUnauthorized},
		{"POST", "/api/admin/settlement", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
