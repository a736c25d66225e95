package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/dto"
	"github.com/lodelab/lode/internal/service/ledgerservice"
	"github.com/lodelab/lode/pkg/auth"
	"github.com/lodelab/lode/pkg/utils"
)

type Service interface {
	BalanceOf(ctx context.Context, userID int) (int64, error)
	Deposit(ctx context.Context, userID int, amount int64) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID int, amount int64) (*domain.Transaction, error)
	Transactions(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type BalanceHandler struct {
	ledger Service
}

func New(ledger Service) *BalanceHandler {
	return &BalanceHandler{
		ledger: ledger,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the current VND balance for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	current, err := h.ledger.BalanceOf(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current: current,
	})
}

// Deposit godoc
//
//	@Summary		Deposit funds
//	@Description	Credit the user balance with the given amount.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit request payload"
//	@Success		200		{string}	string					"Deposit successful"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		422		{object}	utils.Response			"Invalid amount"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance/deposit [post]
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}

	if _, err := h.ledger.Deposit(r.Context(), userID, req.Amount); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "deposit successful")
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Withdraw from the user balance; fails if funds are insufficient.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{string}	string					"Withdrawal successful"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient funds"
//	@Failure		422		{object}	utils.Response			"Invalid amount"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}

	_, err := h.ledger.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInsufficientFunds):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "withdrawal successful")
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Get the transaction history for the authenticated user, newest first
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO	"Transaction history"
//	@Success		204	{object}	utils.Response				"Transactions not found"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.ledger.Transactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, t := range transactions {
		response[i] = dto.TransactionResponseDTO{
			ID:        t.ID,
			Type:      t.Type,
			Amount:    t.Amount,
			WagerID:   t.WagerID,
			CreatedAt: t.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
