package wagers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/dto"
	"github.com/lodelab/lode/internal/service/ledgerservice"
	"github.com/lodelab/lode/internal/service/wagerservice"
	"github.com/lodelab/lode/pkg/auth"
	"github.com/lodelab/lode/pkg/utils"
)

type Service interface {
	PlaceWager(ctx context.Context, userID int, kind domain.WagerKind, numbers []string, amount int64) (*domain.Wager, error)
	GetWagers(ctx context.Context, userID int) ([]domain.Wager, error)
}

type WagerHandler struct {
	wagerService Service
}

func New(wagerService Service) *WagerHandler {
	return &WagerHandler{
		wagerService: wagerService,
	}
}

// PlaceWager godoc
//
//	@Summary		Place a wager
//	@Description	Place a wager on the next open draw; the stake is debited atomically.
//	@Tags			Wagers
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PlaceWagerRequestDTO	true	"Wager request payload"
//	@Success		200		{object}	dto.WagerResponseDTO		"Accepted wager"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient funds"
//	@Failure		409		{object}	utils.Response				"Betting closed for date"
//	@Failure		422		{object}	utils.Response				"Invalid numbers or kind"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/wagers [post]
func (h *WagerHandler) PlaceWager(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PlaceWagerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wager, err := h.wagerService.PlaceWager(r.Context(), userID, domain.WagerKind(req.Kind), req.Numbers, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, wagerservice.ErrUnknownKind),
			errors.Is(err, wagerservice.ErrInvalidNumbers),
			errors.Is(err, wagerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, wagerservice.ErrClosedForBetting):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ledgerservice.ErrInsufficientFunds):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toWagerDTO(wager))
}

// GetWagers godoc
//
//	@Summary		Get wager history
//	@Description	Get all wagers of the authenticated user, newest first
//	@Tags			Wagers
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WagerResponseDTO	"Wager history"
//	@Success		204	{object}	utils.Response			"No wagers found"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/wagers [get]
func (h *WagerHandler) GetWagers(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	wagers, err := h.wagerService.GetWagers(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wagers")
		return
	}

	if len(wagers) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Wagers not found")
		return
	}

	response := make([]dto.WagerResponseDTO, len(wagers))
	for i, wager := range wagers {
		response[i] = *toWagerDTO(&wager)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toWagerDTO(w *domain.Wager) *dto.WagerResponseDTO {
	return &dto.WagerResponseDTO{
		ID:        w.ID,
		Kind:      string(w.Kind),
		Numbers:   w.Numbers,
		Amount:    w.Amount,
		Stake:     w.Stake,
		DrawDate:  w.DrawDate,
		Status:    w.Status,
		Payout:    w.Payout,
		CreatedAt: w.CreatedAt,
		SettledAt: w.SettledAt,
	}
}
