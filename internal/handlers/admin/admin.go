package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/dto"
	"github.com/lodelab/lode/internal/service/drawservice"
	"github.com/lodelab/lode/internal/settlement"
	"github.com/lodelab/lode/pkg/utils"
)

type DrawService interface {
	PublishResult(ctx context.Context, d *domain.DrawResult) error
	CurrentRates(ctx context.Context) (*domain.RateTable, error)
	SetRates(ctx context.Context, rates map[string]int64) (*domain.RateTable, error)
}

type Settler interface {
	Settle(ctx context.Context, date string) (*settlement.Report, error)
}

type AdminHandler struct {
	drawService DrawService
	settler     Settler
}

func New(drawService DrawService, settler Settler) *AdminHandler {
	return &AdminHandler{
		drawService: drawService,
		settler:     settler,
	}
}

// PublishResult godoc
//
//	@Summary		Publish a draw result
//	@Description	Publish the official draw result for a date; immutable once stored
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DrawResultDTO	true	"Draw result payload"
//	@Success		200		{string}	string				"Result published"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		409		{object}	utils.Response		"Result already exists"
//	@Failure		422		{object}	utils.Response		"Malformed result"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/admin/draws [post]
func (h *AdminHandler) PublishResult(w http.ResponseWriter, r *http.Request) {
	var req dto.DrawResultDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := &domain.DrawResult{
		DrawDate: req.Date,
		Special:  req.Special,
		First:    req.First,
		Second:   req.Second,
		Third:    req.Third,
		Fourth:   req.Fourth,
		Fifth:    req.Fifth,
		Sixth:    req.Sixth,
		Seventh:  req.Seventh,
	}

	err := h.drawService.PublishResult(r.Context(), result)
	if err != nil {
		switch {
		case errors.Is(err, drawservice.ErrResultExists):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, drawservice.ErrMalformedResult):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "result published")
}

// GetRates godoc
//
//	@Summary		Get current rate table
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.RatesDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/rates [get]
func (h *AdminHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	table, err := h.drawService.CurrentRates(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RatesDTO{
		Version:       table.ID,
		Rates:         table.Rates,
		EffectiveFrom: table.EffectiveFrom.Format(time.RFC3339),
	})
}

// SetRates godoc
//
//	@Summary		Replace the rate table
//	@Description	Append a new rate table version, effective immediately
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RatesDTO	true	"Rates payload"
//	@Success		200		{object}	dto.RatesDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Unknown kind or invalid rate"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/rates [put]
func (h *AdminHandler) SetRates(w http.ResponseWriter, r *http.Request) {
	var req dto.RatesDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	table, err := h.drawService.SetRates(r.Context(), req.Rates)
	if err != nil {
		switch {
		case errors.Is(err, drawservice.ErrUnknownKind), errors.Is(err, drawservice.ErrInvalidRate):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RatesDTO{
		Version:       table.ID,
		Rates:         table.Rates,
		EffectiveFrom: table.EffectiveFrom.Format(time.RFC3339),
	})
}

// TriggerSettlement godoc
//
//	@Summary		Trigger settlement for a date
//	@Description	Settle all pending wagers for a date that has a published result
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SettlementRequestDTO	true	"Settlement request payload"
//	@Success		200		{object}	settlement.Report
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		409		{object}	utils.Response	"No result for date"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/settlement [post]
func (h *AdminHandler) TriggerSettlement(w http.ResponseWriter, r *http.Request) {
	var req dto.SettlementRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := time.Parse(domain.DateLayout, req.Date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date")
		return
	}

	report, err := h.settler.Settle(r.Context(), req.Date)
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrNoResult), errors.Is(err, settlement.ErrNoRates):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}
