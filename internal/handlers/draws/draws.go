package draws

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/dto"
	"github.com/lodelab/lode/internal/lottery"
	"github.com/lodelab/lode/pkg/utils"
)

type Service interface {
	ResultByDate(ctx context.Context, date string) (*domain.DrawResult, error)
}

type DrawHandler struct {
	drawService Service
}

func New(drawService Service) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

// GetResult godoc
//
//	@Summary		Get draw result
//	@Description	Get the published draw result for a date (YYYY-MM-DD)
//	@Tags			Draws
//	@Produce		json
//	@Param			date	path		string			true	"Draw date"
//	@Success		200		{object}	dto.DrawResultDTO
//	@Success		204		{object}	utils.Response	"No result for date"
//	@Failure		400		{object}	utils.Response	"Invalid date"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/draws/{date} [get]
func (h *DrawHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date")
		return
	}

	result, err := h.drawService.ResultByDate(r.Context(), date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result == nil {
		utils.RespondWithError(w, http.StatusNoContent, "Result not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DrawResultDTO{
		Date:    result.DrawDate,
		Special: result.Special,
		First:   result.First,
		Second:  result.Second,
		Third:   result.Third,
		Fourth:  result.Fourth,
		Fifth:   result.Fifth,
		Sixth:   result.Sixth,
		Seventh: result.Seventh,
	})
}

// GetView godoc
//
//	@Summary		Get lo view of a draw
//	@Description	Get the trailing 2- and 3-digit endings of all prize numbers for a date
//	@Tags			Draws
//	@Produce		json
//	@Param			date	path		string			true	"Draw date"
//	@Success		200		{object}	dto.DrawViewDTO
//	@Success		204		{object}	utils.Response	"No result for date"
//	@Failure		400		{object}	utils.Response	"Invalid date"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/draws/{date}/view [get]
func (h *DrawHandler) GetView(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date")
		return
	}

	result, err := h.drawService.ResultByDate(r.Context(), date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result == nil {
		utils.RespondWithError(w, http.StatusNoContent, "Result not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DrawViewDTO{
		Date:       result.DrawDate,
		TwoDigit:   lottery.Tails(result, 2),
		ThreeDigit: lottery.Tails(result, 3),
	})
}
