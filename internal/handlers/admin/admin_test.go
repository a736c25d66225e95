package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/dto"
	"github.com/lodelab/lode/internal/service/drawservice"
	"github.com/lodelab/lode/internal/settlement"
)

func NewMock(t *testing.T) (*AdminHandler, *MockDrawService, *MockSettler) {
	ctrl := gomock.NewController(t)
	drawService := NewMockDrawService(ctrl)
	settler := NewMockSettler(ctrl)
	handler := New(drawService, settler)
	defer ctrl.Finish()
	return handler, drawService, settler
}

func TestPublishResultHandler(t *testing.T) {
	handler, drawService, _ := NewMock(t)

	ctx := context.Background()
	validBody := `{
		"date": "2024-11-20",
		"special": "92568",
		"first": "37815",
		"second": ["52847", "91236"],
		"third": ["40517", "82649", "13957", "60238", "75926", "28401"],
		"fourth": ["1947", "6350", "4782", "9013"],
		"fifth": ["5524", "8167", "3390", "7245", "0861", "4473"],
		"sixth": ["347", "128", "905"],
		"seventh": ["47", "83", "20", "56"]
	}`

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful publication",
			body: validBody,
			prepareMock: func() {
				drawService.EXPECT().
					PublishResult(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, d *domain.DrawResult) error {
						assert.Equal(t, "2024-11-20", d.DrawDate)
						assert.Equal(t, "92568", d.Special)
						assert.Len(t, d.Seventh, 4)
						return nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"date":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name: "Result already exists",
			body: validBody,
			prepareMock: func() {
				drawService.EXPECT().
					PublishResult(ctx, gomock.Any()).
					Return(drawservice.ErrResultExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "draw result already published for date",
		},
		{
			name: "Malformed result",
			body: validBody,
			prepareMock: func() {
				drawService.EXPECT().
					PublishResult(ctx, gomock.Any()).
					Return(drawservice.ErrMalformedResult)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: validBody,
			prepareMock: func() {
				drawService.EXPECT().
					PublishResult(ctx, gomock.Any()).
					Return(errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/admin/draws", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.PublishResult(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetRatesHandler(t *testing.T) {
	handler, drawService, _ := NewMock(t)

	ctx := context.Background()
	effectiveFrom := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful rate retrieval",
			prepareMock: func() {
				drawService.EXPECT().
					CurrentRates(ctx).
					Return(&domain.RateTable{
						ID:            3,
						Rates:         map[string]int64{"two_digit_lo": 70, "de_special": 70},
						EffectiveFrom: effectiveFrom,
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				drawService.EXPECT().
					CurrentRates(ctx).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/admin/rates", nil)
			w := httptest.NewRecorder()

			handler.GetRates(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.RatesDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 3, body.Version)
				assert.Equal(t, int64(70), body.Rates["two_digit_lo"])
				assert.Equal(t, effectiveFrom.Format(time.RFC3339), body.EffectiveFrom)
			}
		})
	}
}

func TestSetRatesHandler(t *testing.T) {
	handler, drawService, _ := NewMock(t)

	ctx := context.Background()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful rate update",
			body: `{"rates":{"two_digit_lo":72}}`,
			prepareMock: func() {
				drawService.EXPECT().
					SetRates(ctx, map[string]int64{"two_digit_lo": 72}).
					Return(&domain.RateTable{
						ID:            4,
						Rates:         map[string]int64{"two_digit_lo": 72},
						EffectiveFrom: time.Now(),
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"rates":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name: "Unknown kind",
			body: `{"rates":{"bao_lo":70}}`,
			prepareMock: func() {
				drawService.EXPECT().
					SetRates(ctx, map[string]int64{"bao_lo": 70}).
					Return(nil, drawservice.ErrUnknownKind)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Invalid rate value",
			body: `{"rates":{"two_digit_lo":0}}`,
			prepareMock: func() {
				drawService.EXPECT().
					SetRates(ctx, map[string]int64{"two_digit_lo": 0}).
					Return(nil, drawservice.ErrInvalidRate)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: `{"rates":{"two_digit_lo":72}}`,
			prepareMock: func() {
				drawService.EXPECT().
					SetRates(ctx, map[string]int64{"two_digit_lo": 72}).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPut, "/api/admin/rates", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.SetRates(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestTriggerSettlementHandler(t *testing.T) {
	handler, _, settler := NewMock(t)

	ctx := context.Background()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  *settlement.Report
	}{
		{
			name: "Successful settlement",
			body: `{"date":"2024-11-20"}`,
			prepareMock: func() {
				settler.EXPECT().
					Settle(ctx, "2024-11-20").
					Return(&settlement.Report{
						Date:        "2024-11-20",
						Count:       5,
						Won:         2,
						TotalPayout: 1400000,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &settlement.Report{
				Date:        "2024-11-20",
				Count:       5,
				Won:         2,
				TotalPayout: 1400000,
			},
		},
		{
			name:          "Invalid request body",
			body:          `{"date":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Invalid date",
			body:          `{"date":"today"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid date",
		},
		{
			name: "No result for date",
			body: `{"date":"2024-11-21"}`,
			prepareMock: func() {
				settler.EXPECT().
					Settle(ctx, "2024-11-21").
					Return(nil, settlement.ErrNoResult)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "no draw result for date",
		},
		{
			name: "No rate table",
			body: `{"date":"2024-11-20"}`,
			prepareMock: func() {
				settler.EXPECT().
					Settle(ctx, "2024-11-20").
					Return(nil, settlement.ErrNoRates)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "no rate table configured",
		},
		{
			name: "Internal server error",
			body: `{"date":"2024-11-20"}`,
			prepareMock: func() {
				settler.EXPECT().
					Settle(ctx, "2024-11-20").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/admin/settlement", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.TriggerSettlement(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedBody != nil {
				var body settlement.Report
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, *tt.expectedBody, body)
			}
		})
	}
}
