package drawservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/lodelab/lode/internal/domain"
	drawrepo "github.com/lodelab/lode/internal/repo/draw-repo"
)

func NewMock(t *testing.T) (*Service, *MockDrawRepo, *MockRateRepo) {
	ctrl := gomock.NewController(t)
	drawRepo := NewMockDrawRepo(ctrl)
	rateRepo := NewMockRateRepo(ctrl)
	service := New(drawRepo, rateRepo)
	defer ctrl.Finish()
	return service, drawRepo, rateRepo
}

func validDraw() *domain.DrawResult {
	return &domain.DrawResult{
		DrawDate: "2024-11-20",
		Special:  "92568",
		First:    "37815",
		Second:   []string{"52847", "91236"},
		Third:    []string{"40517", "82649", "13957", "60238", "75926", "28401"},
		Fourth:   []string{"1947", "6350", "4782", "9013"},
		Fifth:    []string{"5524", "8167", "3390", "7245", "0861", "4473"},
		Sixth:    []string{"347", "128", "905"},
		Seventh:  []string{"47", "83", "20", "56"},
	}
}

func TestPublishResult(t *testing.T) {
	service, drawRepo, _ := NewMock(t)

	tests := []struct {
		name          string
		draw          *domain.DrawResult
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Successful publish",
			draw: validDraw(),
			prepareMock: func() {
				drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(nil, nil)
				drawRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "Duplicate result for date",
			draw: validDraw(),
			prepareMock: func() {
				drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(validDraw(), nil)
			},
			expectedError: ErrResultExists,
		},
		{
			name: "Concurrent publish loses the insert race",
			draw: validDraw(),
			prepareMock: func() {
				drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(nil, nil)
				drawRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(drawrepo.ErrDuplicateDate)
			},
			expectedError: ErrResultExists,
		},
		{
			name: "Malformed date",
			draw: func() *domain.DrawResult {
				d := validDraw()
				d.DrawDate = "20-11-2024"
				return d
			}(),
			prepareMock:   nil,
			expectedError: ErrMalformedResult,
		},
		{
			name: "Wrong tier cardinality",
			draw: func() *domain.DrawResult {
				d := validDraw()
				d.Sixth = []string{"347"}
				return d
			}(),
			prepareMock:   nil,
			expectedError: ErrMalformedResult,
		},
		{
			name: "Repository error surfaces",
			draw: validDraw(),
			prepareMock: func() {
				drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			err := service.PublishResult(context.Background(), tt.draw)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorContains(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResultByDate(t *testing.T) {
	service, drawRepo, _ := NewMock(t)

	draw := validDraw()
	drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(draw, nil)

	result, err := service.ResultByDate(context.Background(), "2024-11-20")
	assert.NoError(t, err)
	assert.Equal(t, draw, result)

	drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-21").Return(nil, nil)

	result, err = service.ResultByDate(context.Background(), "2024-11-21")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCurrentRates(t *testing.T) {
	service, _, rateRepo := NewMock(t)

	table := &domain.RateTable{ID: 3, Rates: map[string]int64{"two_digit_lo": 70}}
	rateRepo.EXPECT().Current(gomock.Any()).Return(table, nil)

	got, err := service.CurrentRates(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, table, got)

	rateRepo.EXPECT().Current(gomock.Any()).Return(nil, nil)

	_, err = service.CurrentRates(context.Background())
	assert.ErrorIs(t, err, ErrNoRates)
}

func TestSetRates(t *testing.T) {
	tests := []struct {
		name          string
		rates         map[string]int64
		prepareMock   func(rateRepo *MockRateRepo)
		expectedError error
	}{
		{
			name:  "Appends a new version",
			rates: map[string]int64{"two_digit_lo": 75, "de_special": 80},
			prepareMock: func(rateRepo *MockRateRepo) {
				rateRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "Empty table rejected",
			rates:         map[string]int64{},
			expectedError: ErrInvalidRate,
		},
		{
			name:          "Unknown kind rejected",
			rates:         map[string]int64{"bao_lo": 70},
			expectedError: ErrUnknownKind,
		},
		{
			name:          "Non-positive rate rejected",
			rates:         map[string]int64{"two_digit_lo": 0},
			expectedError: ErrInvalidRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, rateRepo := NewMock(t)
			if tt.prepareMock != nil {
				tt.prepareMock(rateRepo)
			}

			table, err := service.SetRates(context.Background(), tt.rates)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, table)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.rates, table.Rates)
			}
		})
	}
}
