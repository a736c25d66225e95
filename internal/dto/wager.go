package dto

import "time"

type PlaceWagerRequestDTO struct {
	Kind    string   `json:"kind" example:"two_digit_lo"`
	Numbers []string `json:"numbers" example:"47,68"`
	Amount  int64    `json:"amount" example:"10000"`
}

type WagerResponseDTO struct {
	ID        int        `json:"id" example:"1"`
	Kind      string     `json:"kind" example:"two_digit_lo"`
	Numbers   []string   `json:"numbers" example:"47,68"`
	Amount    int64      `json:"amount" example:"10000"`
	Stake     int64      `json:"stake" example:"20000"`
	DrawDate  string     `json:"draw_date" example:"2024-11-20"`
	Status    string     `json:"status" example:"pending"`
	Payout    int64      `json:"payout,omitempty" example:"700000"`
	CreatedAt time.Time  `json:"created_at" example:"2024-11-20T10:00:00+07:00"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}
