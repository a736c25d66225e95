package dto

import "time"

type BalanceResponseDTO struct {
	Current int64 `json:"current" example:"500000"`
}

type DepositRequestDTO struct {
	Amount int64 `json:"amount" example:"100000"`
}

type WithdrawRequestDTO struct {
	Amount int64 `json:"amount" example:"50000"`
}

type TransactionResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Type      string    `json:"type" example:"payout"`
	Amount    int64     `json:"amount" example:"700000"`
	WagerID   *int      `json:"wager_id,omitempty" example:"12"`
	CreatedAt time.Time `json:"created_at" example:"2024-11-20T18:40:00+07:00"`
}
