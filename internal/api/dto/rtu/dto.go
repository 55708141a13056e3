package rtu

import "time"

type LedgerResponse struct {
	CaseID           int             `json:"case_id"`
	TokenSymbol      string          `json:"token_symbol"`
	TotalSpentUsdt   float64         `json:"total_spent_usdt"`
	TotalTokenIssued float64         `json:"total_token_issued"`
	BufferDebtToken  float64         `json:"buffer_debt_token"` // Минус = перевыдача
	TokenPriceUsdt   float64         `json:"token_price_usdt"`
	RtuPercent       float64         `json:"rtu_percent"`
	Events           []EventResponse `json:"events"`
}

type EventResponse struct {
	ID             string         `json:"id"`
	Kind           string         `json:"kind"`
	DeltaSpentUsdt float64        `json:"delta_spent_usdt"`
	DeltaToken     float64        `json:"delta_token"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type AdjustRequest struct {
	CaseID         int     `json:"case_id"`
	TokenSymbol    string  `json:"token_symbol"`
	DeltaSpentUsdt float64 `json:"delta_spent_usdt"`
	DeltaToken     float64 `json:"delta_token"`
	Reason         string  `json:"reason"` // Обязательное пояснение для аудита
}

type StatsResponse struct {
	CaseID          int     `json:"case_id"`
	TotalOpens      int     `json:"total_opens"`
	TotalSpentUsdt  float64 `json:"total_spent_usdt"`
	TotalPayoutUsdt float64 `json:"total_payout_usdt"`
	RealizedRtu     float64 `json:"realized_rtu"` // Фактический RTU за все время, %
	WindowRtu       float64 `json:"window_rtu"`   // Фактический RTU в окне, %
}
