package battle

import openDto "lootcase_backend/internal/api/dto/open"

type BattleRequest struct {
	CaseIDs []int  `json:"case_ids"` // Кейсы в порядке розыгрыша
	Mode    string `json:"mode"`     // BOT или PVP
}

type BattleResponse struct {
	BattleID string          `json:"battle_id"`
	Mode     string          `json:"mode"`
	Rounds   []RoundResponse `json:"rounds"`
}

type RoundResponse struct {
	CaseID       int                  `json:"case_id"`
	UserPick     openDto.PickResponse `json:"user_pick"`
	OpponentPick openDto.PickResponse `json:"opponent_pick"`
	Ledger       LedgerResponse       `json:"ledger"` // Снапшот учета после раунда
}

type LedgerResponse struct {
	CaseID           int     `json:"case_id"`
	TokenSymbol      string  `json:"token_symbol"`
	TotalSpentUsdt   float64 `json:"total_spent_usdt"`
	TotalTokenIssued float64 `json:"total_token_issued"`
	BufferDebtToken  float64 `json:"buffer_debt_token"`
}
