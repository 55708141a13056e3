package open

type OpenRequest struct {
	CaseID int `json:"case_id"` // ID открываемого кейса
}

type OpenResponse struct {
	RewardValue float64       `json:"reward_value"` // Номинал выпавшей награды в токенах
	ItemID      string        `json:"item_id"`      // ID выданного предмета
	TokenSymbol string        `json:"token_symbol"`
	Balance     float64       `json:"balance"` // Баланс после списания
	Dynamic     bool          `json:"dynamic"` // Выбор шел через динамический селектор
	Pick        *PickResponse `json:"pick,omitempty"`
}

// PickResponse - отладочные величины динамического выбора
type PickResponse struct {
	IdealDrop   float64 `json:"ideal_drop"`
	MaxSafeDrop float64 `json:"max_safe_drop"`
	TargetRtu   float64 `json:"target_rtu"`
	ChosenValue float64 `json:"chosen_value"`
}
