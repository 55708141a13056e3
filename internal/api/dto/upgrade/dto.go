package upgrade

type UpgradeRequest struct {
	ItemID         string `json:"item_id"`          // Предмет на апгрейд
	TargetRewardID int    `json:"target_reward_id"` // Целевая награда того же кейса
}

type UpgradeResponse struct {
	Success     bool    `json:"success"`
	Chance      float64 `json:"chance"`                 // Вероятность, с которой бросали
	ItemID      string  `json:"item_id,omitempty"`      // Обновленный предмет при успехе
	TokenValue  float64 `json:"token_value,omitempty"`  // Новый номинал при успехе
	TokenSymbol string  `json:"token_symbol,omitempty"`
}
