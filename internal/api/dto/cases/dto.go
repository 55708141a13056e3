package cases

type CreateCaseRequest struct {
	Name           string    `json:"name"`             // Имя кейса, уникально
	PriceUsdt      float64   `json:"price_usdt"`       // Цена открытия в USDT (>0)
	RtuPercent     float64   `json:"rtu_percent"`      // Заявленный RTU в процентах
	TokenSymbol    string    `json:"token_symbol"`     // Символ токена кейса
	TokenPriceUsdt float64   `json:"token_price_usdt"` // Цена токена в USDT
	RewardValues   []float64 `json:"reward_values"`    // Номиналы наград в токенах
}

type CaseResponse struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	PriceUsdt      float64          `json:"price_usdt"`
	RtuPercent     float64          `json:"rtu_percent"`
	TokenSymbol    string           `json:"token_symbol"`
	TokenPriceUsdt float64          `json:"token_price_usdt"`
	Active         bool             `json:"active"`
	Rewards        []RewardResponse `json:"rewards,omitempty"`
}

type RewardResponse struct {
	ID          int     `json:"id"`
	TokenValue  float64 `json:"token_value"`  // Номинал в токенах
	Probability float64 `json:"probability"`  // Статическая вероятность, %
}
