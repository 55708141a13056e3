package model

// Case - кейс (лут-бокс). Цена, заявленный RTU и цена токена
// фиксируются при создании и дальше не меняются
type Case struct {
	ID             int
	Name           string
	PriceUsdt      float64 // цена одного открытия в USDT, > 0
	RtuPercent     float64 // заявленный RTU в процентах, бизнес-правило: не выше 98
	TokenSymbol    string
	TokenPriceUsdt float64 // цена токена кейса в USDT; 0 - динамический режим недоступен
	Active         bool
	Rewards        []Reward
}

// Reward - награда (дроп) кейса
type Reward struct {
	ID          int
	CaseID      int
	TokenValue  float64 // номинал награды в токенах кейса, > 0, уникален внутри кейса
	Probability float64 // статическая вероятность в процентах, сумма по кейсу = 100
}

// CaseInput - данные для создания нового кейса
type CaseInput struct {
	Name           string
	PriceUsdt      float64
	RtuPercent     float64
	TokenSymbol    string
	TokenPriceUsdt float64
	RewardValues   []float64
}
