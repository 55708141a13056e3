package model

// CaseStats - наблюдаемая статистика открытий кейса
type CaseStats struct {
	TotalOpens      int
	TotalSpentUsdt  float64
	TotalPayoutUsdt float64
	RealizedRtu     float64 // фактический RTU за все время, %
	WindowRtu       float64 // фактический RTU в окне последних открытий, %
	WindowSize      int
}
