package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem - выданная пользователю награда
type InventoryItem struct {
	ID          uuid.UUID
	UserID      int
	CaseID      int
	TokenSymbol string
	TokenValue  float64
	CreatedAt   time.Time
}

// OpenResult - результат платного открытия кейса
type OpenResult struct {
	Reward      Reward
	Item        InventoryItem
	BalanceUsdt float64    // баланс после списания
	Dynamic     bool       // выбор шел через динамический селектор
	Pick        *Selection // отладочные величины, только в динамическом режиме
}

// UpgradeResult - результат попытки апгрейда предмета
type UpgradeResult struct {
	Success bool
	Chance  float64        // вероятность успеха, с которой бросали
	Item    *InventoryItem // новый предмет при успехе, nil при провале
}
