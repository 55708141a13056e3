package model

import (
	"time"

	"github.com/google/uuid"
)

// RtuLedger - накопительный учет по паре (кейс, токен).
// Единственный источник правды о том, сколько кейс обещал и сколько выдал
type RtuLedger struct {
	ID               int
	CaseID           int
	TokenSymbol      string
	TotalSpentUsdt   float64 // сумма всех трат, только растет
	TotalTokenIssued float64 // сумма выданных токенов, только растет
	BufferDebtToken  float64 // разрешено по заявленному RTU минус выдано; минус = перевыдача
	TokenPriceUsdt   float64 // снапшот цены токена, обновляется если кейс разошелся
	RtuPercent       float64 // снапшот заявленного RTU
}

// LedgerState - состояние учета на входе селектора
type LedgerState struct {
	SpentUsdt   float64
	TokenIssued float64
}

// State возвращает состояние для селектора
func (l *RtuLedger) State() LedgerState {
	return LedgerState{
		SpentUsdt:   l.TotalSpentUsdt,
		TokenIssued: l.TotalTokenIssued,
	}
}

type EventKind string

const (
	EventOpen    EventKind = "OPEN"
	EventUpgrade EventKind = "UPGRADE"
	EventBattle  EventKind = "BATTLE"
	EventAdjust  EventKind = "ADJUST"
)

// RtuEvent - запись аудита. Только добавляется, никогда не меняется
type RtuEvent struct {
	ID             uuid.UUID
	LedgerID       int
	Kind           EventKind
	DeltaSpentUsdt float64
	DeltaToken     float64
	Metadata       map[string]any
	CreatedAt      time.Time
}

// LedgerDelta - дельта одного события для применения к учету
type LedgerDelta struct {
	CaseID         int
	TokenSymbol    string
	TokenPriceUsdt float64
	RtuPercent     float64
	Kind           EventKind
	DeltaSpentUsdt float64
	DeltaToken     float64
	Metadata       map[string]any
}

// Selection - результат динамического выбора награды
// плюс отладочные величины для аудита
type Selection struct {
	Reward           Reward
	IdealDropToken   float64 // сколько токенов вывело бы выдачу ровно на таргет
	MaxSafeDropToken float64 // выше этого - пробой заявленного потолка
	TargetRtuPercent float64 // RTU, к которому ведет селектор
}
