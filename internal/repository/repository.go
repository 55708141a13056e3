package repository

import (
	"context"

	"github.com/google/uuid"

	"lootcase_backend/internal/model"
)

type CaseRepository interface {
	// CreateCase - вставляет кейс вместе с наградами, возвращает его ID
	CreateCase(ctx context.Context, c *model.Case) (int, error)
	GetCase(ctx context.Context, id int) (*model.Case, error)
	GetCaseByName(ctx context.Context, name string) (*model.Case, error)
	ListActiveCases(ctx context.Context) ([]model.Case, error)
}

type LedgerRepository interface {
	// GetForUpdate - читает строку учета под row-level локом.
	// Возвращает nil, если строки еще нет
	GetForUpdate(ctx context.Context, caseID int, tokenSymbol string) (*model.RtuLedger, error)
	Get(ctx context.Context, caseID int, tokenSymbol string) (*model.RtuLedger, error)
	Create(ctx context.Context, l *model.RtuLedger) (int, error)
	Update(ctx context.Context, l *model.RtuLedger) error
}

type EventRepository interface {
	Append(ctx context.Context, e *model.RtuEvent) error
	ListByLedger(ctx context.Context, ledgerID int, limit int) ([]model.RtuEvent, error)
}

type UserRepository interface {
	GetBalance(ctx context.Context, id int) (float64, error)
	UpdateBalance(ctx context.Context, id int, amount float64) error
}

type InventoryRepository interface {
	AddItem(ctx context.Context, item *model.InventoryItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	// ReplaceItem - заменяет номинал предмета (успешный апгрейд)
	ReplaceItem(ctx context.Context, id uuid.UUID, tokenValue float64) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// RtuStatsRepository - in-memory статистика фактического RTU по кейсам,
// только для наблюдаемости. Источник правды - ledger в БД
type RtuStatsRepository interface {
	Record(caseID int, spentUsdt, payoutUsdt float64)
	Stats(caseID int) model.CaseStats
}
