package service

import (
	"context"

	"github.com/google/uuid"

	"lootcase_backend/internal/model"
)

type CaseService interface {
	Create(ctx context.Context, in model.CaseInput) (*model.Case, error)
	Get(ctx context.Context, id int) (*model.Case, error)
	List(ctx context.Context) ([]model.Case, error)
	// Seed заводит кейсы из config.yaml, которых еще нет в БД
	Seed(ctx context.Context) error
}

type OpenService interface {
	Open(ctx context.Context, caseID int) (*model.OpenResult, error)
}

type BattleService interface {
	Resolve(ctx context.Context, caseIDs []int, mode model.BattleMode) (*model.BattleResult, error)
}

type UpgradeService interface {
	Upgrade(ctx context.Context, itemID uuid.UUID, targetRewardID int) (*model.UpgradeResult, error)
}

type RtuService interface {
	// OpenDrop - один динамический выбор с применением дельты к учету.
	// Вызывается только внутри транзакции, общей со списанием и выдачей
	OpenDrop(ctx context.Context, c *model.Case, priceDeltaUsdt float64, kind model.EventKind, meta map[string]any) (*model.Selection, *model.RtuLedger, error)
	// ApplyEvent - применяет готовую дельту (батлы, апгрейды)
	ApplyEvent(ctx context.Context, d model.LedgerDelta) (*model.RtuLedger, *model.RtuEvent, error)
	// Adjust - ручная корректировка, отдельной транзакцией
	Adjust(ctx context.Context, caseID int, tokenSymbol string, deltaSpentUsdt, deltaToken float64, reason string) (*model.RtuLedger, error)
	Ledger(ctx context.Context, caseID int, tokenSymbol string) (*model.RtuLedger, []model.RtuEvent, error)
	Stats(caseID int) model.CaseStats
}
