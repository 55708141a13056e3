package event_repo

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository"
)

const (
	table             = "rtu_events"
	colID             = "id"
	colLedgerID       = "ledger_id"
	colKind           = "kind"
	colDeltaSpentUsdt = "delta_spent_usdt"
	colDeltaToken     = "delta_token"
	colMetadata       = "metadata"
	colCreatedAt      = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewEventRepository(dbc *pgxpool.Pool) repository.EventRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Append - добавляет событие аудита. Таблица append-only,
// методов обновления и удаления у репозитория нет
func (r *repo) Append(ctx context.Context, e *model.RtuEvent) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colLedgerID, colKind, colDeltaSpentUsdt, colDeltaToken, colMetadata, colCreatedAt).
		Values(e.ID, e.LedgerID, string(e.Kind), e.DeltaSpentUsdt, e.DeltaToken, meta, e.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// ListByLedger - последние события по строке учета, новые first
func (r *repo) ListByLedger(ctx context.Context, ledgerID int, limit int) ([]model.RtuEvent, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Select(colID, colLedgerID, colKind, colDeltaSpentUsdt, colDeltaToken, colMetadata, colCreatedAt).
		From(table).
		Where(sq.Eq{colLedgerID: ledgerID}).
		OrderBy(colCreatedAt + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.RtuEvent
	for rows.Next() {
		var e model.RtuEvent
		var kind string
		var meta []byte
		if err := rows.Scan(&e.ID, &e.LedgerID, &kind, &e.DeltaSpentUsdt, &e.DeltaToken, &meta, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = model.EventKind(kind)
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
