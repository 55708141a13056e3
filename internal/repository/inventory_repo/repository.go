package inventory_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository"
)

const (
	table          = "inventory_items"
	colID          = "id"
	colUserID      = "user_id"
	colCaseID      = "case_id"
	colTokenSymbol = "token_symbol"
	colTokenValue  = "token_value"
	colCreatedAt   = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewInventoryRepository(dbc *pgxpool.Pool) repository.InventoryRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// AddItem - сохраняет выданный предмет
func (r *repo) AddItem(ctx context.Context, item *model.InventoryItem) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colUserID, colCaseID, colTokenSymbol, colTokenValue, colCreatedAt).
		Values(item.ID, item.UserID, item.CaseID, item.TokenSymbol, item.TokenValue, item.CreatedAt).
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

// GetItem - возвращает предмет по его ID
func (r *repo) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Select(colID, colUserID, colCaseID, colTokenSymbol, colTokenValue, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var item model.InventoryItem
	err = db.QueryRow(ctx, sqlStr, args...).
		Scan(&item.ID, &item.UserID, &item.CaseID, &item.TokenSymbol, &item.TokenValue, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item not found", model.ErrItemUnavailable)
		}
		return nil, err
	}

	return &item, nil
}

// ReplaceItem - меняет номинал предмета на новый (успешный апгрейд)
func (r *repo) ReplaceItem(ctx context.Context, id uuid.UUID, tokenValue float64) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Update(table).
		Set(colTokenValue, tokenValue).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: item not found", model.ErrItemUnavailable)
	}

	return nil
}

// DeleteItem - сжигает предмет (проваленный апгрейд)
func (r *repo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
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
