package case_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository"
)

const (
	table             = "cases"
	colID             = "id"
	colName           = "name"
	colPriceUsdt      = "price_usdt"
	colRtuPercent     = "rtu_percent"
	colTokenSymbol    = "token_symbol"
	colTokenPriceUsdt = "token_price_usdt"
	colActive         = "active"

	rewardTable     = "case_rewards"
	colRewardID     = "id"
	colRewardCaseID = "case_id"
	colTokenValue   = "token_value"
	colProbability  = "probability"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCaseRepository(dbc *pgxpool.Pool) repository.CaseRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateCase - вставляет кейс и все его награды.
// Атомарность обеспечивает транзакция вызывающего сервиса
func (r *repo) CreateCase(ctx context.Context, c *model.Case) (int, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colName, colPriceUsdt, colRtuPercent, colTokenSymbol, colTokenPriceUsdt, colActive).
		Values(c.Name, c.PriceUsdt, c.RtuPercent, c.TokenSymbol, c.TokenPriceUsdt, c.Active).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = db.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	for i := range c.Rewards {
		insert := sq.Insert(rewardTable).
			Columns(colRewardCaseID, colTokenValue, colProbability).
			Values(id, c.Rewards[i].TokenValue, c.Rewards[i].Probability).
			Suffix("RETURNING " + colRewardID).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = insert.ToSql()
		if err != nil {
			return 0, err
		}

		err = db.QueryRow(ctx, sqlStr, args...).Scan(&c.Rewards[i].ID)
		if err != nil {
			return 0, err
		}
		c.Rewards[i].CaseID = id
	}

	return id, nil
}

// GetCase - возвращает кейс со всеми наградами, отсортированными по номиналу
func (r *repo) GetCase(ctx context.Context, id int) (*model.Case, error) {
	return r.getOne(ctx, sq.Eq{colID: id})
}

// GetCaseByName - поиск кейса по имени (нужен сидингу при старте)
func (r *repo) GetCaseByName(ctx context.Context, name string) (*model.Case, error) {
	return r.getOne(ctx, sq.Eq{colName: name})
}

func (r *repo) getOne(ctx context.Context, where sq.Eq) (*model.Case, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Select(colID, colName, colPriceUsdt, colRtuPercent, colTokenSymbol, colTokenPriceUsdt, colActive).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Case
	err = db.QueryRow(ctx, sqlStr, args...).
		Scan(&c.ID, &c.Name, &c.PriceUsdt, &c.RtuPercent, &c.TokenSymbol, &c.TokenPriceUsdt, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: case not found", model.ErrCaseUnavailable)
		}
		return nil, err
	}

	c.Rewards, err = r.listRewards(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repo) listRewards(ctx context.Context, caseID int) ([]model.Reward, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(colRewardID, colRewardCaseID, colTokenValue, colProbability).
		From(rewardTable).
		Where(sq.Eq{colRewardCaseID: caseID}).
		OrderBy(colTokenValue + " ASC").
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

	var rewards []model.Reward
	for rows.Next() {
		var rw model.Reward
		if err := rows.Scan(&rw.ID, &rw.CaseID, &rw.TokenValue, &rw.Probability); err != nil {
			return nil, err
		}
		rewards = append(rewards, rw)
	}

	return rewards, rows.Err()
}

// ListActiveCases - список активных кейсов без наград (витрина)
func (r *repo) ListActiveCases(ctx context.Context) ([]model.Case, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(colID, colName, colPriceUsdt, colRtuPercent, colTokenSymbol, colTokenPriceUsdt, colActive).
		From(table).
		Where(sq.Eq{colActive: true}).
		OrderBy(colID + " ASC").
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

	var cases []model.Case
	for rows.Next() {
		var c model.Case
		if err := rows.Scan(&c.ID, &c.Name, &c.PriceUsdt, &c.RtuPercent, &c.TokenSymbol, &c.TokenPriceUsdt, &c.Active); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}
