package ledger_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository"
)

const (
	table               = "rtu_ledgers"
	colID               = "id"
	colCaseID           = "case_id"
	colTokenSymbol      = "token_symbol"
	colTotalSpentUsdt   = "total_spent_usdt"
	colTotalTokenIssued = "total_token_issued"
	colBufferDebtToken  = "buffer_debt_token"
	colTokenPriceUsdt   = "token_price_usdt"
	colRtuPercent       = "rtu_percent"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLedgerRepository(dbc *pgxpool.Pool) repository.LedgerRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetForUpdate - строка учета под row-level локом до конца транзакции.
// Конкурентные открытия одного кейса сериализуются именно здесь
func (r *repo) GetForUpdate(ctx context.Context, caseID int, tokenSymbol string) (*model.RtuLedger, error) {
	return r.get(ctx, caseID, tokenSymbol, true)
}

// Get - чтение без лока (наблюдаемость)
func (r *repo) Get(ctx context.Context, caseID int, tokenSymbol string) (*model.RtuLedger, error) {
	return r.get(ctx, caseID, tokenSymbol, false)
}

func (r *repo) get(ctx context.Context, caseID int, tokenSymbol string, forUpdate bool) (*model.RtuLedger, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Select(colID, colCaseID, colTokenSymbol, colTotalSpentUsdt, colTotalTokenIssued,
		colBufferDebtToken, colTokenPriceUsdt, colRtuPercent).
		From(table).
		Where(sq.Eq{colCaseID: caseID, colTokenSymbol: tokenSymbol}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var l model.RtuLedger
	err = db.QueryRow(ctx, sqlStr, args...).
		Scan(&l.ID, &l.CaseID, &l.TokenSymbol, &l.TotalSpentUsdt, &l.TotalTokenIssued,
			&l.BufferDebtToken, &l.TokenPriceUsdt, &l.RtuPercent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Строка заводится лениво при первом событии
			return nil, nil
		}
		return nil, err
	}

	return &l, nil
}

// Create - заводит новую строку учета, возвращает ее ID
func (r *repo) Create(ctx context.Context, l *model.RtuLedger) (int, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colCaseID, colTokenSymbol, colTotalSpentUsdt, colTotalTokenIssued,
			colBufferDebtToken, colTokenPriceUsdt, colRtuPercent).
		Values(l.CaseID, l.TokenSymbol, l.TotalSpentUsdt, l.TotalTokenIssued,
			l.BufferDebtToken, l.TokenPriceUsdt, l.RtuPercent).
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

	return id, nil
}

// Update - перезаписывает накопленные суммы и снапшоты параметров кейса
func (r *repo) Update(ctx context.Context, l *model.RtuLedger) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Update(table).
		Set(colTotalSpentUsdt, l.TotalSpentUsdt).
		Set(colTotalTokenIssued, l.TotalTokenIssued).
		Set(colBufferDebtToken, l.BufferDebtToken).
		Set(colTokenPriceUsdt, l.TokenPriceUsdt).
		Set(colRtuPercent, l.RtuPercent).
		Where(sq.Eq{colID: l.ID}).
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
