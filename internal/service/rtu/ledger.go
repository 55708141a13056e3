package rtu

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lootcase_backend/internal/model"
)

const eventListLimit = 50

// OpenDrop выполняет один динамический выбор награды и сразу применяет
// его дельту к учету. Чтение-расчет-запись идут под локом строки учета,
// поэтому конкурентные открытия одного кейса не теряют обновления.
// Вызывается только внутри транзакции, общей со списанием и выдачей
func (s *serv) OpenDrop(ctx context.Context, c *model.Case, priceDeltaUsdt float64, kind model.EventKind,
	meta map[string]any) (*model.Selection, *model.RtuLedger, error) {
	if c.TokenPriceUsdt <= 0 {
		return nil, nil, fmt.Errorf("%w: case %d has no token price", model.ErrLedgerUnavailable, c.ID)
	}
	if len(c.Rewards) == 0 {
		return nil, nil, fmt.Errorf("%w: case %d has no rewards", model.ErrCaseUnavailable, c.ID)
	}

	led, err := s.lockOrCreate(ctx, c.ID, c.TokenSymbol, c.TokenPriceUsdt, c.RtuPercent)
	if err != nil {
		return nil, nil, err
	}

	sel := Select(c.Rewards, priceDeltaUsdt, c.RtuPercent, c.TokenPriceUsdt,
		s.rtuCfg.SteeringBufferPercent(), led.State(), s.rnd)

	apply(led, priceDeltaUsdt, sel.Reward.TokenValue)
	if err := s.ledgerRepo.Update(ctx, led); err != nil {
		return nil, nil, err
	}

	if meta == nil {
		meta = make(map[string]any)
	}
	meta["ideal_drop"] = sel.IdealDropToken
	meta["max_safe_drop"] = sel.MaxSafeDropToken
	meta["target_rtu"] = sel.TargetRtuPercent
	meta["chosen_value"] = sel.Reward.TokenValue

	if err := s.appendEvent(ctx, led.ID, kind, priceDeltaUsdt, sel.Reward.TokenValue, meta); err != nil {
		return nil, nil, err
	}

	s.log.Debug("dynamic drop",
		zap.Int("case_id", c.ID),
		zap.Float64("chosen_value", sel.Reward.TokenValue),
		zap.Float64("ideal_drop", sel.IdealDropToken),
		zap.Float64("buffer_debt", led.BufferDebtToken),
	)

	return &sel, led, nil
}

// ApplyEvent применяет готовую дельту одного события к учету и пишет аудит.
// Должен вызываться внутри транзакции, общей со списанием и выдачей
func (s *serv) ApplyEvent(ctx context.Context, d model.LedgerDelta) (*model.RtuLedger, *model.RtuEvent, error) {
	if d.TokenPriceUsdt <= 0 {
		return nil, nil, fmt.Errorf("%w: case %d has no token price", model.ErrLedgerUnavailable, d.CaseID)
	}

	led, err := s.lockOrCreate(ctx, d.CaseID, d.TokenSymbol, d.TokenPriceUsdt, d.RtuPercent)
	if err != nil {
		return nil, nil, err
	}

	apply(led, d.DeltaSpentUsdt, d.DeltaToken)
	if err := s.ledgerRepo.Update(ctx, led); err != nil {
		return nil, nil, err
	}

	event := &model.RtuEvent{
		ID:             uuid.New(),
		LedgerID:       led.ID,
		Kind:           d.Kind,
		DeltaSpentUsdt: d.DeltaSpentUsdt,
		DeltaToken:     d.DeltaToken,
		Metadata:       d.Metadata,
		CreatedAt:      time.Now(),
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		return nil, nil, err
	}

	return led, event, nil
}

// Adjust - ручная корректировка учета. Идет отдельной транзакцией,
// параметры кейса берутся из снапшота строки учета
func (s *serv) Adjust(ctx context.Context, caseID int, tokenSymbol string,
	deltaSpentUsdt, deltaToken float64, reason string) (*model.RtuLedger, error) {
	var out *model.RtuLedger
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		led, err := s.ledgerRepo.GetForUpdate(txCtx, caseID, tokenSymbol)
		if err != nil {
			return err
		}
		if led == nil {
			return fmt.Errorf("%w: no ledger for case %d token %s", model.ErrLedgerUnavailable, caseID, tokenSymbol)
		}

		apply(led, deltaSpentUsdt, deltaToken)
		if err := s.ledgerRepo.Update(txCtx, led); err != nil {
			return err
		}

		meta := map[string]any{"reason": reason}
		if err := s.appendEvent(txCtx, led.ID, model.EventAdjust, deltaSpentUsdt, deltaToken, meta); err != nil {
			return err
		}

		out = led
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("ledger adjusted",
		zap.Int("case_id", caseID),
		zap.String("token", tokenSymbol),
		zap.Float64("delta_spent", deltaSpentUsdt),
		zap.Float64("delta_token", deltaToken),
		zap.String("reason", reason),
	)

	return out, nil
}

// Ledger - снапшот учета и последние события по нему
func (s *serv) Ledger(ctx context.Context, caseID int, tokenSymbol string) (*model.RtuLedger, []model.RtuEvent, error) {
	led, err := s.ledgerRepo.Get(ctx, caseID, tokenSymbol)
	if err != nil {
		return nil, nil, err
	}
	if led == nil {
		return nil, nil, fmt.Errorf("%w: no ledger for case %d token %s", model.ErrLedgerUnavailable, caseID, tokenSymbol)
	}

	events, err := s.eventRepo.ListByLedger(ctx, led.ID, eventListLimit)
	if err != nil {
		return nil, nil, err
	}

	return led, events, nil
}

func (s *serv) Stats(caseID int) model.CaseStats {
	return s.statsRepo.Stats(caseID)
}

// lockOrCreate берет строку учета под лок, заводя ее при первом событии.
// Если кейс разошелся со снапшотом, параметры кейса авторитетны,
// накопленные суммы сохраняются.
// Гонка двух первых событий упирается в unique (case_id, token_symbol):
// вторая вставка падает, транзакция откатывается и повторяется вызывающим
func (s *serv) lockOrCreate(ctx context.Context, caseID int, tokenSymbol string,
	tokenPriceUsdt, rtuPercent float64) (*model.RtuLedger, error) {
	led, err := s.ledgerRepo.GetForUpdate(ctx, caseID, tokenSymbol)
	if err != nil {
		return nil, err
	}

	if led == nil {
		led = &model.RtuLedger{
			CaseID:         caseID,
			TokenSymbol:    tokenSymbol,
			TokenPriceUsdt: tokenPriceUsdt,
			RtuPercent:     rtuPercent,
		}
		led.ID, err = s.ledgerRepo.Create(ctx, led)
		if err != nil {
			return nil, err
		}
		return led, nil
	}

	if led.TokenPriceUsdt != tokenPriceUsdt || led.RtuPercent != rtuPercent {
		led.TokenPriceUsdt = tokenPriceUsdt
		led.RtuPercent = rtuPercent
	}

	return led, nil
}

// apply прибавляет дельты и пересчитывает буферный долг.
// Долг может уйти в минус - это наблюдаемый сигнал перевыдачи
func apply(led *model.RtuLedger, deltaSpentUsdt, deltaToken float64) {
	led.TotalSpentUsdt += deltaSpentUsdt
	led.TotalTokenIssued += deltaToken
	led.BufferDebtToken = led.TotalSpentUsdt*led.RtuPercent/100/led.TokenPriceUsdt - led.TotalTokenIssued
}

func (s *serv) appendEvent(ctx context.Context, ledgerID int, kind model.EventKind,
	deltaSpent, deltaToken float64, meta map[string]any) error {
	return s.eventRepo.Append(ctx, &model.RtuEvent{
		ID:             uuid.New(),
		LedgerID:       ledgerID,
		Kind:           kind,
		DeltaSpentUsdt: deltaSpent,
		DeltaToken:     deltaToken,
		Metadata:       meta,
		CreatedAt:      time.Now(),
	})
}
