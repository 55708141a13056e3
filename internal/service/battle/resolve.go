package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lootcase_backend/internal/middleware"
	"lootcase_backend/internal/model"
	"lootcase_backend/internal/service/rtu"
)

// Снапшот учета одного (кейс, токен), живущий в памяти до конца батла
type snapshot struct {
	c        *model.Case
	baseline model.LedgerState
	st       model.LedgerState
}

// Resolve разыгрывает батл по списку кейсов в заданном порядке.
// Поздние кейсы видят учет, уже измененный ранними, а выбор соперника
// внутри кейса видит учет после выбора пользователя. Все дельты
// персистятся в конце, одной транзакцией с списанием и выдачей
func (s *serv) Resolve(ctx context.Context, caseIDs []int, mode model.BattleMode) (*model.BattleResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	if len(caseIDs) == 0 {
		return nil, fmt.Errorf("%w: empty case list", model.ErrInvalidInput)
	}
	if mode != model.BattleModeBot && mode != model.BattleModePvp {
		return nil, fmt.Errorf("%w: unknown battle mode %q", model.ErrInvalidInput, mode)
	}

	var result *model.BattleResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Сначала валидируем весь список: батл не разыгрывается частично
		cases := make(map[int]*model.Case, len(caseIDs))
		total := 0.0
		for _, id := range caseIDs {
			if _, ok := cases[id]; ok {
				total += cases[id].PriceUsdt
				continue
			}
			c, err := s.caseRepo.GetCase(txCtx, id)
			if err != nil {
				return err
			}
			if !c.Active {
				return fmt.Errorf("%w: case %d is not active", model.ErrCaseUnavailable, id)
			}
			if len(c.Rewards) == 0 {
				return fmt.Errorf("%w: case %d has no rewards", model.ErrCaseUnavailable, id)
			}
			if c.TokenPriceUsdt <= 0 {
				return fmt.Errorf("%w: case %d has no token price", model.ErrCaseUnavailable, id)
			}
			cases[id] = c
			total += c.PriceUsdt
		}

		// Списываем участие пользователя целиком
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user balance: %w", err)
		}
		if balance < total {
			return model.ErrNotEnoughBalance
		}
		if err := s.userRepo.UpdateBalance(txCtx, userID, balance-total); err != nil {
			return fmt.Errorf("failed to update user balance: %w", err)
		}

		snaps := make(map[int]*snapshot, len(cases))
		var order []int

		battleID := uuid.New()
		buffer := s.rtuCfg.SteeringBufferPercent()
		rounds := make([]model.BattleRound, 0, len(caseIDs))

		for _, id := range caseIDs {
			c := cases[id]

			sn, ok := snaps[id]
			if !ok {
				// Первое касание - сидируем снапшот из БД под локом
				led, err := s.ledgerRepo.GetForUpdate(txCtx, c.ID, c.TokenSymbol)
				if err != nil {
					return err
				}
				sn = &snapshot{c: c}
				if led != nil {
					sn.baseline = led.State()
					sn.st = led.State()
				}
				snaps[id] = sn
				order = append(order, id)
			}

			// Выбор пользователя: реальная цена кейса как дельта трат
			userSel := rtu.Select(c.Rewards, c.PriceUsdt, c.RtuPercent, c.TokenPriceUsdt, buffer, sn.st, s.rnd)
			sn.st.SpentUsdt += c.PriceUsdt
			sn.st.TokenIssued += userSel.Reward.TokenValue

			// Выбор соперника видит учет уже после выбора пользователя.
			// В BOT-режиме соперник симулируется и трат не добавляет
			oppDelta := 0.0
			if mode == model.BattleModePvp {
				oppDelta = c.PriceUsdt
			}
			oppSel := rtu.Select(c.Rewards, oppDelta, c.RtuPercent, c.TokenPriceUsdt, buffer, sn.st, s.rnd)
			sn.st.SpentUsdt += oppDelta
			sn.st.TokenIssued += oppSel.Reward.TokenValue

			// Пользователь получает свой дроп; дроп соперника наш инвентарь не трогает
			item := model.InventoryItem{
				ID:          uuid.New(),
				UserID:      userID,
				CaseID:      c.ID,
				TokenSymbol: c.TokenSymbol,
				TokenValue:  userSel.Reward.TokenValue,
				CreatedAt:   time.Now(),
			}
			if err := s.inventoryRepo.AddItem(txCtx, &item); err != nil {
				return fmt.Errorf("failed to persist inventory item: %w", err)
			}

			rounds = append(rounds, model.BattleRound{
				CaseID:       c.ID,
				UserPick:     userSel,
				OpponentPick: oppSel,
				Ledger:       snapshotLedger(c, sn.st),
			})
		}

		// Персистим суммарную дельту каждого затронутого учета
		for _, id := range order {
			sn := snaps[id]
			_, _, err := s.rtuServ.ApplyEvent(txCtx, model.LedgerDelta{
				CaseID:         sn.c.ID,
				TokenSymbol:    sn.c.TokenSymbol,
				TokenPriceUsdt: sn.c.TokenPriceUsdt,
				RtuPercent:     sn.c.RtuPercent,
				Kind:           model.EventBattle,
				DeltaSpentUsdt: sn.st.SpentUsdt - sn.baseline.SpentUsdt,
				DeltaToken:     sn.st.TokenIssued - sn.baseline.TokenIssued,
				Metadata: map[string]any{
					"battle_id": battleID.String(),
					"mode":      string(mode),
					"user_id":   userID,
				},
			})
			if err != nil {
				return err
			}
		}

		result = &model.BattleResult{
			ID:     battleID,
			Mode:   mode,
			Rounds: rounds,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("battle resolved",
		zap.String("battle_id", result.ID.String()),
		zap.String("mode", string(mode)),
		zap.Int("user_id", userID),
		zap.Int("rounds", len(result.Rounds)),
	)

	return result, nil
}

// snapshotLedger собирает представление учета из снапшота в памяти
func snapshotLedger(c *model.Case, st model.LedgerState) model.RtuLedger {
	return model.RtuLedger{
		CaseID:           c.ID,
		TokenSymbol:      c.TokenSymbol,
		TotalSpentUsdt:   st.SpentUsdt,
		TotalTokenIssued: st.TokenIssued,
		BufferDebtToken:  st.SpentUsdt*c.RtuPercent/100/c.TokenPriceUsdt - st.TokenIssued,
		TokenPriceUsdt:   c.TokenPriceUsdt,
		RtuPercent:       c.RtuPercent,
	}
}
