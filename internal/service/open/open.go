package open

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

// Open выполняет платное открытие кейса: списание, выбор награды,
// выдача предмета и обновление RTU-учета - одной транзакцией
func (s *serv) Open(ctx context.Context, caseID int) (*model.OpenResult, error) {
	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	c, err := s.caseRepo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, fmt.Errorf("%w: case %d is not active", model.ErrCaseUnavailable, caseID)
	}
	if len(c.Rewards) == 0 {
		return nil, fmt.Errorf("%w: case %d has no rewards", model.ErrCaseUnavailable, caseID)
	}

	// Инициализируем структуру для хранения результата открытия
	var res *model.OpenResult

	// Начало транзакции, где выполняется процесс открытия
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем баланс пользователя
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user balance: %w", err)
		}
		if balance < c.PriceUsdt {
			return model.ErrNotEnoughBalance
		}

		// Списание цены открытия
		balance -= c.PriceUsdt
		if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
			return fmt.Errorf("failed to update user balance: %w", err)
		}

		// КЛЮЧЕВОЙ ВЫЗОВ
		// Динамический выбор, если у кейса есть цена токена;
		// иначе учет не трогаем и играем по сохраненным вероятностям
		var reward model.Reward
		var pick *model.Selection
		dynamic := c.TokenPriceUsdt > 0

		if dynamic {
			sel, _, err := s.rtuServ.OpenDrop(txCtx, c, c.PriceUsdt, model.EventOpen,
				map[string]any{"user_id": userID})
			if err != nil {
				return err
			}
			reward = sel.Reward
			pick = sel
		} else {
			reward = rtu.SelectStored(c.Rewards, s.rnd)
		}

		// Выдаем предмет
		item := model.InventoryItem{
			ID:          uuid.New(),
			UserID:      userID,
			CaseID:      c.ID,
			TokenSymbol: c.TokenSymbol,
			TokenValue:  reward.TokenValue,
			CreatedAt:   time.Now(),
		}
		if err := s.inventoryRepo.AddItem(txCtx, &item); err != nil {
			return fmt.Errorf("failed to persist inventory item: %w", err)
		}

		res = &model.OpenResult{
			Reward:      reward,
			Item:        item,
			BalanceUsdt: balance,
			Dynamic:     dynamic,
			Pick:        pick,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Обновляем статистику
	s.statsRepo.Record(c.ID, c.PriceUsdt, res.Reward.TokenValue*c.TokenPriceUsdt)

	s.log.Info("case opened",
		zap.Int("case_id", c.ID),
		zap.Int("user_id", userID),
		zap.Float64("reward_value", res.Reward.TokenValue),
		zap.Bool("dynamic", res.Dynamic),
	)

	return res, nil
}
