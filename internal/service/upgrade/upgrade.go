package upgrade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lootcase_backend/internal/middleware"
	"lootcase_backend/internal/model"
)

// maxUpgradeChance Потолок шанса успешного апгрейда
const maxUpgradeChance = 0.95

// Upgrade меняет предмет на попытку получить более дорогую награду
// того же кейса. Провал сжигает предмет. Щедрость апгрейдов живет
// в запасе, который селектор открытий оставляет под заявленным RTU
func (s *serv) Upgrade(ctx context.Context, itemID uuid.UUID, targetRewardID int) (*model.UpgradeResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	var res *model.UpgradeResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.inventoryRepo.GetItem(txCtx, itemID)
		if err != nil {
			return err
		}
		if item.UserID != userID {
			return fmt.Errorf("%w: item belongs to another user", model.ErrItemUnavailable)
		}

		c, err := s.caseRepo.GetCase(txCtx, item.CaseID)
		if err != nil {
			return err
		}

		// Целевая награда должна быть наградой этого кейса и дороже предмета
		var target *model.Reward
		for i := range c.Rewards {
			if c.Rewards[i].ID == targetRewardID {
				target = &c.Rewards[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: reward %d does not belong to case %d", model.ErrInvalidInput, targetRewardID, c.ID)
		}
		if target.TokenValue <= item.TokenValue {
			return fmt.Errorf("%w: target value %v is not above item value %v",
				model.ErrInvalidInput, target.TokenValue, item.TokenValue)
		}

		chance := item.TokenValue / target.TokenValue * s.rtuCfg.UpgradeRtuPercent() / 100
		if chance > maxUpgradeChance {
			chance = maxUpgradeChance
		}

		success := s.rnd() < chance

		var deltaToken float64
		var newItem *model.InventoryItem
		if success {
			if err := s.inventoryRepo.ReplaceItem(txCtx, item.ID, target.TokenValue); err != nil {
				return err
			}
			deltaToken = target.TokenValue - item.TokenValue
			upgraded := *item
			upgraded.TokenValue = target.TokenValue
			newItem = &upgraded
		} else {
			// Сжигаем предмет
			if err := s.inventoryRepo.DeleteItem(txCtx, item.ID); err != nil {
				return err
			}
		}

		// Событие пишется и на провале: аудит полный
		if c.TokenPriceUsdt > 0 {
			_, _, err := s.rtuServ.ApplyEvent(txCtx, model.LedgerDelta{
				CaseID:         c.ID,
				TokenSymbol:    c.TokenSymbol,
				TokenPriceUsdt: c.TokenPriceUsdt,
				RtuPercent:     c.RtuPercent,
				Kind:           model.EventUpgrade,
				DeltaSpentUsdt: 0,
				DeltaToken:     deltaToken,
				Metadata: map[string]any{
					"user_id":      userID,
					"item_id":      item.ID.String(),
					"source_value": item.TokenValue,
					"target_value": target.TokenValue,
					"chance":       chance,
					"success":      success,
				},
			})
			if err != nil {
				return err
			}
		}

		res = &model.UpgradeResult{
			Success: success,
			Chance:  chance,
			Item:    newItem,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("upgrade attempted",
		zap.Int("user_id", userID),
		zap.String("item_id", itemID.String()),
		zap.Bool("success", res.Success),
		zap.Float64("chance", res.Chance),
	)

	return res, nil
}
