package cases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/service/rtu"
)

// Create заводит новый кейс: солвер фиксирует статические вероятности
// наград под заявленный RTU, после чего кейс неизменяем
func (s *serv) Create(ctx context.Context, in model.CaseInput) (*model.Case, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: case name is required", model.ErrInvalidInput)
	}
	if in.TokenSymbol == "" {
		return nil, fmt.Errorf("%w: token symbol is required", model.ErrInvalidInput)
	}
	// Бизнес-правило: заявленный RTU не выше потолка из конфига
	if in.RtuPercent > s.rtuCfg.MaxRtuPercent() {
		return nil, fmt.Errorf("%w: rtu %.2f above cap %.2f", model.ErrInvalidInput, in.RtuPercent, s.rtuCfg.MaxRtuPercent())
	}

	rewards := make([]model.Reward, len(in.RewardValues))
	for i, v := range in.RewardValues {
		rewards[i] = model.Reward{TokenValue: v}
	}

	// КЛЮЧЕВОЙ ВЫЗОВ
	solved, err := rtu.Solve(rewards, in.PriceUsdt, in.RtuPercent, in.TokenPriceUsdt)
	if err != nil {
		return nil, err
	}

	c := &model.Case{
		Name:           in.Name,
		PriceUsdt:      in.PriceUsdt,
		RtuPercent:     in.RtuPercent,
		TokenSymbol:    in.TokenSymbol,
		TokenPriceUsdt: in.TokenPriceUsdt,
		Active:         true,
		Rewards:        solved,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		id, err := s.caseRepo.CreateCase(txCtx, c)
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("case created",
		zap.Int("case_id", c.ID),
		zap.String("name", c.Name),
		zap.Float64("rtu_percent", c.RtuPercent),
		zap.Int("rewards", len(c.Rewards)),
	)

	return c, nil
}

// Get - кейс со всеми наградами
func (s *serv) Get(ctx context.Context, id int) (*model.Case, error) {
	return s.caseRepo.GetCase(ctx, id)
}

// List - активные кейсы (витрина)
func (s *serv) List(ctx context.Context) ([]model.Case, error) {
	return s.caseRepo.ListActiveCases(ctx)
}

// Seed заводит сид-кейсы из config.yaml, которых еще нет в БД
func (s *serv) Seed(ctx context.Context) error {
	for _, cfg := range s.caseCfgs {
		existing, err := s.caseRepo.GetCaseByName(ctx, cfg.Name())
		if err != nil && !errors.Is(err, model.ErrCaseUnavailable) {
			return err
		}
		if existing != nil {
			continue
		}

		_, err = s.Create(ctx, model.CaseInput{
			Name:           cfg.Name(),
			PriceUsdt:      cfg.PriceUsdt(),
			RtuPercent:     cfg.RtuPercent(),
			TokenSymbol:    cfg.TokenSymbol(),
			TokenPriceUsdt: cfg.TokenPriceUsdt(),
			RewardValues:   cfg.RewardValues(),
		})
		if err != nil {
			return fmt.Errorf("seed case %q: %w", cfg.Name(), err)
		}
	}
	return nil
}
