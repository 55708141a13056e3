package rtu

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository/rtu_stats_repo"
)

// Транзакция теста: Do выполняет замыкание под общим локом,
// моделируя сериализацию конкурентных транзакций на строке учета
type fakeTxManager struct {
	mtx sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return fn(ctx)
}

func (m *fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type fakeLedgerRepo struct {
	mtx    sync.Mutex
	nextID int
	rows   map[string]model.RtuLedger
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{rows: make(map[string]model.RtuLedger)}
}

func ledgerKey(caseID int, token string) string {
	return fmt.Sprintf("%d|%s", caseID, token)
}

func (r *fakeLedgerRepo) GetForUpdate(_ context.Context, caseID int, token string) (*model.RtuLedger, error) {
	return r.Get(nil, caseID, token)
}

func (r *fakeLedgerRepo) Get(_ context.Context, caseID int, token string) (*model.RtuLedger, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	row, ok := r.rows[ledgerKey(caseID, token)]
	if !ok {
		return nil, nil
	}
	out := row
	return &out, nil
}

func (r *fakeLedgerRepo) Create(_ context.Context, l *model.RtuLedger) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.nextID++
	stored := *l
	stored.ID = r.nextID
	r.rows[ledgerKey(l.CaseID, l.TokenSymbol)] = stored
	return r.nextID, nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, l *model.RtuLedger) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.rows[ledgerKey(l.CaseID, l.TokenSymbol)] = *l
	return nil
}

type fakeEventRepo struct {
	mtx    sync.Mutex
	events []model.RtuEvent
}

func (r *fakeEventRepo) Append(_ context.Context, e *model.RtuEvent) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeEventRepo) ListByLedger(_ context.Context, ledgerID int, limit int) ([]model.RtuEvent, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	var out []model.RtuEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].LedgerID == ledgerID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}

type fakeRtuConfig struct {
	buffer, reserve, upgradeRtu, maxRtu float64
}

func (c fakeRtuConfig) SteeringBufferPercent() float64 { return c.buffer }
func (c fakeRtuConfig) ReservePercent() float64        { return c.reserve }
func (c fakeRtuConfig) UpgradeRtuPercent() float64     { return c.upgradeRtu }
func (c fakeRtuConfig) MaxRtuPercent() float64         { return c.maxRtu }

func defaultRtuConfig() fakeRtuConfig {
	return fakeRtuConfig{buffer: 20, reserve: 10, upgradeRtu: 90, maxRtu: 98}
}

type testEnv struct {
	ledgerRepo *fakeLedgerRepo
	eventRepo  *fakeEventRepo
	serv       *serv
}

func newTestEnv(rnd func() float64) *testEnv {
	ledgerRepo := newFakeLedgerRepo()
	eventRepo := &fakeEventRepo{}
	s := NewRtuService(ledgerRepo, eventRepo, rtu_stats_repo.NewRtuStatsRepository(),
		defaultRtuConfig(), &fakeTxManager{}, zap.NewNop(), rnd)
	return &testEnv{
		ledgerRepo: ledgerRepo,
		eventRepo:  eventRepo,
		serv:       s.(*serv),
	}
}

func testCase() *model.Case {
	return &model.Case{
		ID:             1,
		Name:           "Bronze",
		PriceUsdt:      10,
		RtuPercent:     96,
		TokenSymbol:    "DGN",
		TokenPriceUsdt: 1,
		Active:         true,
		Rewards:        rewardsOf(1, 5, 20),
	}
}

func TestOpenDropCreatesLedgerLazily(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })
	c := testCase()

	sel, led, err := env.serv.OpenDrop(context.Background(), c, c.PriceUsdt, model.EventOpen, nil)
	require.NoError(t, err)

	assert.Equal(t, 10.0, led.TotalSpentUsdt)
	assert.Equal(t, sel.Reward.TokenValue, led.TotalTokenIssued)
	assert.InDelta(t, 10*0.96-sel.Reward.TokenValue, led.BufferDebtToken, 1e-9)

	// Событие аудита с отладочными величинами выбора
	require.Len(t, env.eventRepo.events, 1)
	evt := env.eventRepo.events[0]
	assert.Equal(t, model.EventOpen, evt.Kind)
	assert.Equal(t, 10.0, evt.DeltaSpentUsdt)
	assert.Equal(t, sel.Reward.TokenValue, evt.DeltaToken)
	assert.Equal(t, sel.Reward.TokenValue, evt.Metadata["chosen_value"])
	assert.Contains(t, evt.Metadata, "ideal_drop")
	assert.Contains(t, evt.Metadata, "max_safe_drop")
}

func TestOpenDropGuards(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })

	noPrice := testCase()
	noPrice.TokenPriceUsdt = 0
	_, _, err := env.serv.OpenDrop(context.Background(), noPrice, 10, model.EventOpen, nil)
	assert.ErrorIs(t, err, model.ErrLedgerUnavailable)

	noRewards := testCase()
	noRewards.Rewards = nil
	_, _, err = env.serv.OpenDrop(context.Background(), noRewards, 10, model.EventOpen, nil)
	assert.ErrorIs(t, err, model.ErrCaseUnavailable)
}

func TestApplyEventArithmetic(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })

	led, evt, err := env.serv.ApplyEvent(context.Background(), model.LedgerDelta{
		CaseID:         1,
		TokenSymbol:    "DGN",
		TokenPriceUsdt: 1,
		RtuPercent:     96,
		Kind:           model.EventBattle,
		DeltaSpentUsdt: 20,
		DeltaToken:     6,
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, led.TotalSpentUsdt)
	assert.Equal(t, 6.0, led.TotalTokenIssued)
	assert.InDelta(t, 20*0.96-6, led.BufferDebtToken, 1e-9)
	assert.Equal(t, model.EventBattle, evt.Kind)

	// Вторая дельта накапливается поверх первой
	led, _, err = env.serv.ApplyEvent(context.Background(), model.LedgerDelta{
		CaseID:         1,
		TokenSymbol:    "DGN",
		TokenPriceUsdt: 1,
		RtuPercent:     96,
		Kind:           model.EventUpgrade,
		DeltaToken:     40,
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, led.TotalSpentUsdt)
	assert.Equal(t, 46.0, led.TotalTokenIssued)
	// Перевыдача: буферный долг уходит в минус, но учет не ломается
	assert.Less(t, led.BufferDebtToken, 0.0)
}

func TestLedgerSnapshotRefresh(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })

	// Учет заведен со старыми параметрами кейса
	_, err := env.ledgerRepo.Create(context.Background(), &model.RtuLedger{
		CaseID:           1,
		TokenSymbol:      "DGN",
		TotalSpentUsdt:   100,
		TotalTokenIssued: 50,
		TokenPriceUsdt:   2,
		RtuPercent:       90,
	})
	require.NoError(t, err)

	c := testCase() // цена токена 1, rtu 96
	_, led, err := env.serv.OpenDrop(context.Background(), c, c.PriceUsdt, model.EventOpen, nil)
	require.NoError(t, err)

	// Параметры кейса авторитетны, накопленные суммы сохранены
	assert.Equal(t, 1.0, led.TokenPriceUsdt)
	assert.Equal(t, 96.0, led.RtuPercent)
	assert.Equal(t, 110.0, led.TotalSpentUsdt)
	assert.Greater(t, led.TotalTokenIssued, 50.0)
}

func TestAdjust(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })

	// Корректировка без строки учета - ошибка, а не создание
	_, err := env.serv.Adjust(context.Background(), 1, "DGN", 5, 0, "backfill")
	assert.ErrorIs(t, err, model.ErrLedgerUnavailable)

	c := testCase()
	_, _, err = env.serv.OpenDrop(context.Background(), c, c.PriceUsdt, model.EventOpen, nil)
	require.NoError(t, err)

	led, err := env.serv.Adjust(context.Background(), 1, "DGN", -10, 0, "refund")
	require.NoError(t, err)
	assert.Equal(t, 0.0, led.TotalSpentUsdt)

	last := env.eventRepo.events[len(env.eventRepo.events)-1]
	assert.Equal(t, model.EventAdjust, last.Kind)
	assert.Equal(t, "refund", last.Metadata["reason"])
}

func TestLedgerRead(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })

	_, _, err := env.serv.Ledger(context.Background(), 1, "DGN")
	assert.ErrorIs(t, err, model.ErrLedgerUnavailable)

	c := testCase()
	for i := 0; i < 3; i++ {
		_, _, err = env.serv.OpenDrop(context.Background(), c, c.PriceUsdt, model.EventOpen, nil)
		require.NoError(t, err)
	}

	led, events, err := env.serv.Ledger(context.Background(), 1, "DGN")
	require.NoError(t, err)
	assert.Equal(t, 30.0, led.TotalSpentUsdt)
	assert.Len(t, events, 3)
}

func TestOpenDropConcurrentSerialization(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })
	c := testCase()

	// Каждое открытие идет через транзакцию с row-локом: конкурентные
	// вызовы сериализуются и обновления учета не теряются
	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := env.serv.txManager.Do(context.Background(), func(txCtx context.Context) error {
				_, _, err := env.serv.OpenDrop(txCtx, c, c.PriceUsdt, model.EventOpen, nil)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	led, err := env.ledgerRepo.Get(context.Background(), 1, "DGN")
	require.NoError(t, err)
	require.NotNil(t, led)

	assert.Equal(t, float64(workers)*c.PriceUsdt, led.TotalSpentUsdt)

	// Выдано ровно столько, сколько записано в аудите
	var issued float64
	for _, e := range env.eventRepo.events {
		issued += e.DeltaToken
	}
	assert.InDelta(t, issued, led.TotalTokenIssued, 1e-9)
	assert.Len(t, env.eventRepo.events, workers)
}
