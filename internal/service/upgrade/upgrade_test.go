package upgrade

import (
	"context"
	"fmt"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lootcase_backend/internal/middleware"
	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository/rtu_stats_repo"
	"lootcase_backend/internal/service"
	"lootcase_backend/internal/service/rtu"
)

const testUserID = 5

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCaseRepo struct {
	cases map[int]*model.Case
}

func (r *fakeCaseRepo) CreateCase(_ context.Context, c *model.Case) (int, error) {
	id := len(r.cases) + 1
	c.ID = id
	r.cases[id] = c
	return id, nil
}

func (r *fakeCaseRepo) GetCase(_ context.Context, id int) (*model.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, fmt.Errorf("%w: case %d not found", model.ErrCaseUnavailable, id)
	}
	out := *c
	return &out, nil
}

func (r *fakeCaseRepo) GetCaseByName(_ context.Context, name string) (*model.Case, error) {
	for _, c := range r.cases {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: case %q not found", model.ErrCaseUnavailable, name)
}

func (r *fakeCaseRepo) ListActiveCases(_ context.Context) ([]model.Case, error) {
	var out []model.Case
	for _, c := range r.cases {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeLedgerRepo struct {
	nextID int
	rows   map[string]model.RtuLedger
}

func ledgerKey(caseID int, token string) string {
	return fmt.Sprintf("%d|%s", caseID, token)
}

func (r *fakeLedgerRepo) GetForUpdate(ctx context.Context, caseID int, token string) (*model.RtuLedger, error) {
	return r.Get(ctx, caseID, token)
}

func (r *fakeLedgerRepo) Get(_ context.Context, caseID int, token string) (*model.RtuLedger, error) {
	row, ok := r.rows[ledgerKey(caseID, token)]
	if !ok {
		return nil, nil
	}
	out := row
	return &out, nil
}

func (r *fakeLedgerRepo) Create(_ context.Context, l *model.RtuLedger) (int, error) {
	r.nextID++
	stored := *l
	stored.ID = r.nextID
	r.rows[ledgerKey(l.CaseID, l.TokenSymbol)] = stored
	return r.nextID, nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, l *model.RtuLedger) error {
	r.rows[ledgerKey(l.CaseID, l.TokenSymbol)] = *l
	return nil
}

type fakeEventRepo struct {
	events []model.RtuEvent
}

func (r *fakeEventRepo) Append(_ context.Context, e *model.RtuEvent) error {
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeEventRepo) ListByLedger(_ context.Context, ledgerID int, limit int) ([]model.RtuEvent, error) {
	var out []model.RtuEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].LedgerID == ledgerID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]model.InventoryItem
}

func (r *fakeInventoryRepo) AddItem(_ context.Context, item *model.InventoryItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeInventoryRepo) GetItem(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %s not found", model.ErrItemUnavailable, id)
	}
	return &item, nil
}

func (r *fakeInventoryRepo) ReplaceItem(_ context.Context, id uuid.UUID, tokenValue float64) error {
	item := r.items[id]
	item.TokenValue = tokenValue
	r.items[id] = item
	return nil
}

func (r *fakeInventoryRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type fakeRtuConfig struct {
	upgradeRtu float64
}

func (c fakeRtuConfig) SteeringBufferPercent() float64 { return 20 }
func (c fakeRtuConfig) ReservePercent() float64        { return 10 }
func (c fakeRtuConfig) MaxRtuPercent() float64         { return 98 }

func (c fakeRtuConfig) UpgradeRtuPercent() float64 {
	if c.upgradeRtu != 0 {
		return c.upgradeRtu
	}
	return 90
}

type testEnv struct {
	caseRepo      *fakeCaseRepo
	ledgerRepo    *fakeLedgerRepo
	eventRepo     *fakeEventRepo
	inventoryRepo *fakeInventoryRepo
	serv          service.UpgradeService
}

func newTestEnv(rnd func() float64) *testEnv {
	return newTestEnvWithConfig(rnd, fakeRtuConfig{})
}

func newTestEnvWithConfig(rnd func() float64, cfg fakeRtuConfig) *testEnv {
	caseRepo := &fakeCaseRepo{cases: make(map[int]*model.Case)}
	ledgerRepo := &fakeLedgerRepo{rows: make(map[string]model.RtuLedger)}
	eventRepo := &fakeEventRepo{}
	inventoryRepo := &fakeInventoryRepo{items: make(map[uuid.UUID]model.InventoryItem)}

	rtuServ := rtu.NewRtuService(ledgerRepo, eventRepo, rtu_stats_repo.NewRtuStatsRepository(),
		cfg, fakeTxManager{}, zap.NewNop(), rnd)

	return &testEnv{
		caseRepo:      caseRepo,
		ledgerRepo:    ledgerRepo,
		eventRepo:     eventRepo,
		inventoryRepo: inventoryRepo,
		serv: NewUpgradeService(caseRepo, inventoryRepo, rtuServ,
			cfg, fakeTxManager{}, zap.NewNop(), rnd),
	}
}

// Кейс с наградами {1, 5, 20} и предмет номиналом 5 у тестового пользователя
func (env *testEnv) seed(t *testing.T) uuid.UUID {
	t.Helper()

	env.caseRepo.cases[1] = &model.Case{
		ID:             1,
		Name:           "Bronze",
		PriceUsdt:      10,
		RtuPercent:     96,
		TokenSymbol:    "DGN",
		TokenPriceUsdt: 1,
		Active:         true,
		Rewards: []model.Reward{
			{ID: 1, CaseID: 1, TokenValue: 1},
			{ID: 2, CaseID: 1, TokenValue: 5},
			{ID: 3, CaseID: 1, TokenValue: 20},
		},
	}

	item := model.InventoryItem{
		ID:          uuid.New(),
		UserID:      testUserID,
		CaseID:      1,
		TokenSymbol: "DGN",
		TokenValue:  5,
	}
	require.NoError(t, env.inventoryRepo.AddItem(context.Background(), &item))
	return item.ID
}

func userCtx() context.Context {
	return middleware.WithUserID(context.Background(), testUserID)
}

func TestUpgradeSuccess(t *testing.T) {
	// Шанс 5/20 * 90/100 = 0.225, u=0.1 - успех
	env := newTestEnv(func() float64 { return 0.1 })
	itemID := env.seed(t)

	res, err := env.serv.Upgrade(userCtx(), itemID, 3)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.InDelta(t, 0.225, res.Chance, 1e-9)
	require.NotNil(t, res.Item)
	assert.Equal(t, 20.0, res.Item.TokenValue)

	// Предмет заменен на месте
	stored, err := env.inventoryRepo.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, stored.TokenValue)

	// В учет легла разница номиналов, трат нет
	require.Len(t, env.eventRepo.events, 1)
	evt := env.eventRepo.events[0]
	assert.Equal(t, model.EventUpgrade, evt.Kind)
	assert.Zero(t, evt.DeltaSpentUsdt)
	assert.Equal(t, 15.0, evt.DeltaToken)
	assert.Equal(t, true, evt.Metadata["success"])
}

func TestUpgradeFailureBurnsItem(t *testing.T) {
	// u=0.9 выше шанса 0.225 - провал
	env := newTestEnv(func() float64 { return 0.9 })
	itemID := env.seed(t)

	res, err := env.serv.Upgrade(userCtx(), itemID, 3)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Nil(t, res.Item)

	_, err = env.inventoryRepo.GetItem(context.Background(), itemID)
	assert.ErrorIs(t, err, model.ErrItemUnavailable)

	// Провал тоже в аудите, дельта выдачи нулевая
	require.Len(t, env.eventRepo.events, 1)
	evt := env.eventRepo.events[0]
	assert.Equal(t, model.EventUpgrade, evt.Kind)
	assert.Zero(t, evt.DeltaToken)
	assert.Equal(t, false, evt.Metadata["success"])
}

func TestUpgradeChanceCap(t *testing.T) {
	// Щедрая политика и близкие номиналы: сырой шанс 19.9/20 = 0.995
	// упирается в потолок 0.95
	env := newTestEnvWithConfig(func() float64 { return 0.99 }, fakeRtuConfig{upgradeRtu: 100})
	itemID := env.seed(t)

	require.NoError(t, env.inventoryRepo.ReplaceItem(context.Background(), itemID, 19.9))

	res, err := env.serv.Upgrade(userCtx(), itemID, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, res.Chance, 1e-9)
}

func TestUpgradeValidation(t *testing.T) {
	env := newTestEnv(func() float64 { return 0.5 })
	itemID := env.seed(t)

	// Чужая награда
	_, err := env.serv.Upgrade(userCtx(), itemID, 99)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	// Цель не дороже предмета
	_, err = env.serv.Upgrade(userCtx(), itemID, 2)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = env.serv.Upgrade(userCtx(), itemID, 1)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	// Чужой предмет
	foreign := model.InventoryItem{ID: uuid.New(), UserID: 42, CaseID: 1, TokenSymbol: "DGN", TokenValue: 5}
	require.NoError(t, env.inventoryRepo.AddItem(context.Background(), &foreign))
	_, err = env.serv.Upgrade(userCtx(), foreign.ID, 3)
	assert.ErrorIs(t, err, model.ErrItemUnavailable)

	// Несуществующий предмет
	_, err = env.serv.Upgrade(userCtx(), uuid.New(), 3)
	assert.ErrorIs(t, err, model.ErrItemUnavailable)
}
