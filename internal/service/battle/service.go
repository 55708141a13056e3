package battle

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"lootcase_backend/internal/config"
	"lootcase_backend/internal/repository"
	"lootcase_backend/internal/service"
)

type serv struct {
	caseRepo      repository.CaseRepository
	ledgerRepo    repository.LedgerRepository
	userRepo      repository.UserRepository
	inventoryRepo repository.InventoryRepository
	rtuServ       service.RtuService
	rtuCfg        config.RtuConfig
	txManager     trm.Manager
	log           *zap.Logger
	rnd           func() float64
}

// NewBattleService Создать сервис батлов
func NewBattleService(
	caseRepo repository.CaseRepository,
	ledgerRepo repository.LedgerRepository,
	userRepo repository.UserRepository,
	inventoryRepo repository.InventoryRepository,
	rtuServ service.RtuService,
	rtuCfg config.RtuConfig,
	txManager trm.Manager,
	log *zap.Logger,
	rnd func() float64,
) service.BattleService {
	return &serv{
		caseRepo:      caseRepo,
		ledgerRepo:    ledgerRepo,
		userRepo:      userRepo,
		inventoryRepo: inventoryRepo,
		rtuServ:       rtuServ,
		rtuCfg:        rtuCfg,
		txManager:     txManager,
		log:           log,
		rnd:           rnd,
	}
}
