package upgrade

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"lootcase_backend/internal/config"
	"lootcase_backend/internal/repository"
	"lootcase_backend/internal/service"
)

type serv struct {
	caseRepo      repository.CaseRepository
	inventoryRepo repository.InventoryRepository
	rtuServ       service.RtuService
	rtuCfg        config.RtuConfig
	txManager     trm.Manager
	log           *zap.Logger
	rnd           func() float64
}

// NewUpgradeService Создать сервис апгрейдов предметов
func NewUpgradeService(
	caseRepo repository.CaseRepository,
	inventoryRepo repository.InventoryRepository,
	rtuServ service.RtuService,
	rtuCfg config.RtuConfig,
	txManager trm.Manager,
	log *zap.Logger,
	rnd func() float64,
) service.UpgradeService {
	return &serv{
		caseRepo:      caseRepo,
		inventoryRepo: inventoryRepo,
		rtuServ:       rtuServ,
		rtuCfg:        rtuCfg,
		txManager:     txManager,
		log:           log,
		rnd:           rnd,
	}
}
