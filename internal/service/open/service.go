package open

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"lootcase_backend/internal/repository"
	"lootcase_backend/internal/service"
)

type serv struct {
	caseRepo      repository.CaseRepository
	userRepo      repository.UserRepository
	inventoryRepo repository.InventoryRepository
	statsRepo     repository.RtuStatsRepository
	rtuServ       service.RtuService
	txManager     trm.Manager
	log           *zap.Logger
	rnd           func() float64
}

// NewOpenService Создать сервис открытия кейсов
func NewOpenService(
	caseRepo repository.CaseRepository,
	userRepo repository.UserRepository,
	inventoryRepo repository.InventoryRepository,
	statsRepo repository.RtuStatsRepository,
	rtuServ service.RtuService,
	txManager trm.Manager,
	log *zap.Logger,
	rnd func() float64,
) service.OpenService {
	return &serv{
		caseRepo:      caseRepo,
		userRepo:      userRepo,
		inventoryRepo: inventoryRepo,
		statsRepo:     statsRepo,
		rtuServ:       rtuServ,
		txManager:     txManager,
		log:           log,
		rnd:           rnd,
	}
}
