package rtu

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"lootcase_backend/internal/config"
	"lootcase_backend/internal/repository"
	"lootcase_backend/internal/service"
)

type serv struct {
	ledgerRepo repository.LedgerRepository
	eventRepo  repository.EventRepository
	statsRepo  repository.RtuStatsRepository
	rtuCfg     config.RtuConfig
	txManager  trm.Manager
	log        *zap.Logger
	rnd        func() float64
}

// NewRtuService Создать сервис RTU-учета
func NewRtuService(
	ledgerRepo repository.LedgerRepository,
	eventRepo repository.EventRepository,
	statsRepo repository.RtuStatsRepository,
	rtuCfg config.RtuConfig,
	txManager trm.Manager,
	log *zap.Logger,
	rnd func() float64,
) service.RtuService {
	return &serv{
		ledgerRepo: ledgerRepo,
		eventRepo:  eventRepo,
		statsRepo:  statsRepo,
		rtuCfg:     rtuCfg,
		txManager:  txManager,
		log:        log,
		rnd:        rnd,
	}
}
