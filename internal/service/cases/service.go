package cases

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"lootcase_backend/internal/config"
	"lootcase_backend/internal/repository"
	"lootcase_backend/internal/service"
)

type serv struct {
	caseCfgs  []config.CaseConfig
	caseRepo  repository.CaseRepository
	rtuCfg    config.RtuConfig
	txManager trm.Manager
	log       *zap.Logger
}

// NewCaseService Создать сервис управления кейсами
func NewCaseService(
	caseCfgs []config.CaseConfig,
	caseRepo repository.CaseRepository,
	rtuCfg config.RtuConfig,
	txManager trm.Manager,
	log *zap.Logger,
) service.CaseService {
	return &serv{
		caseCfgs:  caseCfgs,
		caseRepo:  caseRepo,
		rtuCfg:    rtuCfg,
		txManager: txManager,
		log:       log,
	}
}
