package app

import (
	"context"
	battleAPI "lootcase_backend/internal/api/battle"
	casesAPI "lootcase_backend/internal/api/cases"
	openAPI "lootcase_backend/internal/api/open"
	rtuAPI "lootcase_backend/internal/api/rtu"
	upgradeAPI "lootcase_backend/internal/api/upgrade"
	"lootcase_backend/internal/config"
	"lootcase_backend/internal/config/env"
	"lootcase_backend/internal/logger"
	"lootcase_backend/internal/middleware"
	"lootcase_backend/internal/repository"
	"lootcase_backend/internal/repository/case_repo"
	"lootcase_backend/internal/repository/event_repo"
	"lootcase_backend/internal/repository/inventory_repo"
	"lootcase_backend/internal/repository/ledger_repo"
	"lootcase_backend/internal/repository/rtu_stats_repo"
	"lootcase_backend/internal/repository/user_repo"
	"lootcase_backend/internal/service"
	"lootcase_backend/internal/service/battle"
	"lootcase_backend/internal/service/cases"
	"lootcase_backend/internal/service/open"
	"lootcase_backend/internal/service/rtu"
	"lootcase_backend/internal/service/upgrade"
	"math/rand"
	"os"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Logger
	log *zap.Logger

	// Auth bits
	jwtCfg config.JWTConfig

	// User bits
	userRepo repository.UserRepository

	// Case bits
	caseCfgs []config.CaseConfig
	caseRepo repository.CaseRepository
	caseServ service.CaseService
	caseHand *casesAPI.Handler

	// RTU bits
	rtuCfg     config.RtuConfig
	ledgerRepo repository.LedgerRepository
	eventRepo  repository.EventRepository
	statsRepo  repository.RtuStatsRepository
	rtuServ    service.RtuService
	rtuHand    *rtuAPI.Handler

	// Open bits
	inventoryRepo repository.InventoryRepository
	openServ      service.OpenService
	openHand      *openAPI.Handler

	// Battle bits
	battleServ service.BattleService
	battleHand *battleAPI.Handler

	// Upgrade bits
	upgradeServ service.UpgradeService
	upgradeHand *upgradeAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(os.Getenv("ENV"))
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) RtuCfg() config.RtuConfig {
	if sp.rtuCfg == nil {
		cfg, err := env.NewRtuConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get rtu config: " + err.Error())
		}
		sp.rtuCfg = cfg
	}
	return sp.rtuCfg
}

func (sp *ServiceProvider) CaseCfgs() []config.CaseConfig {
	if sp.caseCfgs == nil {
		cfg, err := env.NewCaseConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get case config: " + err.Error())
		}
		sp.caseCfgs = cfg
	}
	return sp.caseCfgs
}

func (sp *ServiceProvider) CaseRepository(ctx context.Context) repository.CaseRepository {
	if sp.caseRepo == nil {
		sp.caseRepo = case_repo.NewCaseRepository(sp.DBClient(ctx))
	}
	return sp.caseRepo
}

func (sp *ServiceProvider) LedgerRepository(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.DBClient(ctx))
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) EventRepository(ctx context.Context) repository.EventRepository {
	if sp.eventRepo == nil {
		sp.eventRepo = event_repo.NewEventRepository(sp.DBClient(ctx))
	}
	return sp.eventRepo
}

func (sp *ServiceProvider) RtuStatsRepository() repository.RtuStatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = rtu_stats_repo.NewRtuStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) InventoryRepository(ctx context.Context) repository.InventoryRepository {
	if sp.inventoryRepo == nil {
		sp.inventoryRepo = inventory_repo.NewInventoryRepository(sp.DBClient(ctx))
	}
	return sp.inventoryRepo
}

func (sp *ServiceProvider) RtuService(ctx context.Context) service.RtuService {
	if sp.rtuServ == nil {
		sp.rtuServ = rtu.NewRtuService(
			sp.LedgerRepository(ctx),
			sp.EventRepository(ctx),
			sp.RtuStatsRepository(),
			sp.RtuCfg(),
			sp.TXManager(ctx),
			sp.Logger(),
			rand.Float64,
		)
	}
	return sp.rtuServ
}

func (sp *ServiceProvider) CaseService(ctx context.Context) service.CaseService {
	if sp.caseServ == nil {
		sp.caseServ = cases.NewCaseService(
			sp.CaseCfgs(),
			sp.CaseRepository(ctx),
			sp.RtuCfg(),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.caseServ
}

func (sp *ServiceProvider) OpenService(ctx context.Context) service.OpenService {
	if sp.openServ == nil {
		sp.openServ = open.NewOpenService(
			sp.CaseRepository(ctx),
			sp.UserRepo(ctx),
			sp.InventoryRepository(ctx),
			sp.RtuStatsRepository(),
			sp.RtuService(ctx),
			sp.TXManager(ctx),
			sp.Logger(),
			rand.Float64,
		)
	}
	return sp.openServ
}

func (sp *ServiceProvider) BattleService(ctx context.Context) service.BattleService {
	if sp.battleServ == nil {
		sp.battleServ = battle.NewBattleService(
			sp.CaseRepository(ctx),
			sp.LedgerRepository(ctx),
			sp.UserRepo(ctx),
			sp.InventoryRepository(ctx),
			sp.RtuService(ctx),
			sp.RtuCfg(),
			sp.TXManager(ctx),
			sp.Logger(),
			rand.Float64,
		)
	}
	return sp.battleServ
}

func (sp *ServiceProvider) UpgradeService(ctx context.Context) service.UpgradeService {
	if sp.upgradeServ == nil {
		sp.upgradeServ = upgrade.NewUpgradeService(
			sp.CaseRepository(ctx),
			sp.InventoryRepository(ctx),
			sp.RtuService(ctx),
			sp.RtuCfg(),
			sp.TXManager(ctx),
			sp.Logger(),
			rand.Float64,
		)
	}
	return sp.upgradeServ
}

func (sp *ServiceProvider) CaseHandler(ctx context.Context) *casesAPI.Handler {
	if sp.caseHand == nil {
		sp.caseHand = casesAPI.NewHandler(casesAPI.HandlerDeps{Serv: sp.CaseService(ctx)})
	}
	return sp.caseHand
}

func (sp *ServiceProvider) OpenHandler(ctx context.Context) *openAPI.Handler {
	if sp.openHand == nil {
		sp.openHand = openAPI.NewHandler(openAPI.HandlerDeps{Serv: sp.OpenService(ctx)})
	}
	return sp.openHand
}

func (sp *ServiceProvider) BattleHandler(ctx context.Context) *battleAPI.Handler {
	if sp.battleHand == nil {
		sp.battleHand = battleAPI.NewHandler(battleAPI.HandlerDeps{Serv: sp.BattleService(ctx)})
	}
	return sp.battleHand
}

func (sp *ServiceProvider) UpgradeHandler(ctx context.Context) *upgradeAPI.Handler {
	if sp.upgradeHand == nil {
		sp.upgradeHand = upgradeAPI.NewHandler(upgradeAPI.HandlerDeps{Serv: sp.UpgradeService(ctx)})
	}
	return sp.upgradeHand
}

func (sp *ServiceProvider) RtuHandler(ctx context.Context) *rtuAPI.Handler {
	if sp.rtuHand == nil {
		sp.rtuHand = rtuAPI.NewHandler(rtuAPI.HandlerDeps{Serv: sp.RtuService(ctx)})
	}
	return sp.rtuHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		auth := middleware.Auth(sp.JWTCfg().AccessTokenSecretKey())

		// Case endpoints
		caseHandler := sp.CaseHandler(ctx)
		r.Route("/cases", func(rr chi.Router) {
			rr.Post("/", caseHandler.Create)
			rr.Get("/", caseHandler.List)
			rr.Get("/{id}", caseHandler.Get)
		})

		// Player endpoints
		openHandler := sp.OpenHandler(ctx)
		battleHandler := sp.BattleHandler(ctx)
		upgradeHandler := sp.UpgradeHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(auth)
			rr.Post("/open", openHandler.Open)
			rr.Post("/battle", battleHandler.Resolve)
			rr.Post("/upgrade", upgradeHandler.Upgrade)
		})

		// RTU endpoints
		rtuHandler := sp.RtuHandler(ctx)
		r.Route("/rtu", func(rr chi.Router) {
			rr.Get("/ledger/{caseID}/{token}", rtuHandler.Ledger)
			rr.Get("/stats/{caseID}", rtuHandler.Stats)
			rr.Post("/adjust", rtuHandler.Adjust)
		})

		sp.router = r
	}

	return sp.router
}
