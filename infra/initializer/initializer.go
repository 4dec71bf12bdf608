// Package initializer builds the application dependency graph: logger,
// database, unit of work and the ledger services.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/sociomart/backend/config"
	"github.com/sociomart/backend/infra"
	infrarepo "github.com/sociomart/backend/infra/repository"
	"github.com/sociomart/backend/pkg/repository"
	"github.com/sociomart/backend/pkg/reward"
	"github.com/sociomart/backend/pkg/service/market"
	"github.com/sociomart/backend/pkg/service/social"
	"gorm.io/gorm"
)

// Deps holds everything the web layer needs.
type Deps struct {
	Logger *slog.Logger
	Cfg    *config.AppConfig
	DB     *gorm.DB
	Uow    repository.UnitOfWork
	Social *social.Service
	Market *market.Service
}

// InitializeDependencies wires the full dependency graph from config.
func InitializeDependencies(cfg *config.AppConfig) (*Deps, error) {
	logger := SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	policy := reward.Policy{
		Follow:  cfg.Rewards.Follow,
		Like:    cfg.Rewards.Like,
		Comment: cfg.Rewards.Comment,
	}

	return &Deps{
		Logger: logger,
		Cfg:    cfg,
		DB:     db,
		Uow:    uow,
		Social: social.NewService(uow, policy, logger),
		Market: market.NewService(uow, logger),
	}, nil
}
