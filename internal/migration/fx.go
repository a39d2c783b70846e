package migration

import (
	"github.com/steeplehq/steeple/internal/config"
	"github.com/steeplehq/steeple/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		if err := seed.EnsurePlanCatalog(conn); err != nil {
			return err
		}

		if cfg.DefaultChurchID != 0 {
			return seed.EnsureDefaultChurchWithID(conn, cfg.DefaultChurchID)
		}
		return nil
	}),
)
