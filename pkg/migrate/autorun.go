package migrate

import (
	"context"
	"errors"

	"github.com/lumenfoto/studio-backend/pkg/config"
	"github.com/lumenfoto/studio-backend/pkg/db"
	"github.com/lumenfoto/studio-backend/pkg/logger"
)

// MaybeRunDev applies the embedded migrations on boot when running in dev with
// STUDIO_AUTO_MIGRATE enabled. Other environments migrate through cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if client == nil {
		return errors.New("database client is required for auto-migrate")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return err
	}
	fsys, err := Source("")
	if err != nil {
		return err
	}

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "applying studio schema migrations (dev auto-run)")
	if err := Run(ctx, logg, sqlDB, fsys, "up", ""); err != nil {
		return err
	}
	logg.Info(ctx, "studio schema migrations applied")
	return nil
}
