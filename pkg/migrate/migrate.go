package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pressly/goose/v3"

	"github.com/lumenfoto/studio-backend/pkg/logger"
)

// DefaultDir is where migration files live in the source tree.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Commands lists what Run understands.
var Commands = []string{"up", "down", "redo", "status", "version"}

// Source returns the migrations compiled into the binary, or the files under dir
// when one is given.
func Source(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embedded, "migrations")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations dir %q: %w", dir, err)
	}
	return os.DirFS(dir), nil
}

// Run executes command against db. target is the YYYYMMDDHHMMSS version for "version".
func Run(ctx context.Context, logg *logger.Logger, db *sql.DB, fsys fs.FS, command, target string) error {
	if db == nil {
		return errors.New("db is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	// contracts, users and bookings live in Postgres
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	var results []*goose.MigrationResult
	switch command {
	case "up":
		results, err = provider.Up(ctx)
	case "down":
		results, err = single(provider.Down(ctx))
	case "redo":
		if results, err = single(provider.Down(ctx)); err == nil {
			var up []*goose.MigrationResult
			up, err = single(provider.UpByOne(ctx))
			results = append(results, up...)
		}
	case "version":
		results, err = toVersion(ctx, provider, target)
	case "status":
		return logStatus(ctx, logg, provider)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}

	for _, res := range results {
		logResult(ctx, logg, res)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func single(res *goose.MigrationResult, err error) ([]*goose.MigrationResult, error) {
	if res == nil {
		return nil, err
	}
	return []*goose.MigrationResult{res}, err
}

// toVersion moves the schema up or down until it sits at target.
func toVersion(ctx context.Context, provider *goose.Provider, target string) ([]*goose.MigrationResult, error) {
	if target == "" {
		return nil, errors.New("target version is required")
	}
	version, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", target, err)
	}
	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("get db version: %w", err)
	}
	switch {
	case current == version:
		return nil, nil
	case current < version:
		return provider.UpTo(ctx, version)
	default:
		return provider.DownTo(ctx, version)
	}
}

func logResult(ctx context.Context, logg *logger.Logger, res *goose.MigrationResult) {
	if res == nil || res.Source == nil {
		return
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"version":     res.Source.Version,
		"file":        res.Source.Path,
		"direction":   res.Direction,
		"duration_ms": res.Duration.Milliseconds(),
	})
	if res.Error != nil {
		logg.Error(ctx, "migration.failed", res.Error)
		return
	}
	logg.Info(ctx, "migration.applied")
}

func logStatus(ctx context.Context, logg *logger.Logger, provider *goose.Provider) error {
	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	for _, st := range statuses {
		fields := map[string]any{
			"version": st.Source.Version,
			"file":    st.Source.Path,
			"state":   string(st.State),
		}
		if !st.AppliedAt.IsZero() {
			fields["applied_at"] = st.AppliedAt
		}
		logg.Info(logg.WithFields(ctx, fields), "migration.status")
	}
	return nil
}
