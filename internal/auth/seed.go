package auth

import (
	"context"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/infrastructure/config"
	"github.com/taskdeck/taskdeck/internal/infrastructure/logging"
)

// SeedAdmin guarantees the configured administrator account exists before
// the server accepts traffic.
//
// If the seed email is already present in the admins partition
// (case-insensitively) nothing happens; in particular an existing account's
// password hash is never overwritten. Idempotent across restarts.
func SeedAdmin(ctx context.Context, store *account.Store, cfg config.SeedConfig, logger *logging.Logger) error {
	tx, err := store.Begin(ctx, account.RoleAdmin)
	if err != nil {
		return fmt.Errorf("loading admin partition: %w", err)
	}
	defer tx.Close()

	if account.ContainsEmail(tx.Accounts, cfg.Email) {
		logger.Info("seed admin already present, skipping",
			"email", account.NormalizeEmail(cfg.Email),
		)
		return nil
	}

	hash, err := HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	admin := account.New(cfg.Name, cfg.Email, hash, account.RoleAdmin)
	tx.Accounts = append(tx.Accounts, admin)

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("persisting seed admin: %w", err)
	}

	logger.Warn("seed admin account created",
		"email", admin.Email,
		"action_required", "change the default password immediately",
	)
	return nil
}
