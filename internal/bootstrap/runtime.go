// Package bootstrap wires the runtime dependencies used by the commands.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. The Redis client is nil
// when the server is unreachable; sessions then fall back to the in-memory
// store.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if err := EnsureAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("admin bootstrap failed: %w", err)
	}

	return db, cache.GetClient(), nil
}

// EnsureAdmin creates or repairs the configured admin account. It only
// acts when BOOTSTRAP_ADMIN is enabled, which is a development
// convenience; production admins are promoted through the admin surface.
func EnsureAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil || !cfg.BootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" {
		username = "admin"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	if email == "" {
		email = "admin@inkwell.local"
	}
	if cfg.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be set when BOOTSTRAP_ADMIN is enabled")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("username = ?", username).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Username: username,
				Email:    email,
				Password: string(hash),
				Role:     models.RoleAdmin,
				Active:   true,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			updates := map[string]interface{}{
				"role":   models.RoleAdmin,
				"active": true,
			}
			if cfg.ForceAdminRefresh {
				updates["email"] = email
				updates["password"] = string(hash)
			}
			return tx.Model(&models.User{}).Where("id = ?", admin.ID).Updates(updates).Error
		}
	})
}
