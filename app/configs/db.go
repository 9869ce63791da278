package configs

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (e ENV) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

// OpenConnection retries until the database answers or ctx is cancelled.
func OpenConnection(ctx context.Context, env ENV, logger *zap.Logger) (*gorm.DB, error) {
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("database connection cancelled: %w", err)
		}

		logger.Info("connecting to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.String("host", env.DBHost),
			zap.String("database", env.DBName),
		)
		db, err := gorm.Open(mysql.Open(env.DSN()), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.PingContext(ctx)
				if pingErr == nil {
					logger.Info("database connection successful")
					return db, nil
				}
				_ = sqlDB.Close()
			}

			logger.Warn("failed to ping database", zap.Error(pingErr), zap.Duration("retry_in", retryDelay))
		} else {
			logger.Warn("failed to open GORM connection", zap.Error(err), zap.Duration("retry_in", retryDelay))
		}

		timer := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("database connection cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("failed to connect to the database %s on %s after %d retries", env.DBName, env.DBHost, maxRetries)
}
