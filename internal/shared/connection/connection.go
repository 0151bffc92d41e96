package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// retryDelay is a var so tests can shrink it.
var retryDelay = 5 * time.Second

// withRetry calls attempt up to maxRetries times, sleeping retryDelay between
// failures, and returns the last error.
func withRetry(name string, maxRetries int, attempt func() error) error {
	log := zap.L().Named("connection")
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = attempt(); lastErr == nil {
			log.Info("connected", zap.String("target", name))
			return nil
		}
		log.Warn("connect failed",
			zap.String("target", name),
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(lastErr),
		)
		if i < maxRetries {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("%s connection failed after %d retries: %w", name, maxRetries, lastErr)
}

// PostgresDSN pins the session to UTC; attendance dates are converted to
// the company timezone in the service layer.
func PostgresDSN(host, user, password, dbname, port, sslmode string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, dbname, port, sslmode,
	)
}

func ConnectGORMWithRetry(
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {
	dsn := PostgresDSN(host, user, password, dbname, port, sslmode)

	var db *gorm.DB
	err := withRetry("postgres", maxRetries, func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			// services open their own *sql.Tx around multi-row writes
			SkipDefaultTransaction: true,
			NowFunc:                func() time.Time { return time.Now().UTC() },
		})
		if err != nil {
			return err
		}

		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return err
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := withRetry("redis", maxRetries, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
