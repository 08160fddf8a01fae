package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-workforce/internal/config"
	"go-workforce/internal/messaging/kafka/consumer"
	"go-workforce/internal/notification"
	"go-workforce/internal/shared/connection"
)

// RunConsumer processes leave decision events into notifications until the
// context is cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	gdb, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password,
		cfg.Database.Name, cfg.Database.Port, cfg.Database.SSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	notificationRepo := notification.NewRepository(gdb)
	c := consumer.NewLeaveDecisionConsumer(consumer.Config{
		Brokers: []string{cfg.KafkaBroker},
		GroupID: cfg.ConsumerGroupID,
	}, notificationRepo, logger)

	return c.Run(ctx)
}
