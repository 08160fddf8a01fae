package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-workforce/internal/config"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/messaging/kafka/producer"
	"go-workforce/internal/shared/connection"
)

// RunWorker drains the transactional outbox into kafka until the context
// is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	gdb, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password,
		cfg.Database.Name, cfg.Database.Port, cfg.Database.SSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer db.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(db)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, logger, cfg.OutboxPollInterval)
	return nil
}
