package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-workforce/internal/events"
	"go-workforce/internal/notification"
)

type Config struct {
	Brokers []string
	GroupID string
}

// LeaveDecisionConsumer turns leave decision events into notification rows
// for the requester.
type LeaveDecisionConsumer struct {
	reader        *kafkago.Reader
	notifications notification.Repository
	logger        *zap.Logger
}

func NewLeaveDecisionConsumer(cfg Config, notifications notification.Repository, logger *zap.Logger) *LeaveDecisionConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   events.LeaveLifecycleTopic,
	})
	return &LeaveDecisionConsumer{
		reader:        reader,
		notifications: notifications,
		logger:        logger.Named("kafka.consumer.leave"),
	}
}

// Run consumes until the context is cancelled.
func (c *LeaveDecisionConsumer) Run(ctx context.Context) error {
	c.logger.Info("leave decision consumer started", zap.String("topic", events.LeaveLifecycleTopic))

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("leave decision consumer stopped")
				return c.reader.Close()
			}
			c.logger.Error("read message failed", zap.Error(err))
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			c.logger.Error("handle message failed",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
		}
	}
}

func (c *LeaveDecisionConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	var event events.LeaveDecidedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}

	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return err
	}

	n := &notification.Notification{
		EmployeeID: employeeID,
		Kind:       notification.KindLeaveDecided,
		Message:    fmt.Sprintf("Your leave request was %s", event.Status),
	}
	if err := c.notifications.Create(ctx, n); err != nil {
		return err
	}

	c.logger.Info("leave decision notified",
		zap.String("leave_id", event.LeaveID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("status", event.Status),
	)
	return nil
}
