package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mocks/notification_repo_mock.go -package=mocks

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, employeeID uuid.UUID) error
}

type repository struct {
	gdb *gorm.DB
}

func NewRepository(gdb *gorm.DB) Repository {
	return &repository{gdb: gdb}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now().UTC()
	return r.gdb.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	query := r.gdb.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, id uuid.UUID, employeeID uuid.UUID) error {
	result := r.gdb.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND employee_id = ?", id, employeeID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
