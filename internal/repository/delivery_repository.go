package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"alerting-platform/internal/domain"
)

// DeliveryRepository persists delivery attempts. Rows are insert-only;
// retries create new rows.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.NotificationDelivery) error
	CountByStatus(ctx context.Context) (map[domain.DeliveryStatus]int64, error)
}

type deliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	query := `
		INSERT INTO notification_deliveries (delivery_id, alert_id, user_id, channel, status, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		delivery.ID, delivery.AlertID, delivery.UserID, delivery.Channel,
		delivery.Status, delivery.DeliveredAt,
	).Scan(&delivery.CreatedAt)
}

func (r *deliveryRepository) CountByStatus(ctx context.Context) (map[domain.DeliveryStatus]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM notification_deliveries GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[domain.DeliveryStatus]int64)
	for rows.Next() {
		var status domain.DeliveryStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}
