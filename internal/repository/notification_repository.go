package repository

import (
	"context"
	"fmt"
)

// The outbox rows are written inside the PlaceOrder transaction, so a
// confirmation can only ever exist for a committed order.

func (r *Repository) GetPendingNotifications(ctx context.Context, limit int) ([]*Notification, error) {
	query := `SELECT id, order_id, status FROM notification_outbox
	          WHERE status = $1 ORDER BY id LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, NotificationPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.OrderID, &n.Status); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notifications, nil
}

func (r *Repository) MarkNotificationSent(ctx context.Context, id int64) error {
	return r.markNotification(ctx, id, NotificationSent)
}

func (r *Repository) MarkNotificationFailed(ctx context.Context, id int64) error {
	return r.markNotification(ctx, id, NotificationFailed)
}

func (r *Repository) markNotification(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_outbox SET status = $1, processed_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("mark notification %s: %w", status, err)
	}
	return nil
}
