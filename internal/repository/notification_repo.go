package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"familyaid/internal/database"
	"familyaid/internal/models"
)

// NotificationRepository handles database operations for notifications and their recipients
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification inserts a notification with its recipient list in one transaction
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		query := `
			INSERT INTO notifications (title, message, target, sender_id, sender_name)
			VALUES (?, ?, ?, ?, ?)
		`
		id, err := tx.ExecReturningID(ctx, query, n.Title, n.Message, n.Target, n.SenderID, n.SenderName)
		if err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		for _, userID := range n.Recipients {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO notification_recipients (notification_id, user_id) VALUES (?, ?)",
				id, userID,
			)
			if err != nil {
				return fmt.Errorf("failed to add notification recipient: %w", err)
			}
		}

		n.ID = id
		n.CreatedAt = time.Now()
		return nil
	})
}

// ListNotifications retrieves every notification with its recipients, newest first
func (r *NotificationRepository) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	query := `
		SELECT id, title, message, target, sender_id, sender_name, created_at
		FROM notifications
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	index := map[int64]int{}
	for rows.Next() {
		var n models.Notification
		var senderID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Target, &senderID, &n.SenderName, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if senderID.Valid {
			n.SenderID = &senderID.Int64
		}
		n.Recipients = []int64{}
		index[n.ID] = len(notifications)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	if len(notifications) == 0 {
		return notifications, nil
	}

	recipients, err := r.db.QueryContext(ctx,
		"SELECT notification_id, user_id FROM notification_recipients ORDER BY notification_id, user_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification recipients: %w", err)
	}
	defer recipients.Close()

	for recipients.Next() {
		var notificationID, userID int64
		if err := recipients.Scan(&notificationID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan notification recipient: %w", err)
		}
		if i, ok := index[notificationID]; ok {
			notifications[i].Recipients = append(notifications[i].Recipients, userID)
		}
	}
	if err := recipients.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification recipients: %w", err)
	}
	return notifications, nil
}
