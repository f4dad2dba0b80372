package repositories

import (
	"log"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/gocql/gocql"
)

type NotificationRepo struct {
	session *gocql.Session
	logger  *log.Logger
}

func NewNotificationRepo(host string, logger *log.Logger) (*NotificationRepo, error) {
	cluster := gocql.NewCluster(host)
	cluster.Keyspace = "system"
	cluster.Consistency = gocql.Quorum

	logger.Println("Attempting to connect to Cassandra...")

	session, err := cluster.CreateSession()
	if err != nil {
		logger.Printf("Failed to connect to Cassandra: %v\n", err)
		return nil, err
	}

	if err := ensureKeyspaceExists(session); err != nil {
		logger.Printf("Failed to ensure keyspace exists: %v\n", err)
		session.Close()
		return nil, err
	}
	session.Close()

	cluster.Keyspace = "notifications"
	session, err = cluster.CreateSession()
	if err != nil {
		logger.Printf("Failed to connect to notifications keyspace: %v\n", err)
		return nil, err
	}

	if err := ensureTableExists(session, logger); err != nil {
		logger.Printf("Failed to ensure table exists: %v\n", err)
		session.Close()
		return nil, err
	}

	logger.Println("Connected to Cassandra with keyspace notifications")
	return &NotificationRepo{session: session, logger: logger}, nil
}

func (r *NotificationRepo) Close() {
	r.session.Close()
}

func ensureKeyspaceExists(session *gocql.Session) error {
	query := `
	CREATE KEYSPACE IF NOT EXISTS notifications
	WITH replication = {
		'class': 'SimpleStrategy',
		'replication_factor': 1
	};
	`
	return session.Query(query).Exec()
}

func ensureTableExists(session *gocql.Session, logger *log.Logger) error {
	query := `
	CREATE TABLE IF NOT EXISTS notifications (
		id UUID,
		user_id TEXT,
		message TEXT,
		created_at TIMESTAMP,
		is_read BOOLEAN,
		PRIMARY KEY (user_id, created_at)
	) WITH CLUSTERING ORDER BY (created_at DESC);`

	logger.Println("Ensuring notifications table exists...")
	if err := session.Query(query).Exec(); err != nil {
		return err
	}

	logger.Println("Notifications table is ready.")
	return nil
}

func (r *NotificationRepo) GetAllByUserID(userID string) ([]domain.Notification, error) {
	var notifications []domain.Notification

	iter := r.session.Query(
		"SELECT id, user_id, message, created_at, is_read FROM notifications WHERE user_id = ?",
		userID,
	).Iter()

	var n domain.Notification
	for iter.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.IsRead) {
		notifications = append(notifications, n)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepo) Insert(notification *domain.Notification) error {
	id := gocql.TimeUUID()
	notification.ID = id.String()
	return r.session.Query(
		"INSERT INTO notifications (id, user_id, message, created_at, is_read) VALUES (?, ?, ?, ?, ?)",
		id, notification.UserID, notification.Message, notification.CreatedAt, notification.IsRead,
	).Exec()
}

// MarkAsRead updates a single notification. The table is keyed by
// (user_id, created_at), so the row is located by id first.
func (r *NotificationRepo) MarkAsRead(userID, id string) error {
	createdAt, err := r.findCreatedAt(userID, id)
	if err != nil {
		return err
	}
	return r.session.Query(
		"UPDATE notifications SET is_read = true WHERE user_id = ? AND created_at = ?",
		userID, createdAt,
	).Exec()
}

func (r *NotificationRepo) MarkAllAsRead(userID string) error {
	notifications, err := r.GetAllByUserID(userID)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		if err := r.session.Query(
			"UPDATE notifications SET is_read = true WHERE user_id = ? AND created_at = ?",
			userID, n.CreatedAt,
		).Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *NotificationRepo) Delete(userID, id string) error {
	createdAt, err := r.findCreatedAt(userID, id)
	if err != nil {
		return err
	}
	return r.session.Query(
		"DELETE FROM notifications WHERE user_id = ? AND created_at = ?",
		userID, createdAt,
	).Exec()
}

func (r *NotificationRepo) findCreatedAt(userID, id string) (interface{}, error) {
	notifications, err := r.GetAllByUserID(userID)
	if err != nil {
		return nil, err
	}
	for _, n := range notifications {
		if n.ID == id {
			return n.CreatedAt, nil
		}
	}
	return nil, domain.ErrNotificationNotFound()
}
