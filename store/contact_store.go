package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"portfolio/api/models"
)

// ContactStore logs contact form submissions in Postgres. The
// contact_messages table is provisioned outside this service.
type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`
	err := s.db.QueryRowContext(ctx, query, msg.Name, msg.Email, msg.Message, msg.IPAddress).Scan(
		&msg.ID,
		&msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	log.Debug().Int64("id", msg.ID).Str("email", msg.Email).Msg("contact message stored")
	return nil
}

func (s *ContactStore) MarkDelivered(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET delivered = TRUE WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message %d delivered: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact message %d not found", id)
	}
	return nil
}
