package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/toto"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ toto.DeliveryService = (*DeliveryService)(nil)

// DeliveryService implements toto.DeliveryService using SQLite.
type DeliveryService struct {
	db  *DB
	now func() time.Time
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(db *DB) *DeliveryService {
	return &DeliveryService{db: db, now: time.Now}
}

// CreateDelivery records a sent message.
func (s *DeliveryService) CreateDelivery(ctx context.Context, d *toto.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.ID = uuid.New().String()
	d.SentAt = s.now().UTC()
	d.ContentHash = HashContent(d.Text)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deliveries (id, chat_id, text, content_hash, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.ChatID, d.Text, d.ContentHash, d.SentAt.Format(time.RFC3339Nano))

	return err
}

// FindLastDelivery returns the most recent delivery to a chat.
func (s *DeliveryService) FindLastDelivery(ctx context.Context, chatID string) (*toto.Delivery, error) {
	ds, err := s.FindDeliveries(ctx, toto.DeliveryFilter{ChatID: &chatID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(ds) == 0 {
		return nil, toto.Errorf(toto.ENOTFOUND, "no delivery for chat %q", chatID)
	}
	return ds[0], nil
}

// FindDeliveries retrieves deliveries matching the filter, newest first.
func (s *DeliveryService) FindDeliveries(ctx context.Context, filter toto.DeliveryFilter) ([]*toto.Delivery, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, chat_id, text, content_hash, sent_at FROM deliveries WHERE 1=1")

	if filter.ChatID != nil {
		query.WriteString(" AND chat_id = ?")
		args = append(args, *filter.ChatID)
	}

	// Insertion order breaks ties between identical timestamps.
	query.WriteString(" ORDER BY seq DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ds []*toto.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}

	return ds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row scanner) (*toto.Delivery, error) {
	var d toto.Delivery
	var sentAt string

	err := row.Scan(&d.ID, &d.ChatID, &d.Text, &d.ContentHash, &sentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, toto.Errorf(toto.ENOTFOUND, "delivery not found")
	}
	if err != nil {
		return nil, err
	}

	if d.SentAt, err = parseRFC3339(sentAt, "sent_at"); err != nil {
		return nil, err
	}
	return &d, nil
}
